package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seojin-dev/newsradar/app/classify"
	"github.com/seojin-dev/newsradar/app/collect"
	"github.com/seojin-dev/newsradar/app/database"
	"github.com/seojin-dev/newsradar/app/tasks"
)

func newTestServer(t *testing.T) (*gin.Engine, *database.ArticleRepo) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewConnection(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := database.NewArticleRepo(db)

	classifier := classify.NewClassifier(classify.DefaultRuleset(), 15)
	fetcher := collect.NewFetcher(&http.Client{}, classifier, "test-agent", time.Second, 20)
	orchestrator := tasks.NewOrchestrator(nil, fetcher, repo, nil, classifier, 1, 10*time.Second)
	scheduler := tasks.NewScheduler(orchestrator, 0, false, 0)
	t.Cleanup(scheduler.Stop)

	return NewServer(NewHandler(repo, scheduler, dbPath)), repo
}

func seedArticle(t *testing.T, repo *database.ArticleRepo, link string) *database.Article {
	t.Helper()

	_, err := repo.Upsert(collect.Article{
		Title:        "HBM supply deal signed",
		Link:         link,
		PublishedAt:  time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		Source:       "Tech Wire",
		Summary:      "memory expansion",
		Language:     "en",
		MainCategory: "Advanced Manufacturing",
		SubCategory:  "Semiconductors",
		Keywords:     []string{"hbm", "semiconductor"},
	})
	if err != nil {
		t.Fatalf("Failed to seed article: %v", err)
	}

	article, err := repo.GetByLink(link)
	if err != nil {
		t.Fatalf("Failed to load seeded article: %v", err)
	}
	return article
}

func doRequest(server *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetArticlesEndpoint(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticle(t, repo, "https://example.com/1")

	w := doRequest(server, "GET", "/api/articles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var articles []articleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &articles); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}

	got := articles[0]
	if got.Title != "HBM supply deal signed" {
		t.Errorf("Unexpected title: %q", got.Title)
	}
	if got.Published != "2026-03-10T08:00:00Z" {
		t.Errorf("Unexpected published timestamp: %q", got.Published)
	}
	if len(got.Keywords) != 2 {
		t.Errorf("Expected keywords in response, got %v", got.Keywords)
	}
	if got.IsFavorite {
		t.Error("Expected is_favorite false")
	}
}

func TestGetArticlesEmptyStore(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, "GET", "/api/articles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}
}

func TestGetArticlesFilters(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticle(t, repo, "https://example.com/1")

	w := doRequest(server, "GET", "/api/articles?source=Nope", "")
	var articles []articleResponse
	json.Unmarshal(w.Body.Bytes(), &articles)
	if len(articles) != 0 {
		t.Errorf("Expected no articles for unknown source, got %d", len(articles))
	}

	w = doRequest(server, "GET", "/api/articles?search=memory", "")
	json.Unmarshal(w.Body.Bytes(), &articles)
	if len(articles) != 1 {
		t.Errorf("Expected 1 article for search, got %d", len(articles))
	}
}

func TestGetSourcesEndpoint(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticle(t, repo, "https://example.com/1")

	w := doRequest(server, "GET", "/api/sources", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var sources []string
	if err := json.Unmarshal(w.Body.Bytes(), &sources); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(sources) != 1 || sources[0] != "Tech Wire" {
		t.Errorf("Unexpected sources: %v", sources)
	}
}

func TestKeywordEndpoints(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticle(t, repo, "https://example.com/1")

	w := doRequest(server, "GET", "/api/keywords/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var stats []database.KeywordCount
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if len(stats) != 2 {
		t.Errorf("Expected 2 keyword counts, got %v", stats)
	}

	w = doRequest(server, "GET", "/api/keywords/network", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var graph database.KeywordGraph
	if err := json.Unmarshal(w.Body.Bytes(), &graph); err != nil {
		t.Fatalf("Failed to decode graph: %v", err)
	}
	if len(graph.Nodes) != 2 {
		t.Errorf("Expected 2 nodes, got %v", graph.Nodes)
	}
}

func TestFavoriteEndpoints(t *testing.T) {
	server, repo := newTestServer(t)
	article := seedArticle(t, repo, "https://example.com/1")

	w := doRequest(server, "POST", "/api/favorites/add", fmt.Sprintf(`{"article_id": %d}`, article.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	stored, _ := repo.GetByLink(article.Link)
	if !stored.IsFavorite {
		t.Error("Favorite not persisted")
	}

	w = doRequest(server, "POST", "/api/favorites/add", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing article_id, got %d", w.Code)
	}

	w = doRequest(server, "DELETE", fmt.Sprintf("/api/favorites/%d", article.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	stored, _ = repo.GetByLink(article.Link)
	if stored.IsFavorite {
		t.Error("Favorite not removed")
	}

	w = doRequest(server, "DELETE", "/api/favorites/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad id, got %d", w.Code)
	}
}

func TestCollectEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, "POST", "/api/collect-news-now", "")
	if w.Code != http.StatusAccepted {
		t.Errorf("Expected 202, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var health map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if _, ok := health["timestamp"]; !ok {
		t.Error("Expected timestamp in health response")
	}
	if path, ok := health["db_path"].(string); !ok || path == "" {
		t.Errorf("Expected db_path in health response, got %v", health["db_path"])
	}
	if exists, ok := health["db_exists"].(bool); !ok || !exists {
		t.Errorf("Expected db_exists true, got %v", health["db_exists"])
	}
}

func TestRootEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := doRequest(server, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NewsRadar") {
		t.Error("Expected service name in root response")
	}
}
