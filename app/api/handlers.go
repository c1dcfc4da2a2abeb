package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seojin-dev/newsradar/app/database"
	"github.com/seojin-dev/newsradar/app/tasks"
)

func NewHandler(repo database.ArticleRepository, scheduler *tasks.Scheduler, dbPath string) *Handler {
	return &Handler{
		repo:      repo,
		scheduler: scheduler,
		dbPath:    dbPath,
	}
}

func (h *Handler) GetArticles(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}
	offset := intQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filters := database.Filters{
		Source:        c.Query("source"),
		Search:        c.Query("search"),
		MainCategory:  c.Query("main_category"),
		FavoritesOnly: c.Query("favorites_only") == "true",
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
	}

	articles, err := h.repo.QueryArticles(filters, limit, offset)
	if err != nil {
		slog.Error("Database error", "operation", "query_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	response := make([]articleResponse, 0, len(articles))
	for _, article := range articles {
		response = append(response, toArticleResponse(article))
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetSources(c *gin.Context) {
	sources, err := h.repo.ListSources()
	if err != nil {
		slog.Error("Database error", "operation", "list_sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sources"})
		return
	}

	if sources == nil {
		sources = []string{}
	}

	c.JSON(http.StatusOK, sources)
}

func (h *Handler) GetKeywordStats(c *gin.Context) {
	limit := intQuery(c, "limit", 50)

	stats, err := h.repo.KeywordFrequency(limit)
	if err != nil {
		slog.Error("Database error", "operation", "keyword_frequency", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get keyword stats"})
		return
	}

	if stats == nil {
		stats = []database.KeywordCount{}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetKeywordNetwork(c *gin.Context) {
	limit := intQuery(c, "limit", 30)

	graph, err := h.repo.KeywordNetwork(limit)
	if err != nil {
		slog.Error("Database error", "operation", "keyword_network", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get keyword network"})
		return
	}

	c.JSON(http.StatusOK, graph)
}

func (h *Handler) GetCategoryStats(c *gin.Context) {
	stats, err := h.repo.CategoryStats()
	if err != nil {
		slog.Error("Database error", "operation", "category_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get category stats"})
		return
	}

	if stats == nil {
		stats = []database.CategoryCount{}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_id is required"})
		return
	}

	if err := h.repo.AddFavorite(req.ArticleID); err != nil {
		slog.Error("Database error", "operation", "add_favorite", "article_id", req.ArticleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	articleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	if err := h.repo.RemoveFavorite(articleID); err != nil {
		slog.Error("Database error", "operation", "remove_favorite", "article_id", articleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) CollectNow(c *gin.Context) {
	sourceLimit := intQuery(c, "max_feeds", 0)

	if err := h.scheduler.TriggerRun(sourceLimit); err != nil {
		if errors.Is(err, tasks.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "Collection run already in progress"})
			return
		}
		slog.Error("Failed to trigger collection run", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start collection"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Collection started in the background"})
}

func (h *Handler) GetHealth(c *gin.Context) {
	_, statErr := os.Stat(h.dbPath)

	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"db_path":   h.dbPath,
		"db_exists": statErr == nil,
	}

	if count, err := h.repo.ArticleCount(); err == nil {
		health["articles"] = count
	}
	health["collecting"] = h.scheduler != nil && h.scheduler.Running()

	c.JSON(http.StatusOK, health)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
