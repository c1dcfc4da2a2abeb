package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/seojin-dev/newsradar/app/classify"
	"github.com/seojin-dev/newsradar/app/collect"
)

var _ ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo handles database operations for articles, keywords and
// favorites. Timestamps are stored as RFC3339 UTC strings, which keeps
// published-date ordering and range filters lexicographic.
type ArticleRepo struct {
	db *DB
}

func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Upsert inserts a new article or updates the existing row sharing its
// canonical link. Updates touch only content fields and updated_at; id,
// created_at and the favorite relation are never altered. Keywords are
// replaced atomically with the row inside one transaction, preserving
// their order.
func (r *ArticleRepo) Upsert(article collect.Article) (UpsertResult, error) {
	if strings.TrimSpace(article.Link) == "" {
		return "", fmt.Errorf("article has no canonical link")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow("SELECT id FROM articles WHERE link = ?", article.Link).Scan(&id)

	now := formatTime(time.Now())
	var result UpsertResult

	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec(`
			INSERT INTO articles (
				title, link, published_at, source, summary, raw_text,
				language, main_category, sub_category, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, article.Title, article.Link, formatTime(article.PublishedAt),
			article.Source, article.Summary, article.RawText, article.Language,
			article.MainCategory, article.SubCategory, now, now)
		if err != nil {
			return "", fmt.Errorf("failed to insert article: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("failed to get inserted id: %w", err)
		}
		result = UpsertInserted

	case err != nil:
		return "", fmt.Errorf("failed to look up article: %w", err)

	default:
		_, err := tx.Exec(`
			UPDATE articles
			SET title = ?, summary = ?, main_category = ?, sub_category = ?,
			    raw_text = CASE WHEN ? != '' THEN ? ELSE raw_text END,
			    updated_at = ?
			WHERE id = ?
		`, article.Title, article.Summary, article.MainCategory, article.SubCategory,
			article.RawText, article.RawText, now, id)
		if err != nil {
			return "", fmt.Errorf("failed to update article: %w", err)
		}
		result = UpsertUpdated
	}

	if err := replaceKeywords(tx, id, article.Keywords); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit upsert: %w", err)
	}

	return result, nil
}

func replaceKeywords(tx *sql.Tx, articleID int64, keywords []string) error {
	if _, err := tx.Exec("DELETE FROM article_keywords WHERE article_id = ?", articleID); err != nil {
		return fmt.Errorf("failed to clear keywords: %w", err)
	}

	for i, keyword := range keywords {
		_, err := tx.Exec(`
			INSERT INTO article_keywords (article_id, position, keyword)
			VALUES (?, ?, ?)
		`, articleID, i, keyword)
		if err != nil {
			return fmt.Errorf("failed to store keyword: %w", err)
		}
	}

	return nil
}

// GetByLink returns the persisted article for a canonical link, or nil when
// absent.
func (r *ArticleRepo) GetByLink(link string) (*Article, error) {
	row := r.db.QueryRow(`
		SELECT a.id, a.title, a.link, a.published_at, a.source, a.summary,
		       a.raw_text, a.language, a.main_category, a.sub_category,
		       CASE WHEN f.article_id IS NOT NULL THEN 1 ELSE 0 END,
		       a.created_at, a.updated_at
		FROM articles a
		LEFT JOIN favorites f ON f.article_id = a.id
		WHERE a.link = ?
	`, link)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article by link: %w", err)
	}

	if err := r.loadKeywords(article); err != nil {
		return nil, err
	}

	return article, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var a Article
	var publishedAt, createdAt, updatedAt string
	var favorite int

	err := row.Scan(
		&a.ID, &a.Title, &a.Link, &publishedAt, &a.Source, &a.Summary,
		&a.RawText, &a.Language, &a.MainCategory, &a.SubCategory,
		&favorite, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.PublishedAt = parseTime(publishedAt)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	a.IsFavorite = favorite == 1

	return &a, nil
}

func (r *ArticleRepo) loadKeywords(article *Article) error {
	rows, err := r.db.Query(`
		SELECT keyword FROM article_keywords
		WHERE article_id = ?
		ORDER BY position
	`, article.ID)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var keyword string
		if err := rows.Scan(&keyword); err != nil {
			return fmt.Errorf("failed to scan keyword: %w", err)
		}
		article.Keywords = append(article.Keywords, keyword)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating keyword rows: %w", err)
	}

	return nil
}

// QueryArticles returns persisted articles matching the filters, newest
// published first.
func (r *ArticleRepo) QueryArticles(filters Filters, limit, offset int) ([]Article, error) {
	query := `
		SELECT a.id, a.title, a.link, a.published_at, a.source, a.summary,
		       a.raw_text, a.language, a.main_category, a.sub_category,
		       CASE WHEN f.article_id IS NOT NULL THEN 1 ELSE 0 END,
		       a.created_at, a.updated_at
		FROM articles a
		LEFT JOIN favorites f ON f.article_id = a.id
	`

	var conditions []string
	var args []any

	if filters.Search != "" {
		conditions = append(conditions, "(a.title LIKE ? OR a.summary LIKE ?)")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filters.Source != "" && filters.Source != "all" {
		conditions = append(conditions, "a.source = ?")
		args = append(args, filters.Source)
	}
	if filters.MainCategory != "" && filters.MainCategory != "all" {
		conditions = append(conditions, "a.main_category = ?")
		args = append(args, filters.MainCategory)
	}
	if filters.DateFrom != "" {
		conditions = append(conditions, "a.published_at >= ?")
		args = append(args, filters.DateFrom)
	}
	if filters.DateTo != "" {
		conditions = append(conditions, "a.published_at <= ?")
		args = append(args, filters.DateTo)
	}
	if filters.FavoritesOnly {
		conditions = append(conditions, "f.article_id IS NOT NULL")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY a.published_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	for i := range articles {
		if err := r.loadKeywords(&articles[i]); err != nil {
			return nil, err
		}
	}

	return articles, nil
}

// ListSources returns the distinct source names present in the store.
func (r *ArticleRepo) ListSources() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT source FROM articles ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

// KeywordFrequency returns the most frequent keywords across all articles.
func (r *ArticleRepo) KeywordFrequency(limit int) ([]KeywordCount, error) {
	rows, err := r.db.Query(`
		SELECT keyword, COUNT(*) AS count
		FROM article_keywords
		GROUP BY keyword
		ORDER BY count DESC, keyword
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyword frequency: %w", err)
	}
	defer rows.Close()

	var counts []KeywordCount
	for rows.Next() {
		var kc KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan keyword count: %w", err)
		}
		counts = append(counts, kc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keyword counts: %w", err)
	}

	return counts, nil
}

// KeywordNetwork builds the co-occurrence graph over the top keywords. An
// edge is included whenever two top keywords appear on the same article at
// least once.
func (r *ArticleRepo) KeywordNetwork(limit int) (*KeywordGraph, error) {
	top, err := r.KeywordFrequency(limit)
	if err != nil {
		return nil, err
	}

	graph := &KeywordGraph{
		Nodes: make([]KeywordNode, 0, len(top)),
		Edges: []KeywordEdge{},
	}

	topSet := make(map[string]bool, len(top))
	for _, kc := range top {
		topSet[kc.Keyword] = true
		graph.Nodes = append(graph.Nodes, KeywordNode{ID: kc.Keyword, Label: kc.Keyword, Value: kc.Count})
	}

	rows, err := r.db.Query(`
		SELECT a.keyword, b.keyword, COUNT(*) AS weight
		FROM article_keywords a
		JOIN article_keywords b
		  ON b.article_id = a.article_id AND a.keyword < b.keyword
		GROUP BY a.keyword, b.keyword
		ORDER BY weight DESC, a.keyword, b.keyword
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyword co-occurrence: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var edge KeywordEdge
		if err := rows.Scan(&edge.Source, &edge.Target, &edge.Value); err != nil {
			return nil, fmt.Errorf("failed to scan co-occurrence row: %w", err)
		}
		if topSet[edge.Source] && topSet[edge.Target] {
			graph.Edges = append(graph.Edges, edge)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating co-occurrence rows: %w", err)
	}

	return graph, nil
}

// CategoryStats counts articles per main category, excluding the Other
// fallback.
func (r *ArticleRepo) CategoryStats() ([]CategoryCount, error) {
	rows, err := r.db.Query(`
		SELECT main_category, COUNT(*) AS count
		FROM articles
		WHERE main_category != ?
		GROUP BY main_category
		ORDER BY count DESC
	`, classify.CategoryOther)
	if err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, cc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

// ArticleCount returns the total number of persisted articles.
func (r *ArticleRepo) ArticleCount() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// AddFavorite marks an article as favorite. Adding twice is a no-op.
func (r *ArticleRepo) AddFavorite(articleID int64) error {
	_, err := r.db.Exec(`
		INSERT INTO favorites (article_id) VALUES (?)
		ON CONFLICT (article_id) DO NOTHING
	`, articleID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *ArticleRepo) RemoveFavorite(articleID int64) error {
	_, err := r.db.Exec("DELETE FROM favorites WHERE article_id = ?", articleID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// GetArticlesForExtraction returns the newest articles still missing body
// text, for the enrichment pass.
func (r *ArticleRepo) GetArticlesForExtraction(limit int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.title, a.link, a.published_at, a.source, a.summary,
		       a.raw_text, a.language, a.main_category, a.sub_category,
		       0, a.created_at, a.updated_at
		FROM articles a
		WHERE a.raw_text = ''
		ORDER BY a.published_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles for extraction: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

// UpdateArticleBody stores extracted body text and the classification
// recomputed from it.
func (r *ArticleRepo) UpdateArticleBody(articleID int64, rawText, mainCategory, subCategory string, keywords []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE articles
		SET raw_text = ?, main_category = ?, sub_category = ?, updated_at = ?
		WHERE id = ?
	`, rawText, mainCategory, subCategory, formatTime(time.Now()), articleID)
	if err != nil {
		return fmt.Errorf("failed to update article body: %w", err)
	}

	if err := replaceKeywords(tx, articleID, keywords); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit body update: %w", err)
	}

	return nil
}

// Ping reports whether the store is reachable.
func (r *ArticleRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
