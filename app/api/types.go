package api

import (
	"time"

	"github.com/seojin-dev/newsradar/app/database"
	"github.com/seojin-dev/newsradar/app/tasks"
)

type Handler struct {
	repo      database.ArticleRepository
	scheduler *tasks.Scheduler
	dbPath    string
}

type articleResponse struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Link         string   `json:"link"`
	Published    string   `json:"published"`
	Source       string   `json:"source"`
	Summary      string   `json:"summary"`
	Keywords     []string `json:"keywords"`
	Language     string   `json:"language"`
	MainCategory string   `json:"main_category"`
	SubCategory  string   `json:"sub_category"`
	IsFavorite   bool     `json:"is_favorite"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func toArticleResponse(a database.Article) articleResponse {
	keywords := a.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return articleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Link:         a.Link,
		Published:    a.PublishedAt.UTC().Format(time.RFC3339),
		Source:       a.Source,
		Summary:      a.Summary,
		Keywords:     keywords,
		Language:     a.Language,
		MainCategory: a.MainCategory,
		SubCategory:  a.SubCategory,
		IsFavorite:   a.IsFavorite,
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type favoriteRequest struct {
	ArticleID int64 `json:"article_id" binding:"required"`
}
