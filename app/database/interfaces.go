package database

import (
	"context"

	"github.com/seojin-dev/newsradar/app/collect"
)

type ArticleRepository interface {
	Upsert(article collect.Article) (UpsertResult, error)
	GetByLink(link string) (*Article, error)

	QueryArticles(filters Filters, limit, offset int) ([]Article, error)
	ListSources() ([]string, error)
	KeywordFrequency(limit int) ([]KeywordCount, error)
	KeywordNetwork(limit int) (*KeywordGraph, error)
	CategoryStats() ([]CategoryCount, error)
	ArticleCount() (int, error)

	AddFavorite(articleID int64) error
	RemoveFavorite(articleID int64) error

	GetArticlesForExtraction(limit int) ([]Article, error)
	UpdateArticleBody(articleID int64, rawText, mainCategory, subCategory string, keywords []string) error

	Ping(ctx context.Context) error
}
