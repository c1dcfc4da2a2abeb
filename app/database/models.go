package database

import (
	"time"
)

// Article is a persisted article row together with its keywords and
// favorite flag.
type Article struct {
	ID           int64
	Title        string
	Link         string
	PublishedAt  time.Time
	Source       string
	Summary      string
	RawText      string
	Language     string
	MainCategory string
	SubCategory  string
	Keywords     []string
	IsFavorite   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertResult reports the outcome of a single upsert.
type UpsertResult string

const (
	UpsertInserted UpsertResult = "inserted"
	UpsertUpdated  UpsertResult = "updated"
)

// Filters narrows article queries. Date bounds are RFC3339 strings compared
// against the stored timestamps.
type Filters struct {
	Source        string
	Search        string
	MainCategory  string
	FavoritesOnly bool
	DateFrom      string
	DateTo        string
}

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type KeywordNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type KeywordEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

type KeywordGraph struct {
	Nodes []KeywordNode `json:"nodes"`
	Edges []KeywordEdge `json:"edges"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
