package collect

import (
	"time"
)

// Article is one normalized and classified feed entry, keyed by its
// canonical link. It is the unit flowing from the fetchers into the store.
type Article struct {
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
}
