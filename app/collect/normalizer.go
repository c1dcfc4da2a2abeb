package collect

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/seojin-dev/newsradar/app/registry"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalizer converts raw feed entries into canonical articles. It performs
// no I/O.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run normalizes one feed entry. The second return value is false when the
// entry must be discarded (empty title or link after trimming).
func (n *Normalizer) Run(item *gofeed.Item, src registry.Source) (Article, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return Article{}, false
	}

	return Article{
		Title:       title,
		Link:        link,
		PublishedAt: n.publishedAt(item),
		Source:      src.Name,
		Summary:     StripMarkup(item.Description),
		Language:    src.Language,
	}, true
}

// publishedAt resolves the entry timestamp: the parser's value when present,
// a best-effort parse of the raw date string otherwise, and the collection
// wall-clock time as a last resort.
func (n *Normalizer) publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.Published != "" {
		if parsed, err := dateparse.ParseAny(item.Published); err == nil {
			return parsed.UTC()
		}
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Now().UTC()
}

// StripMarkup reduces HTML to plain text, dropping non-content elements and
// collapsing whitespace runs to single spaces.
func StripMarkup(markup string) string {
	if markup == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(whitespacePattern.ReplaceAllString(markup, " "))
	}

	doc.Find("script, style, nav, footer, aside, header").Remove()
	text := doc.Text()

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
