package collect

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/seojin-dev/newsradar/app/classify"
	"github.com/seojin-dev/newsradar/app/registry"
)

// Fetcher retrieves and processes one feed source per call. A failure is
// returned to the caller and never aborts sibling fetches.
type Fetcher struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	normalizer *Normalizer
	classifier *classify.Classifier
	userAgent  string
	timeout    time.Duration
	entryLimit int
}

func NewFetcher(httpClient *http.Client, classifier *classify.Classifier, userAgent string, timeout time.Duration, entryLimit int) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		normalizer: NewNormalizer(),
		classifier: classifier,
		userAgent:  userAgent,
		timeout:    timeout,
		entryLimit: entryLimit,
	}
}

// Run performs a single network request against the source, parses the feed
// and returns the normalized, classified articles in feed order. Entries
// beyond the configured limit are ignored; entries the normalizer rejects
// are dropped silently.
func (f *Fetcher) Run(ctx context.Context, src registry.Source) ([]Article, error) {
	data, err := f.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := f.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no entries")
	}

	items := feed.Items
	if f.entryLimit > 0 && len(items) > f.entryLimit {
		items = items[:f.entryLimit]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		article, ok := f.normalizer.Run(item, src)
		if !ok {
			continue
		}

		cls := f.classifier.Classify(article.Title, article.Summary, "")
		article.MainCategory = cls.MainCategory
		article.SubCategory = cls.SubCategory
		article.Keywords = cls.Keywords

		articles = append(articles, article)
	}

	return articles, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
