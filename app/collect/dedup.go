package collect

// Deduplicate collapses articles sharing a canonical link. Within a run the
// last-seen entry wins while the first-seen position is kept, so output
// order is deterministic for a fixed input order.
func Deduplicate(articles []Article) []Article {
	index := make(map[string]int, len(articles))
	out := make([]Article, 0, len(articles))

	for _, article := range articles {
		if i, ok := index[article.Link]; ok {
			out[i] = article
			continue
		}
		index[article.Link] = len(out)
		out = append(out, article)
	}

	return out
}
