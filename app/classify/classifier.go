package classify

import (
	"strings"
)

// Classification is the category pair and keyword set assigned to one
// article.
type Classification struct {
	MainCategory string
	SubCategory  string
	Keywords     []string
}

// Classifier assigns categories and keywords using a fixed rule table. It is
// stateless apart from its immutable dictionaries and never errors on
// unexpected input.
type Classifier struct {
	rules      Ruleset
	keywordCap int
}

func NewClassifier(rules Ruleset, keywordCap int) *Classifier {
	return &Classifier{
		rules:      rules,
		keywordCap: keywordCap,
	}
}

// Classify scores the rule table against title+summary+body and extracts
// keywords. Body text is preferred over the summary for keyword extraction
// when available, matching the richer signal.
func (c *Classifier) Classify(title, summary, body string) Classification {
	main, sub := c.Categorize(title + " " + summary + " " + body)

	keywordText := body
	if keywordText == "" {
		keywordText = summary
	}

	return Classification{
		MainCategory: main,
		SubCategory:  sub,
		Keywords:     c.Keywords(title, keywordText),
	}
}

// Categorize returns the (main, sub) pair whose triggers score strictly
// highest against the lowercased text. Score is the count of distinct
// triggers present. Ties keep the earliest rule in table order; zero score
// falls back to Other/Other.
func (c *Classifier) Categorize(text string) (string, string) {
	lowered := strings.ToLower(text)

	bestScore := 0
	main, sub := CategoryOther, CategoryOther

	for _, rule := range c.rules.Rules {
		score := 0
		for _, trigger := range rule.Triggers {
			if strings.Contains(lowered, trigger) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			main, sub = rule.Main, rule.Sub
		}
	}

	return main, sub
}
