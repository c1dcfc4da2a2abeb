package classify

import (
	"reflect"
	"strings"
	"testing"
)

func TestCategorizeHighestScoreWins(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	main, sub := c.Categorize("반도체 업계가 메모리 감산 속에 HBM 생산을 확대한다")
	if main != "Advanced Manufacturing" || sub != "Semiconductors" {
		t.Errorf("Expected Advanced Manufacturing/Semiconductors, got %s/%s", main, sub)
	}
}

func TestCategorizeTieKeepsEarlierRule(t *testing.T) {
	rules := Ruleset{
		Version: 1,
		Rules: []Rule{
			{Main: "First", Sub: "Alpha", Triggers: []string{"alpha"}},
			{Main: "Second", Sub: "Beta", Triggers: []string{"beta"}},
		},
	}
	c := NewClassifier(rules, 15)

	// Both rules score 1; the earlier rule must win.
	main, sub := c.Categorize("alpha beta")
	if main != "First" || sub != "Alpha" {
		t.Errorf("Expected tie to keep earlier rule, got %s/%s", main, sub)
	}
}

func TestCategorizeLaterRuleNeedsStrictlyHigherScore(t *testing.T) {
	rules := Ruleset{
		Version: 1,
		Rules: []Rule{
			{Main: "First", Sub: "Alpha", Triggers: []string{"alpha"}},
			{Main: "Second", Sub: "Beta", Triggers: []string{"beta", "gamma"}},
		},
	}
	c := NewClassifier(rules, 15)

	main, sub := c.Categorize("alpha beta gamma")
	if main != "Second" || sub != "Beta" {
		t.Errorf("Expected later rule with higher score to win, got %s/%s", main, sub)
	}
}

func TestCategorizeFallbackToOther(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	main, sub := c.Categorize("weekly weather outlook")
	if main != CategoryOther || sub != CategoryOther {
		t.Errorf("Expected %s/%s fallback, got %s/%s", CategoryOther, CategoryOther, main, sub)
	}
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	lowerMain, lowerSub := c.Categorize("new dram and nand pricing")
	upperMain, upperSub := c.Categorize("NEW DRAM AND NAND PRICING")
	if lowerMain != upperMain || lowerSub != upperSub {
		t.Errorf("Case changed the category: %s/%s vs %s/%s", lowerMain, lowerSub, upperMain, upperSub)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	title := "삼성전자, HBM 반도체 양산 확대"
	summary := "메모리 시장 회복세 속 AI 데이터센터 수요 급증"

	first := c.Classify(title, summary, "")
	for i := 0; i < 10; i++ {
		next := c.Classify(title, summary, "")
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("Classification not deterministic: %+v vs %+v", first, next)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	result := c.Classify("", "", "")
	if result.MainCategory != CategoryOther || result.SubCategory != CategoryOther {
		t.Errorf("Expected %s/%s, got %s/%s", CategoryOther, CategoryOther, result.MainCategory, result.SubCategory)
	}
	if result.Keywords == nil || len(result.Keywords) != 0 {
		t.Errorf("Expected empty keyword slice, got %v", result.Keywords)
	}
}

func TestClassifyPrefersBodyForKeywords(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	withBody := c.Classify("Industry update", "short teaser", "nvidia ships new gpu for cloud workloads")
	joined := strings.Join(withBody.Keywords, " ")
	if !strings.Contains(joined, "nvidia") || !strings.Contains(joined, "gpu") {
		t.Errorf("Expected body-derived keywords, got %v", withBody.Keywords)
	}
}

func TestLoadRuleset(t *testing.T) {
	yaml := `
version: 1
rules:
  - main: Energy
    sub: Solar
    triggers: [solar, photovoltaic]
  - main: Energy
    sub: Wind
    triggers: [wind turbine]
`
	rs, err := LoadRuleset(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rs.Rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rs.Rules))
	}
	if rs.Rules[0].Main != "Energy" || rs.Rules[0].Sub != "Solar" {
		t.Errorf("Unexpected first rule: %+v", rs.Rules[0])
	}
}

func TestLoadRulesetValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty rules", "version: 1\nrules: []\n"},
		{"missing sub", "rules:\n  - main: Energy\n    triggers: [solar]\n"},
		{"missing triggers", "rules:\n  - main: Energy\n    sub: Solar\n"},
		{"invalid yaml", "rules: ["},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadRuleset(strings.NewReader(tc.yaml)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
