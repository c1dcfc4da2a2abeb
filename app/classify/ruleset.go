package classify

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// CategoryOther is the fallback assigned when no rule matches.
const CategoryOther = "Other"

// Rule maps one (main, sub) category pair to its trigger phrases. Triggers
// are matched case-insensitively as substrings of the article text.
type Rule struct {
	Main     string   `yaml:"main"`
	Sub      string   `yaml:"sub"`
	Triggers []string `yaml:"triggers"`
}

// Ruleset is an ordered rule table. Order is significant: when two rules
// score equally, the earlier rule wins.
type Ruleset struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// LoadRuleset parses a YAML rule table, allowing the classification
// dictionary to be swapped without a code change.
func LoadRuleset(r io.Reader) (Ruleset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Ruleset{}, fmt.Errorf("failed to read rule table: %w", err)
	}

	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return Ruleset{}, fmt.Errorf("failed to parse rule table: %w", err)
	}

	if len(rs.Rules) == 0 {
		return Ruleset{}, fmt.Errorf("rule table contains no rules")
	}
	for i, rule := range rs.Rules {
		if rule.Main == "" || rule.Sub == "" {
			return Ruleset{}, fmt.Errorf("rule at index %d: main and sub are required", i)
		}
		if len(rule.Triggers) == 0 {
			return Ruleset{}, fmt.Errorf("rule at index %d: at least one trigger is required", i)
		}
	}

	return rs, nil
}

// DefaultRuleset returns the built-in two-level category dictionary for
// Korean and global tech coverage.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Version: 1,
		Rules: []Rule{
			{Main: "Advanced Manufacturing", Sub: "Semiconductors",
				Triggers: []string{"반도체", "메모리", "dram", "nand", "hbm", "파운드리", "foundry", "euv"}},
			{Main: "Advanced Manufacturing", Sub: "Automotive",
				Triggers: []string{"자동차", "전기차", "ev", "수소차", "하이브리드", "자율주행", "adas", "모빌리티"}},
			{Main: "Advanced Manufacturing", Sub: "Batteries",
				Triggers: []string{"이차전지", "2차전지", "배터리", "ess", "전고체", "ncm", "lfp", "양극재", "음극재"}},
			{Main: "Advanced Manufacturing", Sub: "Displays",
				Triggers: []string{"디스플레이", "oled", "amoled", "lcd", "qd", "마이크로 led"}},
			{Main: "Advanced Manufacturing", Sub: "Robotics & Smart Factory",
				Triggers: []string{"로봇", "스마트팩토리", "산업용 로봇", "협동로봇", "cobot", "디지털트윈"}},
			{Main: "Digital & ICT", Sub: "AI",
				Triggers: []string{"ai", "인공지능", "머신러닝", "딥러닝", "생성형 ai", "챗봇", "llm"}},
			{Main: "Digital & ICT", Sub: "Telecom & Networks",
				Triggers: []string{"5g", "6g", "네트워크", "통신", "위성통신", "클라우드", "데이터센터", "엣지 컴퓨팅"}},
			{Main: "Digital & ICT", Sub: "Software & Platforms",
				Triggers: []string{"소프트웨어", "메타버스", "vr", "ar", "xr", "saas", "핀테크", "플랫폼", "ott", "게임", "보안", "빅데이터", "블록체인"}},
		},
	}
}
