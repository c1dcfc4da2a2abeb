package classify

import (
	"reflect"
	"testing"
)

func TestKeywordsVocabularyOrderAndCap(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 3)

	got := c.Keywords("NVIDIA GPU datacenter AI chip", "")
	want := []string{"ai", "gpu", "nvidia"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestKeywordsAcronyms(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	got := c.Keywords("", "NASA confirms the launch window")
	if !contains(got, "NASA") {
		t.Errorf("Expected NASA acronym in %v", got)
	}
}

func TestKeywordsStopWordsDropped(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	got := c.Keywords("", "THE AND FOR are common words")
	for _, kw := range got {
		switch kw {
		case "THE", "AND", "FOR":
			t.Errorf("Stop word %q survived extraction: %v", kw, got)
		}
	}
}

func TestKeywordsCaseInsensitiveDedup(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	got := c.Keywords("GPU shortage", "The gpu market and GPU prices")
	count := 0
	for _, kw := range got {
		if kw == "gpu" || kw == "GPU" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected gpu exactly once, got %v", got)
	}
}

func TestKeywordsKoreanCompounds(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	got := c.Keywords("차세대 배터리기술 공개", "")
	if !contains(got, "배터리기술") {
		t.Errorf("Expected compound 배터리기술 in %v", got)
	}
	if !contains(got, "배터리") {
		t.Errorf("Expected vocabulary match 배터리 in %v", got)
	}
}

func TestKeywordsEmptyInput(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	got := c.Keywords("", "")
	if got == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("Expected no keywords, got %v", got)
	}
}

func TestKeywordsDeterministic(t *testing.T) {
	c := NewClassifier(DefaultRuleset(), 15)

	title := "SK하이닉스 HBM 공급 계약"
	text := "AI 데이터센터 수요로 메모리 반도체 시장이 회복세를 보이고 있다"

	first := c.Keywords(title, text)
	for i := 0; i < 10; i++ {
		if next := c.Keywords(title, text); !reflect.DeepEqual(first, next) {
			t.Fatalf("Extraction not deterministic: %v vs %v", first, next)
		}
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
