package collect

import "testing"

func TestDeduplicateLastWins(t *testing.T) {
	articles := []Article{
		{Link: "https://example.com/a", Title: "A from source 1", Source: "S1"},
		{Link: "https://example.com/b", Title: "B", Source: "S1"},
		{Link: "https://example.com/a", Title: "A from source 2", Source: "S2"},
	}

	got := Deduplicate(articles)
	if len(got) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(got))
	}

	// Last-seen value wins, first-seen position is kept.
	if got[0].Link != "https://example.com/a" || got[0].Source != "S2" {
		t.Errorf("Expected last-seen duplicate at first position, got %+v", got[0])
	}
	if got[1].Link != "https://example.com/b" {
		t.Errorf("Expected second article unchanged, got %+v", got[1])
	}
}

func TestDeduplicateNoDuplicates(t *testing.T) {
	articles := []Article{
		{Link: "https://example.com/a"},
		{Link: "https://example.com/b"},
		{Link: "https://example.com/c"},
	}

	got := Deduplicate(articles)
	if len(got) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(got))
	}
	for i := range articles {
		if got[i].Link != articles[i].Link {
			t.Errorf("Order changed at index %d: %q", i, got[i].Link)
		}
	}
}

func TestDeduplicateEmptyInput(t *testing.T) {
	got := Deduplicate(nil)
	if got == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("Expected no articles, got %d", len(got))
	}
}
