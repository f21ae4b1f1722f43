package dict

import "testing"

func buildTestMatcher(keys map[string]string) *Matcher {
	entries := make([]Entry, 0, len(keys))
	for source, target := range keys {
		entries = append(entries, Entry{
			Source:     source,
			Candidates: []Candidate{{Target: target, Rank: 0}},
		})
	}
	return BuildMatcher(entries)
}

func TestLongestMatchPrefersDeepestKey(t *testing.T) {
	m := buildTestMatcher(map[string]string{
		"A":  "a",
		"AB": "ab",
	})
	match, candidates, ok := m.LongestMatch("ABC")
	if !ok {
		t.Fatal("no match")
	}
	if match != "AB" {
		t.Errorf("match = %q, want AB", match)
	}
	if candidates[0].Target != "ab" {
		t.Errorf("candidates = %+v", candidates)
	}
}

func TestLongestMatchMultiRune(t *testing.T) {
	m := buildTestMatcher(map[string]string{
		"干":  "乾",
		"干燥": "乾燥",
		"一只": "一隻",
	})
	cases := []struct {
		text  string
		match string
	}{
		{"干燥的", "干燥"},
		{"干了", "干"},
		{"一只猫", "一只"},
	}
	for _, tc := range cases {
		match, _, ok := m.LongestMatch(tc.text)
		if !ok || match != tc.match {
			t.Errorf("LongestMatch(%q) = %q, %v; want %q", tc.text, match, ok, tc.match)
		}
	}
}

func TestLongestMatchMiss(t *testing.T) {
	m := buildTestMatcher(map[string]string{"龍": "龙"})
	if _, _, ok := m.LongestMatch("猫"); ok {
		t.Error("matched a key that is not indexed")
	}
	if _, _, ok := m.LongestMatch(""); ok {
		t.Error("matched empty input")
	}
}

func TestMatcherKeys(t *testing.T) {
	m := buildTestMatcher(map[string]string{"龍": "龙", "一只": "一隻"})
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	seen := make(map[string]bool)
	m.Keys(func(key string) { seen[key] = true })
	if !seen["龍"] || !seen["一只"] {
		t.Errorf("keys = %v", seen)
	}
}
