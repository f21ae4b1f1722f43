package dict

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// Matcher indexes a merged entry set for longest-prefix matching over an
// input stream. It is immutable after Build and safe for concurrent readers.
type Matcher struct {
	trie *patricia.Trie
	size int
}

// BuildMatcher indexes the given entries. Entries must already be merged
// and validated; source keys are unique after tier shadowing.
func BuildMatcher(entries []Entry) *Matcher {
	trie := patricia.NewTrie()
	size := 0
	for _, e := range entries {
		if trie.Insert(patricia.Prefix(e.Source), e.Candidates) {
			size++
		}
	}
	return &Matcher{trie: trie, size: size}
}

// Len returns the number of indexed source keys.
func (m *Matcher) Len() int {
	return m.size
}

// LongestMatch scans forward from the start of text and returns the longest
// indexed key that prefixes it, with its candidate list. ok is false when no
// key matches even the first character; the caller then emits that character
// unchanged and advances by one.
//
// Cost is bounded by the trie depth, not the dictionary size. Stored keys
// are complete UTF-8 strings, so a byte-prefix match always ends on a rune
// boundary of text.
func (m *Matcher) LongestMatch(text string) (match string, candidates []Candidate, ok bool) {
	_ = m.trie.VisitPrefixes(patricia.Prefix(text), func(p patricia.Prefix, item patricia.Item) error {
		// Prefixes arrive shortest-first; keep the deepest complete key.
		match = string(p)
		candidates = item.([]Candidate)
		ok = true
		return nil
	})
	return match, candidates, ok
}

// Keys visits every indexed source key. Used to seed the segmentation
// lexicon with multi-rune dictionary keys.
func (m *Matcher) Keys(visit func(key string)) {
	_ = m.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		visit(string(p))
		return nil
	})
}
