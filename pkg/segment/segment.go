// Package segment provides word-boundary detection for conversion input.
//
// The conversion engine only depends on the Segmenter interface; the
// built-in implementation is a lexicon-driven forward maximum matcher
// seeded with multi-rune dictionary keys. Segmentation narrows matching
// to linguistically coherent units so the default candidate is right far
// more often than raw character-by-character substitution.
package segment

import (
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Span is one segment in rune offsets, half-open [Start, End).
type Span struct {
	Start int
	End   int
}

// Segmenter splits text into ordered, non-overlapping spans covering every
// rune. Implementations must be total and deterministic: any input, including
// empty or irregular text, yields a valid covering with no side effects.
type Segmenter interface {
	Segment(text string) []Span
}

// Lexicon segments by forward maximum matching against a fixed word list.
// Runes that start no lexicon word become single-rune spans, except ASCII
// runs, which are grouped into one span since lexicon words are never ASCII.
type Lexicon struct {
	trie *patricia.Trie
	size int
}

// NewLexicon builds a segmenter from the given words. Words shorter than
// two runes are ignored: single runes never influence boundaries.
func NewLexicon(words []string) *Lexicon {
	trie := patricia.NewTrie()
	size := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if trie.Insert(patricia.Prefix(w), w) {
			size++
		}
	}
	return &Lexicon{trie: trie, size: size}
}

// Len returns the number of lexicon words.
func (l *Lexicon) Len() int {
	return l.size
}

// Segment implements Segmenter.
func (l *Lexicon) Segment(text string) []Span {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	spans := make([]Span, 0, len(runes)/2+1)

	pos := 0
	for pos < len(runes) {
		if n := l.longestWordAt(runes, pos); n > 0 {
			spans = append(spans, Span{Start: pos, End: pos + n})
			pos += n
			continue
		}
		if runes[pos] < utf8.RuneSelf {
			end := pos + 1
			for end < len(runes) && runes[end] < utf8.RuneSelf {
				end++
			}
			spans = append(spans, Span{Start: pos, End: end})
			pos = end
			continue
		}
		spans = append(spans, Span{Start: pos, End: pos + 1})
		pos++
	}
	return spans
}

// longestWordAt returns the rune length of the longest lexicon word starting
// at pos, or 0 when none does.
func (l *Lexicon) longestWordAt(runes []rune, pos int) int {
	rest := string(runes[pos:])
	longest := 0
	_ = l.trie.VisitPrefixes(patricia.Prefix(rest), func(p patricia.Prefix, _ patricia.Item) error {
		longest = utf8.RuneCount(p)
		return nil
	})
	return longest
}
