// Package dict holds the dictionary data model: tiered substitution entries
// parsed from OpenCC-style text files, and the trie matcher built over them.
package dict

import (
	"fmt"
	"sort"
)

// Candidate is one possible target form for a source string.
// Rank 0 is the default form; higher ranks are fallbacks used only
// by disambiguation.
type Candidate struct {
	Target string `msgpack:"t"`
	Rank   int    `msgpack:"r"`
}

// Entry maps one source string to its ranked candidate targets.
type Entry struct {
	Source     string      `msgpack:"s"`
	Candidates []Candidate `msgpack:"c"`
}

// Validate checks the entry invariants: non-empty source, at least one
// candidate, no empty candidate targets.
func (e Entry) Validate() error {
	if e.Source == "" {
		return fmt.Errorf("entry has empty source")
	}
	if len(e.Candidates) == 0 {
		return fmt.Errorf("entry %q has no candidates", e.Source)
	}
	for _, c := range e.Candidates {
		if c.Target == "" {
			return fmt.Errorf("entry %q has an empty candidate target", e.Source)
		}
	}
	return nil
}

// IsIdentity reports whether the entry maps a source to itself as the
// default candidate. Identity entries are legitimate pass-through markers.
func (e Entry) IsIdentity() bool {
	return len(e.Candidates) > 0 && e.Candidates[0].Target == e.Source
}

// SortEntries orders entries by source key for deterministic output.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Source < entries[j].Source
	})
}
