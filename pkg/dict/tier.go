package dict

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError describes a malformed line in a tier source file.
// It always carries the file name and 1-based line number.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Tier is one named dictionary source file, parsed into ordered entries.
// Tiers are merged in priority order to form a compiled dictionary.
type Tier struct {
	Name    string
	Entries []Entry
}

// ParseTier reads one tier in OpenCC text format: a source key, a tab,
// then one or more whitespace-separated candidates in preference order.
// Blank lines and lines starting with '#' are skipped. Duplicate source
// keys within a single tier are a ParseError.
func ParseTier(name string, r io.Reader) (*Tier, error) {
	tier := &Tier{Name: name}
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		source, rest, found := strings.Cut(line, "\t")
		if !found {
			// Some upstream files are space-delimited.
			source, rest, found = strings.Cut(line, " ")
		}
		if !found {
			return nil, &ParseError{File: name, Line: lineNo, Msg: "missing candidate column"}
		}
		if source == "" {
			return nil, &ParseError{File: name, Line: lineNo, Msg: "empty source key"}
		}

		targets := strings.Fields(rest)
		if len(targets) == 0 {
			return nil, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("no candidates for %q", source)}
		}
		if prev, dup := seen[source]; dup {
			return nil, &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("duplicate key %q (first at line %d)", source, prev)}
		}
		seen[source] = lineNo

		candidates := make([]Candidate, 0, len(targets))
		for rank, target := range targets {
			candidates = append(candidates, Candidate{Target: target, Rank: rank})
		}
		tier.Entries = append(tier.Entries, Entry{Source: source, Candidates: candidates})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tier %s: %w", name, err)
	}
	return tier, nil
}

// Reversed derives the inverse tier: each entry's rank-0 candidate becomes
// the source and the original source becomes the single candidate. When two
// entries share a rank-0 target the first occurrence wins, keeping the
// derivation deterministic.
func (t *Tier) Reversed() *Tier {
	rev := &Tier{Name: "!" + t.Name}
	seen := make(map[string]bool)
	for _, e := range t.Entries {
		if len(e.Candidates) == 0 {
			continue
		}
		source := e.Candidates[0].Target
		if seen[source] {
			continue
		}
		seen[source] = true
		rev.Entries = append(rev.Entries, Entry{
			Source:     source,
			Candidates: []Candidate{{Target: e.Source, Rank: 0}},
		})
	}
	return rev
}
