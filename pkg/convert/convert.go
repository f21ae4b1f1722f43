// Package convert is the runtime conversion engine. It loads a compiled
// dictionary artifact once, then converts text by segmenting it into words
// and running longest-match substitution over each segment through the
// profile's dictionary chain.
package convert

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/zhconv/pkg/compiler"
	"github.com/bastiangx/zhconv/pkg/dict"
	"github.com/bastiangx/zhconv/pkg/segment"
)

// Converter holds the registry and segmenter built from one artifact.
// It is immutable and safe for concurrent use.
type Converter struct {
	registry *Registry
	seg      segment.Segmenter
}

// New builds a converter from a decoded artifact, using the artifact's
// lexicon for segmentation.
func New(artifact *compiler.Artifact) (*Converter, error) {
	registry, err := NewRegistry(artifact)
	if err != nil {
		return nil, err
	}
	return &Converter{
		registry: registry,
		seg:      segment.NewLexicon(artifact.Lexicon),
	}, nil
}

// NewWithSegmenter builds a converter with a caller-supplied segmenter.
// The segmenter must be total, deterministic, and side-effect free.
func NewWithSegmenter(artifact *compiler.Artifact, seg segment.Segmenter) (*Converter, error) {
	registry, err := NewRegistry(artifact)
	if err != nil {
		return nil, err
	}
	return &Converter{registry: registry, seg: seg}, nil
}

// Load decodes an artifact stream and builds a converter from it.
func Load(r io.Reader) (*Converter, error) {
	artifact, err := compiler.Decode(r)
	if err != nil {
		return nil, err
	}
	return New(artifact)
}

// LoadBytes decodes an embedded artifact blob and builds a converter.
func LoadBytes(data []byte) (*Converter, error) {
	artifact, err := compiler.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return New(artifact)
}

// LoadFile decodes an artifact file and builds a converter.
func LoadFile(path string) (*Converter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Registry exposes the profile registry, mainly so callers can list
// available profile names.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// Convert transforms text under the named profile. The only failure mode is
// an unknown profile name; any character no dictionary covers passes through
// unchanged.
func (c *Converter) Convert(text, profileName string) (string, error) {
	profile, err := c.registry.Resolve(profileName)
	if err != nil {
		return "", err
	}
	return c.ConvertWith(text, profile), nil
}

// ConvertWith transforms text under an already-resolved profile.
func (c *Converter) ConvertWith(text string, profile *Profile) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	spans := c.seg.Segment(text)

	var out strings.Builder
	out.Grow(len(text))
	for _, span := range spans {
		word := string(runes[span.Start:span.End])
		for _, matcher := range profile.chain {
			word = convertWord(word, matcher)
		}
		out.WriteString(word)
	}
	return out.String()
}

// convertWord runs repeated longest-match substitution over one segment.
// Unmatched runes are emitted unchanged, one at a time.
func convertWord(word string, matcher *dict.Matcher) string {
	segRunes := utf8.RuneCountInString(word)

	var out strings.Builder
	out.Grow(len(word))
	for pos := 0; pos < len(word); {
		match, candidates, ok := matcher.LongestMatch(word[pos:])
		if !ok {
			_, size := utf8.DecodeRuneInString(word[pos:])
			out.WriteString(word[pos : pos+size])
			pos += size
			continue
		}
		out.WriteString(pickCandidate(candidates, utf8.RuneCountInString(match), segRunes))
		pos += len(match)
	}
	return out.String()
}

// pickCandidate applies the disambiguation policy: when a match spans the
// whole segment, prefer the best-ranked candidate whose rune count matches
// the segment's, keeping the word shape intact. Otherwise the rank-0
// candidate wins.
func pickCandidate(candidates []dict.Candidate, matchRunes, segRunes int) string {
	if len(candidates) > 1 && matchRunes == segRunes {
		for _, c := range candidates {
			if utf8.RuneCountInString(c.Target) == segRunes {
				return c.Target
			}
		}
	}
	return candidates[0].Target
}
