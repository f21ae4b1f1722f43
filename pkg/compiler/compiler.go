// Package compiler turns raw tiered dictionary sources into the compact
// artifact the conversion engine loads at runtime. It runs offline; every
// failure here is a build failure and never reaches end users.
package compiler

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/zhconv/pkg/dict"
)

// ManifestFile is the expected manifest name inside a data tree.
const ManifestFile = "manifest.toml"

// Manifest describes how tier files compose into dictionaries and how
// dictionaries chain into conversion profiles.
//
// A dictionary is an ordered tier list; a later tier shadows an earlier one
// for duplicate source keys. A tier name prefixed with '!' means the
// reversed derivation of that tier. A profile is an ordered dictionary
// chain; each chain step is applied as one full conversion pass.
type Manifest struct {
	Dicts    map[string][]string `toml:"dicts"`
	Profiles map[string][]string `toml:"profiles"`
}

// Compile reads manifest.toml plus the tier files it references from fsys
// and produces the runtime artifact.
func Compile(fsys fs.FS) (*Artifact, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return CompileManifest(fsys, &manifest)
}

// CompileManifest builds the artifact for an already-parsed manifest.
func CompileManifest(fsys fs.FS, manifest *Manifest) (*Artifact, error) {
	if len(manifest.Dicts) == 0 {
		return nil, fmt.Errorf("manifest declares no dictionaries")
	}
	if len(manifest.Profiles) == 0 {
		return nil, fmt.Errorf("manifest declares no profiles")
	}

	tiers, err := loadTiers(fsys, manifest)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Dicts:    make(map[string][]dict.Entry, len(manifest.Dicts)),
		Profiles: make(map[string][]string, len(manifest.Profiles)),
	}
	for name, tierNames := range manifest.Dicts {
		merged, err := mergeTiers(name, tierNames, tiers)
		if err != nil {
			return nil, err
		}
		artifact.Dicts[name] = merged
	}
	for name, chain := range manifest.Profiles {
		if len(chain) == 0 {
			return nil, fmt.Errorf("profile %q has an empty dictionary chain", name)
		}
		for _, dictName := range chain {
			if _, ok := artifact.Dicts[dictName]; !ok {
				return nil, fmt.Errorf("profile %q references unknown dictionary %q", name, dictName)
			}
		}
		artifact.Profiles[name] = chain
	}
	artifact.Lexicon = collectLexicon(artifact.Dicts)

	log.Debugf("compiled %d dictionaries, %d profiles, lexicon of %d words",
		len(artifact.Dicts), len(artifact.Profiles), len(artifact.Lexicon))
	return artifact, nil
}

// loadTiers parses every tier referenced by the manifest, deriving reversed
// tiers on demand. The largest tiers are only ever reversed once.
func loadTiers(fsys fs.FS, manifest *Manifest) (map[string]*dict.Tier, error) {
	tiers := make(map[string]*dict.Tier)
	for _, tierNames := range manifest.Dicts {
		for _, ref := range tierNames {
			base := strings.TrimPrefix(ref, "!")
			if _, done := tiers[base]; !done {
				f, err := fsys.Open(base + ".txt")
				if err != nil {
					return nil, fmt.Errorf("opening tier %s: %w", base, err)
				}
				tier, err := dict.ParseTier(base+".txt", f)
				f.Close()
				if err != nil {
					return nil, err
				}
				tiers[base] = tier
			}
			if strings.HasPrefix(ref, "!") {
				if _, done := tiers[ref]; !done {
					tiers[ref] = tiers[base].Reversed()
				}
			}
		}
	}
	return tiers, nil
}

// mergeTiers applies tiers in order into a working map keyed by source;
// a later tier's entry fully replaces an earlier one, no candidate merging.
func mergeTiers(dictName string, tierNames []string, tiers map[string]*dict.Tier) ([]dict.Entry, error) {
	working := make(map[string]dict.Entry)
	identity := 0
	for _, ref := range tierNames {
		tier, ok := tiers[ref]
		if !ok {
			return nil, fmt.Errorf("dictionary %q references unknown tier %q", dictName, ref)
		}
		for _, e := range tier.Entries {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("dictionary %q, tier %q: %w", dictName, ref, err)
			}
			if e.IsIdentity() {
				identity++
			}
			working[e.Source] = e
		}
	}
	if len(working) == 0 {
		return nil, fmt.Errorf("dictionary %q merged to an empty entry set", dictName)
	}
	if identity > 0 {
		log.Warnf("dictionary %q carries %d identity entries (pass-through markers)", dictName, identity)
	}

	merged := make([]dict.Entry, 0, len(working))
	for _, e := range working {
		merged = append(merged, e)
	}
	dict.SortEntries(merged)
	return merged, nil
}

// collectLexicon gathers every multi-rune source key across all compiled
// dictionaries. These seed the word segmenter, mirroring how the source
// dictionaries double as a segmentation word list.
func collectLexicon(dicts map[string][]dict.Entry) []string {
	seen := make(map[string]bool)
	for _, entries := range dicts {
		for _, e := range entries {
			if utf8.RuneCountInString(e.Source) > 1 && !seen[e.Source] {
				seen[e.Source] = true
			}
		}
	}
	lexicon := make([]string, 0, len(seen))
	for w := range seen {
		lexicon = append(lexicon, w)
	}
	sort.Strings(lexicon)
	return lexicon
}
