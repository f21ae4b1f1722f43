package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bastiangx/zhconv/pkg/compiler"
	"github.com/bastiangx/zhconv/pkg/dict"
)

// Profile is one named conversion direction: an ordered chain of compiled
// dictionaries, each applied as a full pass over the segmented input.
// Profiles are immutable after registry construction.
type Profile struct {
	Name  string
	chain []*dict.Matcher
}

// ProfileNotFoundError reports a request for an unknown profile name.
// Lookups are exact and case-sensitive.
type ProfileNotFoundError struct {
	Name      string
	Available []string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("unknown profile %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Registry resolves profile names to their dictionary chains. It is built
// once from a decoded artifact and read-only afterwards, so any number of
// conversions may share it without locking.
type Registry struct {
	profiles map[string]*Profile
	names    []string
}

// NewRegistry builds matchers for every dictionary in the artifact and wires
// them into profiles. Matchers are shared between profiles that reference
// the same dictionary.
func NewRegistry(artifact *compiler.Artifact) (*Registry, error) {
	matchers := make(map[string]*dict.Matcher, len(artifact.Dicts))
	for name, entries := range artifact.Dicts {
		matchers[name] = dict.BuildMatcher(entries)
	}

	registry := &Registry{profiles: make(map[string]*Profile, len(artifact.Profiles))}
	for name, chain := range artifact.Profiles {
		profile := &Profile{Name: name, chain: make([]*dict.Matcher, 0, len(chain))}
		for _, dictName := range chain {
			m, ok := matchers[dictName]
			if !ok {
				return nil, fmt.Errorf("profile %q references unknown dictionary %q", name, dictName)
			}
			profile.chain = append(profile.chain, m)
		}
		registry.profiles[name] = profile
		registry.names = append(registry.names, name)
	}
	sort.Strings(registry.names)
	return registry, nil
}

// Resolve returns the named profile or a ProfileNotFoundError listing what
// is available.
func (r *Registry) Resolve(name string) (*Profile, error) {
	profile, ok := r.profiles[name]
	if !ok {
		return nil, &ProfileNotFoundError{Name: name, Available: r.Profiles()}
	}
	return profile, nil
}

// Profiles returns all registered profile names, sorted.
func (r *Registry) Profiles() []string {
	return r.names
}
