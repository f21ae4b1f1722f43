package compiler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bastiangx/zhconv/pkg/dict"
)

func sampleArtifact() *Artifact {
	return &Artifact{
		Dicts: map[string][]dict.Entry{
			"t2s": {
				{Source: "隻", Candidates: []dict.Candidate{{Target: "只", Rank: 0}, {Target: "隻", Rank: 1}}},
				{Source: "龍", Candidates: []dict.Candidate{{Target: "龙", Rank: 0}}},
			},
		},
		Profiles: map[string][]string{"t2s": {"t2s"}},
		Lexicon:  []string{"一隻"},
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	blob, err := sampleArtifact().EncodeBytes()
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	if blob[0] != FormatVersion {
		t.Errorf("first byte = %#02x, want format version %#02x", blob[0], FormatVersion)
	}
	decoded, err := DecodeBytes(blob)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if !reflect.DeepEqual(decoded, sampleArtifact()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, sampleArtifact())
	}
}

func TestDecodeRejectsBadBlobs(t *testing.T) {
	blob, err := sampleArtifact().EncodeBytes()
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	versionMismatch := append([]byte{FormatVersion + 1}, blob[1:]...)
	truncated := blob[:len(blob)/2]
	garbage := append([]byte{FormatVersion}, []byte("not an xz stream")...)

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"version mismatch", versionMismatch},
		{"truncated payload", truncated},
		{"garbage payload", garbage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBytes(tc.data)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("err = %v, want DecodeError", err)
			}
		})
	}
}

func TestDecodeValidatesInvariants(t *testing.T) {
	cases := []struct {
		name     string
		artifact *Artifact
	}{
		{"no dictionaries", &Artifact{Profiles: map[string][]string{"p": {"d"}}}},
		{"no profiles", &Artifact{Dicts: map[string][]dict.Entry{"d": {{Source: "龍", Candidates: []dict.Candidate{{Target: "龙"}}}}}}},
		{"empty dictionary", &Artifact{
			Dicts:    map[string][]dict.Entry{"d": {}},
			Profiles: map[string][]string{"p": {"d"}},
		}},
		{"entry with no candidates", &Artifact{
			Dicts:    map[string][]dict.Entry{"d": {{Source: "龍"}}},
			Profiles: map[string][]string{"p": {"d"}},
		}},
		{"profile with unknown dictionary", &Artifact{
			Dicts:    map[string][]dict.Entry{"d": {{Source: "龍", Candidates: []dict.Candidate{{Target: "龙"}}}}},
			Profiles: map[string][]string{"p": {"nope"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := tc.artifact.EncodeBytes()
			if err != nil {
				t.Fatalf("EncodeBytes: %v", err)
			}
			_, err = DecodeBytes(blob)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("err = %v, want DecodeError", err)
			}
		})
	}
}
