package compiler

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/zhconv/pkg/dict"
)

// FormatVersion is the artifact wire version. It is the first byte of every
// artifact; anything else fails decoding outright.
const FormatVersion byte = 0x01

// Artifact is the serialized form of the compiled dictionaries: every merged
// dictionary, the profile manifest, and the segmentation lexicon. The layout
// on the wire is one version byte followed by an xz-compressed msgpack
// payload.
type Artifact struct {
	Dicts    map[string][]dict.Entry `msgpack:"dicts"`
	Profiles map[string][]string     `msgpack:"profiles"`
	Lexicon  []string                `msgpack:"lexicon"`
}

// DecodeError means the artifact bytes cannot be used: wrong version,
// corrupt compression, or an invalid payload. There is no fallback
// dictionary, so callers treat this as fatal at startup.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding artifact: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding artifact: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode writes the versioned, compressed artifact to w.
func (a *Artifact) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{FormatVersion}); err != nil {
		return fmt.Errorf("writing artifact version: %w", err)
	}
	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("opening xz stream: %w", err)
	}
	if err := msgpack.NewEncoder(xzw).Encode(a); err != nil {
		return fmt.Errorf("serializing artifact: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("flushing xz stream: %w", err)
	}
	return nil
}

// EncodeBytes returns the artifact as an embeddable byte blob.
func (a *Artifact) EncodeBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a versioned artifact from r and validates its invariants.
func Decode(r io.Reader) (*Artifact, error) {
	version := make([]byte, 1)
	if _, err := io.ReadFull(r, version); err != nil {
		return nil, &DecodeError{Reason: "missing version byte", Err: err}
	}
	if version[0] != FormatVersion {
		return nil, &DecodeError{Reason: fmt.Sprintf("format version %#02x, want %#02x", version[0], FormatVersion)}
	}
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, &DecodeError{Reason: "corrupt xz payload", Err: err}
	}
	var artifact Artifact
	if err := msgpack.NewDecoder(xzr).Decode(&artifact); err != nil {
		return nil, &DecodeError{Reason: "corrupt msgpack payload", Err: err}
	}
	if err := artifact.validate(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// DecodeBytes decodes an artifact from an in-memory blob.
func DecodeBytes(data []byte) (*Artifact, error) {
	return Decode(bytes.NewReader(data))
}

func (a *Artifact) validate() error {
	if len(a.Dicts) == 0 {
		return &DecodeError{Reason: "artifact holds no dictionaries"}
	}
	if len(a.Profiles) == 0 {
		return &DecodeError{Reason: "artifact holds no profiles"}
	}
	for name, entries := range a.Dicts {
		if len(entries) == 0 {
			return &DecodeError{Reason: fmt.Sprintf("dictionary %q is empty", name)}
		}
		for _, e := range entries {
			if err := e.Validate(); err != nil {
				return &DecodeError{Reason: fmt.Sprintf("dictionary %q", name), Err: err}
			}
		}
	}
	for name, chain := range a.Profiles {
		if len(chain) == 0 {
			return &DecodeError{Reason: fmt.Sprintf("profile %q has an empty chain", name)}
		}
		for _, dictName := range chain {
			if _, ok := a.Dicts[dictName]; !ok {
				return &DecodeError{Reason: fmt.Sprintf("profile %q references unknown dictionary %q", name, dictName)}
			}
		}
	}
	return nil
}
