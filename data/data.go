// Package data embeds the raw dictionary tiers and the manifest that
// composes them into conversion profiles. The conversion engine compiles
// this tree into its default artifact on first use; cmd/zhdict compiles it
// into a standalone artifact file.
package data

import "embed"

//go:embed manifest.toml *.txt
var FS embed.FS
