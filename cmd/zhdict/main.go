// Command zhdict is the offline dictionary compiler. It turns a directory
// of tier files plus manifest.toml into the versioned, compressed artifact
// that zhconv loads at runtime, and can inspect existing artifacts.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/zhconv/internal/logger"
	"github.com/bastiangx/zhconv/pkg/compiler"
)

var cli struct {
	Debug bool `short:"d" help:"Enable debug logging."`

	Build   BuildCmd   `cmd:"" help:"Compile a dictionary data directory into an artifact."`
	Inspect InspectCmd `cmd:"" help:"Print the contents summary of an artifact."`
}

// BuildCmd compiles tier files into one artifact. Any failure aborts the
// build before the output file is written; no partial artifacts.
type BuildCmd struct {
	Data string `arg:"" help:"Directory holding manifest.toml and tier .txt files." type:"existingdir"`
	Out  string `short:"o" default:"zhconv.dict" help:"Output artifact path."`
}

func (cmd *BuildCmd) Run() error {
	artifact, err := compiler.Compile(os.DirFS(cmd.Data))
	if err != nil {
		return err
	}
	blob, err := artifact.EncodeBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.Out, blob, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	log.Infof("wrote %s: %d bytes, %d dictionaries, %d profiles",
		cmd.Out, len(blob), len(artifact.Dicts), len(artifact.Profiles))
	return nil
}

// InspectCmd decodes an artifact and summarizes it.
type InspectCmd struct {
	Artifact string `arg:"" help:"Artifact path." type:"existingfile"`
}

func (cmd *InspectCmd) Run() error {
	f, err := os.Open(cmd.Artifact)
	if err != nil {
		return err
	}
	defer f.Close()
	artifact, err := compiler.Decode(f)
	if err != nil {
		return err
	}
	for _, name := range sortedKeys(artifact.Profiles) {
		fmt.Printf("profile %-8s -> %v\n", name, artifact.Profiles[name])
	}
	for _, name := range sortedKeys(artifact.Dicts) {
		fmt.Printf("dict    %-8s %d entries\n", name, len(artifact.Dicts[name]))
	}
	fmt.Printf("lexicon %d words\n", len(artifact.Lexicon))
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("zhdict"),
		kong.Description("Compile and inspect zhconv dictionary artifacts."),
		kong.UsageOnError(),
	)
	logger.SetDebug(cli.Debug)
	ctx.FatalIfErrorf(ctx.Run())
}
