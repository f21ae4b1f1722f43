// Command zhconv converts text between Chinese script variants.
// It reads whole inputs (file or stdin), auto-detects the encoding, runs
// the conversion engine line-parallel, and writes UTF-8 output.
package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/zhconv/internal/logger"
	"github.com/bastiangx/zhconv/internal/textio"
	"github.com/bastiangx/zhconv/pkg/config"
	"github.com/bastiangx/zhconv/pkg/convert"
)

var cli struct {
	Debug    bool   `short:"d" help:"Enable debug logging."`
	Config   string `help:"Path to config.toml." type:"path"`
	Artifact string `short:"a" help:"Compiled dictionary artifact; the embedded dictionaries are used when omitted." type:"path"`

	Convert  ConvertCmd  `cmd:"" default:"withargs" help:"Convert text between script variants."`
	Profiles ProfilesCmd `cmd:"" help:"List available conversion profiles."`
}

// ConvertCmd converts one input under a profile.
type ConvertCmd struct {
	Profile string `short:"p" help:"Conversion profile name (defaults to config default_profile)."`
	Output  string `short:"o" default:"-" help:"Output path, - for stdout."`
	Workers int    `short:"w" help:"Parallel line workers, 0 for one per CPU."`
	Input   string `arg:"" optional:"" default:"-" help:"Input path, - for stdin."`
}

func (cmd *ConvertCmd) Run() error {
	cfg, _ := config.LoadConfigWithPriority(cli.Config)
	profile := cmd.Profile
	if profile == "" {
		profile = cfg.Convert.DefaultProfile
	}
	workers := cmd.Workers
	if workers == 0 {
		workers = cfg.Convert.Workers
	}

	converter, err := openConverter(cfg)
	if err != nil {
		return err
	}

	raw, err := textio.ReadInput(cmd.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	text, err := textio.Decode(raw)
	if err != nil {
		return err
	}

	lines := strings.Split(text, "\n")
	log.Debugf("converting %d lines with profile %s", len(lines), profile)
	converted, err := converter.ConvertLines(lines, profile, workers)
	if err != nil {
		return err
	}
	return textio.WriteOutput(cmd.Output, strings.Join(converted, "\n"))
}

// ProfilesCmd prints every registered profile name.
type ProfilesCmd struct{}

func (cmd *ProfilesCmd) Run() error {
	cfg, _ := config.LoadConfigWithPriority(cli.Config)
	converter, err := openConverter(cfg)
	if err != nil {
		return err
	}
	for _, name := range converter.Registry().Profiles() {
		fmt.Println(name)
	}
	return nil
}

// openConverter picks the dictionary source: an explicit artifact file
// beats the config one, which beats the embedded default. Artifact decode
// failures are fatal; there is no fallback dictionary.
func openConverter(cfg *config.Config) (*convert.Converter, error) {
	path := cli.Artifact
	if path == "" {
		path = cfg.Dict.Artifact
	}
	if path != "" {
		log.Debugf("loading artifact %s", path)
		return convert.LoadFile(path)
	}
	return convert.Default()
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("zhconv"),
		kong.Description("Convert text between Chinese script variants."),
		kong.UsageOnError(),
	)
	logger.SetDebug(cli.Debug)
	ctx.FatalIfErrorf(ctx.Run())
}
