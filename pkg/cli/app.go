package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/fairlens/fairlens/pkg/config"
)

const (
	appName = "fairlens"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:            appName,
		Version:         fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Usage:           "Audit classifier predictions for demographic bias",
		HideHelpCommand: true,
		Flags: []urfave.Flag{
			debugFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			auditCmd,
			serverCmd,
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			if cmd.Bool(debugFlag.Name) {
				initLogging(true)
			}

			f := cmd.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}
			return ctx, nil
		},
	}
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func loadConfig() (*config.Config, error) {
	dir, created, err := config.GetOrCreateHomeDir(appName)
	if err != nil {
		return nil, fmt.Errorf("resolving app home dir: %w", err)
	}
	if created {
		slog.Debug("created app home dir", "path", dir)
	}
	return config.ReadOrCreate(dir)
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

// elapsed is a debug helper for timing commands.
func elapsed(start time.Time, name string) {
	slog.Debug("command completed", "command", name, "elapsed", time.Since(start).String())
}
