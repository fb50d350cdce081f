package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/apidocgen/internal/config"
	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/hugo"
	"git.home.luguber.info/inful/apidocgen/internal/metrics"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		Output  string `short:"o" help:"Override output directory for generated content"`
		Workers int    `short:"w" help:"Override render concurrency"`
	} `cmd:"" help:"Generate markdown documents from API metadata"`

	Check struct{} `cmd:"" help:"Resolve and validate all metadata without writing output"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	// .env values never override the process environment.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("apidocgen"),
		kong.Description("Converts API reference metadata into a tree of markdown documents."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	runCtx := observability.WithBuildID(context.Background(), observability.NewBuildID())

	var err error
	switch ctx.Command() {
	case "generate":
		err = runPipeline(runCtx, false)
	case "check":
		err = runPipeline(runCtx, true)
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	default:
		err = errors.InternalError(fmt.Sprintf("unknown command %q", ctx.Command())).Build()
	}

	if err != nil {
		adapter.LogError(err)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}

func runPipeline(ctx context.Context, checkOnly bool) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.Generate.Output != "" {
		cfg.Output = CLI.Generate.Output
	}
	if CLI.Generate.Workers > 0 {
		cfg.Workers = CLI.Generate.Workers
	}

	recorder := metrics.NewPrometheusRecorder(nil)
	gen := hugo.NewGenerator(cfg, recorder)

	if checkOnly {
		return gen.Check(ctx)
	}
	return gen.Generate(ctx)
}
