package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-codeclash/cmd/codeclash/internal/bootstrap"
	buildcmd "github.com/goliatone/go-codeclash/internal/commands/build"
	"github.com/goliatone/go-codeclash/internal/generator"
)

var moduleBuilder = bootstrap.BuildModule

type buildExecutor interface {
	Execute(ctx context.Context, msg buildcmd.BuildSiteCommand) error
}

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML configuration file")
		contentDir = flag.String("content-dir", "", "Path to the content root (overrides config)")
		outputDir  = flag.String("output", "", "Directory receiving generated artifacts (overrides config)")
		baseURL    = flag.String("base-url", "", "Absolute site URL used in the sitemap")
		workers    = flag.Int("workers", 0, "Maximum entries rendered concurrently (0 uses config)")
		categories = flag.String("categories", "", "Comma separated categories to build (defaults to all)")
		clean      = flag.Bool("clean", false, "Remove the output directory before writing")
		dryRun     = flag.Bool("dry-run", false, "Resolve every entry without writing artifacts")
		logLevel   = flag.String("log-level", "", "Override the logging level")
	)
	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		OutputDir:  *outputDir,
		BaseURL:    *baseURL,
		LogLevel:   *logLevel,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	msg := buildcmd.BuildSiteCommand{
		OutputDir:  module.Config.Generator.OutputDir,
		BaseURL:    module.Config.Generator.BaseURL,
		Workers:    *workers,
		Clean:      *clean || module.Config.Generator.CleanBuild,
		DryRun:     *dryRun,
		Categories: bootstrap.SplitList(*categories),
	}

	handler := module.Module.Container().BuildSiteHandler()
	if err := run(context.Background(), handler, msg, os.Stdout); err != nil {
		log.Fatalf("build site: %v", err)
	}
}

func run(ctx context.Context, handler buildExecutor, msg buildcmd.BuildSiteCommand, out io.Writer) error {
	var result *generator.BuildResult
	msg.ResultCallback = func(r *generator.BuildResult) {
		result = r
	}
	err := handler.Execute(ctx, msg)
	if result != nil {
		printResult(out, result)
	}
	return err
}

func printResult(out io.Writer, result *generator.BuildResult) {
	mode := "build"
	if result.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(out, "%s %s: listed=%d built=%d failed=%d artifacts=%d duration=%s\n",
		mode, result.BuildID, result.Listed, result.Built, result.Failed, len(result.Artifacts), result.Duration)
	for _, diag := range result.Diagnostics {
		fmt.Fprintf(out, "  %s/%s: %s: %s\n", diag.Category, diag.Slug, diag.Kind, diag.Err)
	}
}
