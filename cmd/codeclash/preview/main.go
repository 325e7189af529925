package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-codeclash/cmd/codeclash/internal/bootstrap"
	entrycmd "github.com/goliatone/go-codeclash/internal/commands/entry"
)

var moduleBuilder = bootstrap.BuildModule

type resolveExecutor interface {
	Execute(ctx context.Context, msg entrycmd.ResolveEntryCommand) error
}

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML configuration file")
		contentDir = flag.String("content-dir", "", "Path to the content root (overrides config)")
		category   = flag.String("category", "article", "Entry category: article, stack, paradigm or guide")
		slug       = flag.String("slug", "", "Entry slug as it appears in a URL")
		hydrate    = flag.Bool("hydrate", true, "Render directives into HTML")
		logLevel   = flag.String("log-level", "", "Override the logging level")
	)
	flag.Parse()

	if *slug == "" {
		log.Fatalf("--slug is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		LogLevel:   *logLevel,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	msg := entrycmd.ResolveEntryCommand{Category: *category, Slug: *slug, Hydrate: *hydrate}
	if err := run(context.Background(), module.Module.Container().ResolveEntryHandler(), msg, os.Stdout); err != nil {
		log.Fatalf("resolve entry: %v", err)
	}
}

func run(ctx context.Context, handler resolveExecutor, msg entrycmd.ResolveEntryCommand, out io.Writer) error {
	var result entrycmd.ResolveResult
	msg.ResultCallback = func(r entrycmd.ResolveResult) {
		result = r
	}
	if err := handler.Execute(ctx, msg); err != nil {
		return err
	}
	if result.Entry == nil {
		return fmt.Errorf("no entry returned for %s/%s", msg.Category, msg.Slug)
	}

	entry := result.Entry
	fmt.Fprintf(out, "Title: %s\nPath: %s\nSlug: %s\nDialect: %s\n\n", result.Title, entry.SourcePath, entry.Slug, entry.Dialect)
	if entry.RequestedSlug != "" && entry.RequestedSlug != entry.Slug {
		fmt.Fprintf(out, "Requested: %s\n\n", entry.RequestedSlug)
	}

	if len(entry.Metadata) > 0 {
		metadata, err := json.MarshalIndent(entry.Metadata, "", "  ")
		if err == nil {
			fmt.Fprintf(out, "Metadata:\n%s\n\n", metadata)
		}
	}

	if msg.Hydrate {
		fmt.Fprintf(out, "Rendered HTML:\n%s\n", string(result.HTML))
	} else {
		fmt.Fprintf(out, "Body:\n%s\n", string(entry.Body))
	}
	return nil
}
