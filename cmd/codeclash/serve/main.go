package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-codeclash/cmd/codeclash/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML configuration file")
		contentDir = flag.String("content-dir", "", "Path to the content root (overrides config)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
		baseURL    = flag.String("base-url", "", "Absolute site URL used in the sitemap")
		logLevel   = flag.String("log-level", "", "Override the logging level")
	)
	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		BaseURL:    *baseURL,
		Addr:       *addr,
		LogLevel:   *logLevel,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	srv, err := module.Module.Server()
	if err != nil {
		log.Fatalf("configure server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module.Logger.Info("serve.starting", "addr", module.Config.Server.Addr)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
