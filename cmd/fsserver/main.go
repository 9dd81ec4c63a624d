// Command fsserver serves the file API over a local storage directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/koustreak/filedrop/internal/config"
	"github.com/koustreak/filedrop/internal/filestore/local"
	"github.com/koustreak/filedrop/internal/logger"
	"github.com/koustreak/filedrop/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fsserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadServer(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(&cfg.Logging)

	store, err := local.New(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	srv, err := server.New(&cfg.Server, store, log)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
