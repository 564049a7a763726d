package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/devsalaries/internal/app"
	"github.com/honeycarbs/devsalaries/internal/config"
	"github.com/honeycarbs/devsalaries/internal/mcp"
	"github.com/honeycarbs/devsalaries/pkg/logging"
	"github.com/honeycarbs/devsalaries/pkg/shutdown"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = logger.Sync() }()

	application, err := app.InitializeApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize providers", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, application)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("MCP server initialized and starting",
		"addr", net.JoinHostPort(cfg.Host, cfg.Port),
		"labels", len(cfg.Labels),
		"sheets_export", application.Sheets != nil,
	)

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
