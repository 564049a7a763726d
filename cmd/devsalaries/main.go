package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/cheggaaa/pb/v3"

	"github.com/honeycarbs/devsalaries/internal/app"
	"github.com/honeycarbs/devsalaries/internal/config"
	"github.com/honeycarbs/devsalaries/internal/domain"
	"github.com/honeycarbs/devsalaries/internal/domain/vacancy"
	"github.com/honeycarbs/devsalaries/internal/report"
	"github.com/honeycarbs/devsalaries/pkg/logging"
	"github.com/honeycarbs/devsalaries/pkg/shutdown"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML configuration file")
	labelsFlag := flag.String("labels", "", "Comma separated languages overriding the configured list")
	providersFlag := flag.String("providers", "", "Comma separated providers to query (headhunter, superjob)")
	export := flag.Bool("export", false, "Write the tables to Google Sheets (requires sheets configuration)")
	progress := flag.Bool("progress", false, "Show a progress bar on stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *labelsFlag != "" {
		cfg.Labels = splitList(*labelsFlag)
	}

	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := shutdown.Context(context.Background(),
		[]os.Signal{os.Interrupt, syscall.SIGTERM},
		cfg.RunTimeout,
		logger,
	)
	defer cancel()

	application, err := app.InitializeApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize providers", "err", err)
		os.Exit(1)
	}

	providers, err := application.SelectProviders(splitList(*providersFlag))
	if err != nil {
		logger.Error("invalid provider selection", "err", err)
		os.Exit(1)
	}

	var opts []vacancy.Option
	if *progress {
		bar := pb.New(len(providers) * len(cfg.Labels)).SetWriter(os.Stderr).Start()
		defer bar.Finish()
		opts = append(opts, vacancy.WithProgress(func(domain.LabelSummary) {
			bar.Increment()
		}))
	}

	svc, err := application.NewService(providers, opts...)
	if err != nil {
		logger.Error("failed to build comparison service", "err", err)
		os.Exit(1)
	}

	cmp, err := svc.Compare(ctx, cfg.Labels)
	if err != nil {
		logger.Error("comparison failed", "err", err)
		os.Exit(1)
	}

	tables := report.Build(cmp.Labels, cmp)
	logUnavailable(logger, cmp)

	if err := report.NewRenderer(os.Stdout).Render(tables); err != nil {
		logger.Error("failed to render report", "err", err)
		os.Exit(1)
	}

	if !*export {
		return
	}
	if application.Sheets == nil {
		logger.Warn("export requested but sheets.credentials_path or sheets.spreadsheet_id is not set")
		return
	}

	res, err := application.Sheets.Export(ctx, tables)
	if err != nil {
		logger.Error("sheets export failed", "err", err)
		os.Exit(1)
	}
	logger.Info("sheets export completed", "spreadsheet_id", res.SpreadsheetID, "tabs", res.Tabs, "rows", res.WrittenRows)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func logUnavailable(logger *logging.Logger, cmp domain.Comparison) {
	for _, ps := range cmp.Providers {
		for _, s := range ps.Summaries {
			if !s.Available() {
				logger.Warn("label reported as unavailable", "provider", ps.Provider, "label", s.Label, "err", s.Err)
			}
		}
	}
}
