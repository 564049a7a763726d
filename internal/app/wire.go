//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/devsalaries/internal/config"
	"github.com/honeycarbs/devsalaries/pkg/logging"
)

// InitializeApp creates App with every provider wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	wire.Build(
		// Infrastructure
		provideHTTPClient,
		provideHeadHunterClient,
		provideSuperJobClient,

		// Providers
		provideHeadHunterProvider,
		provideSuperJobProvider,
		provideProviders,

		// Sinks
		provideSheetsExporter,

		newApp,
	)

	return &App{}, nil
}
