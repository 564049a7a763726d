package vacancy

import (
	"context"

	"github.com/honeycarbs/devsalaries/internal/domain"
)

// Provider represents an external job board (HeadHunter, SuperJob)
type Provider interface {
	// e.g. "headhunter" or "superjob"
	Name() string

	// Title is the human readable table heading, e.g. "HeadHunter Moscow"
	Title() string

	// FetchAll walks every result page for label and returns normalized listings
	FetchAll(ctx context.Context, label string) (domain.FetchResult, error)
}
