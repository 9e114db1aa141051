package service

import (
	"context"

	"github.com/timmy/quotewise/internal/domain"
)

// SettingStore is the key-value settings surface the services consume.
// Implemented by repository.SettingRepository.
type SettingStore interface {
	// Get retrieves a value; the bool reports whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set persists a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error
}

// BlockStore is the document surface the dispenser consumes.
// Implemented by repository.BlockRepository.
type BlockStore interface {
	// EnsurePage creates the daily page if absent.
	EnsurePage(ctx context.Context, uid, title string) error

	// ListDescendants returns all blocks transitively under the page.
	ListDescendants(ctx context.Context, pageUID string) ([]domain.Block, error)

	// Create inserts a block at a sibling order, shifting later siblings.
	Create(ctx context.Context, block *domain.Block) error
}

// HighlightSource fetches quote records from the remote service.
// Implemented by readwise.Client.
type HighlightSource interface {
	FetchRandom(ctx context.Context, token string, n int) ([]domain.QuoteRecord, error)
}

// RunStore records dispense audit entries. Implemented by
// repository.RunRepository.
type RunStore interface {
	Create(ctx context.Context, run *domain.DispenseRun) error
}
