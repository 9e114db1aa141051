package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/logger"
)

// QuoteCache is a settings-store-backed stack of unconsumed quote records.
// The whole batch lives under one key as JSON, so it survives restarts along
// with the rest of the settings state.
type QuoteCache struct {
	settings  SettingStore
	source    HighlightSource
	batchSize int
}

// NewQuoteCache creates a new QuoteCache.
// Parameters:
//   - settings: settings store holding the cached batch.
//   - source: remote highlight source used for refills.
//   - batchSize: number of records fetched per refill.
// Returns:
//   - *QuoteCache: initialized cache.
func NewQuoteCache(settings SettingStore, source HighlightSource, batchSize int) *QuoteCache {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &QuoteCache{
		settings:  settings,
		source:    source,
		batchSize: batchSize,
	}
}

// load reads and decodes the cached batch; absent or corrupt values decode
// to an empty list so a bad cache never wedges the dispenser.
func (c *QuoteCache) load(ctx context.Context) ([]domain.QuoteRecord, error) {
	raw, ok, err := c.settings.Get(ctx, domain.SettingQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote cache: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var quotes []domain.QuoteRecord
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		logger.CtxWarn(ctx, "Discarding corrupt quote cache: %v", err)
		return nil, nil
	}
	return quotes, nil
}

// store encodes and persists the batch wholesale.
func (c *QuoteCache) store(ctx context.Context, quotes []domain.QuoteRecord) error {
	if quotes == nil {
		quotes = []domain.QuoteRecord{}
	}
	raw, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to encode quote cache: %w", err)
	}
	if err := c.settings.Set(ctx, domain.SettingQuotes, string(raw)); err != nil {
		return fmt.Errorf("failed to persist quote cache: %w", err)
	}
	return nil
}

// Refill replaces the cached list with a freshly fetched batch. On fetch
// failure the cache is left untouched and the error is returned so the
// caller can run its fallback.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - token: Readwise access token.
// Returns:
//   - error: non-nil on fetch or persistence failure.
func (c *QuoteCache) Refill(ctx context.Context, token string) error {
	records, err := c.source.FetchRandom(ctx, token, c.batchSize)
	if err != nil {
		return err
	}
	if err := c.store(ctx, records); err != nil {
		return err
	}
	logger.With(logger.Fields{logger.FieldCount: len(records)}).
		Info(ctx, "Quote cache refilled")
	return nil
}

// Take pops the last cached record and persists the shortened list before
// returning. The order of consumption is irrelevant; removing exactly one
// record per call is the contract.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - domain.QuoteRecord: the popped record, zero value when empty.
//   - bool: false when the cache is absent or empty.
//   - error: non-nil on storage failure.
func (c *QuoteCache) Take(ctx context.Context) (domain.QuoteRecord, bool, error) {
	quotes, err := c.load(ctx)
	if err != nil {
		return domain.QuoteRecord{}, false, err
	}
	if len(quotes) == 0 {
		return domain.QuoteRecord{}, false, nil
	}

	quote := quotes[len(quotes)-1]
	if err := c.store(ctx, quotes[:len(quotes)-1]); err != nil {
		return domain.QuoteRecord{}, false, err
	}
	return quote, true, nil
}

// Len reports the number of unconsumed cached records.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int: cache length.
//   - error: non-nil on storage failure.
func (c *QuoteCache) Len(ctx context.Context) (int, error) {
	quotes, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(quotes), nil
}
