package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/logger"
)

// Sentinel error kinds. Both are handled inside Dispense and converted into
// the error-block artifact; they never escape the public entry point.
var (
	// ErrMissingToken means no credential is configured.
	ErrMissingToken = errors.New("readwise token not configured")
	// ErrFetchFailure covers network errors, non-2xx responses and a cache
	// that stayed empty after a refill attempt.
	ErrFetchFailure = errors.New("failed to fetch quotes")
)

// errorBlockText is the fixed instruction inserted when no token is
// configured or a fetch fails with nothing cached.
const errorBlockText = "__Go to Settings -> Readwise Random Quote and enter your token. Get your token [here](https://readwise.io/access_token).__"

// Dispenser decides, once per calendar day, whether to insert a quote block
// or an error block into the daily page. "Already dispensed today" is
// recomputed from the page's block tree on every call rather than kept as a
// stored flag, so external edits and restarts stay consistent.
type Dispenser struct {
	blocks   BlockStore
	source   HighlightSource
	cache    *QuoteCache
	runs     RunStore
	logger   *logger.Logger
	useCache bool
	now      func() time.Time
}

// DispenserOptions holds construction options for a Dispenser.
type DispenserOptions struct {
	// CacheEnabled selects the batch-cache profile; false means a direct
	// single-record fetch per dispense.
	CacheEnabled bool
	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// NewDispenser creates a new Dispenser.
// Parameters:
//   - blocks: document store for the daily pages.
//   - source: remote highlight source (used directly when the cache is off).
//   - cache: quote cache (used when CacheEnabled).
//   - runs: audit store for dispense runs; nil disables auditing.
//   - log: logger.
//   - opts: behavior options; nil uses the cache-enabled profile.
// Returns:
//   - *Dispenser: initialized dispenser.
func NewDispenser(blocks BlockStore, source HighlightSource, cache *QuoteCache, runs RunStore, log *logger.Logger, opts *DispenserOptions) *Dispenser {
	if opts == nil {
		opts = &DispenserOptions{CacheEnabled: true}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Dispenser{
		blocks:   blocks,
		source:   source,
		cache:    cache,
		runs:     runs,
		logger:   log,
		useCache: opts.CacheEnabled,
		now:      now,
	}
}

// log returns a logger from context if available, otherwise the dispenser's own.
func (d *Dispenser) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return d.logger
}

// Dispense inserts at most one quote block (or, failing that, at most one
// error block) into today's page. Safe to call any number of times per day
// from a single goroutine; overlapping calls can race the scan-before-write
// check and double-insert, which is accepted and unlocked.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - token: Readwise access token; empty means unconfigured.
// Returns:
//   - domain.DispenseOutcome: what this invocation did.
//   - error: non-nil only for storage failures; fetch failures are
//     converted into the error block.
func (d *Dispenser) Dispense(ctx context.Context, token string) (domain.DispenseOutcome, error) {
	today := d.now()
	pageUID := domain.DailyUID(today)
	pageTitle := domain.DailyTitle(today)

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldDispenseID: uuid.New().String(),
		logger.FieldPage:       pageUID,
	})

	if err := d.blocks.EnsurePage(ctx, pageUID, pageTitle); err != nil {
		return "", fmt.Errorf("failed to ensure daily page: %w", err)
	}

	hasQuote, hasError, err := d.scanToday(ctx, pageUID)
	if err != nil {
		return "", err
	}

	// A missing token short-circuits only while no error block exists yet.
	// Once one does, the cache may still hold quotes from an earlier refill,
	// so the normal drain path below gets its chance; a refill attempt with
	// the empty token fails like any other fetch and lands in the no-duplicate
	// fallback.
	if token == "" && !hasError {
		uid, err := d.insertErrorBlock(ctx, pageUID)
		if err != nil {
			return "", err
		}
		logger.CtxInfo(ctx, "Inserted configuration error block")
		return d.finish(ctx, pageUID, domain.OutcomeErrorInserted, uid, ErrMissingToken)
	}

	if hasQuote {
		logger.CtxDebug(ctx, "Quote already dispensed today")
		return d.finish(ctx, pageUID, domain.OutcomeAlreadyDispensed, "", nil)
	}

	quote, fetchErr := d.obtainQuote(ctx, token)
	if fetchErr != nil {
		d.log(ctx).WithError(fetchErr).Error("Failed to obtain a quote")
		if hasError {
			return d.finish(ctx, pageUID, domain.OutcomeSkipped, "", fetchErr)
		}
		uid, err := d.insertErrorBlock(ctx, pageUID)
		if err != nil {
			return "", err
		}
		return d.finish(ctx, pageUID, domain.OutcomeErrorInserted, uid, fetchErr)
	}

	uid, err := d.insertQuoteBlock(ctx, pageUID, quote)
	if err != nil {
		return "", err
	}
	logger.CtxInfo(ctx, "Inserted daily quote %s", quote.ID)
	return d.finish(ctx, pageUID, domain.OutcomeQuoteInserted, uid, nil)
}

// scanToday recomputes the per-day state from the page's block tree.
func (d *Dispenser) scanToday(ctx context.Context, pageUID string) (hasQuote, hasError bool, err error) {
	blocks, err := d.blocks.ListDescendants(ctx, pageUID)
	if err != nil {
		return false, false, fmt.Errorf("failed to scan daily page: %w", err)
	}
	for _, b := range blocks {
		if b.IsQuote() {
			hasQuote = true
		}
		if b.IsError() {
			hasError = true
		}
	}
	return hasQuote, hasError, nil
}

// obtainQuote drains the cache (refilling first when empty) or, in the
// direct-fetch profile, requests exactly one record.
func (d *Dispenser) obtainQuote(ctx context.Context, token string) (domain.QuoteRecord, error) {
	if !d.useCache {
		records, err := d.source.FetchRandom(ctx, token, 1)
		if err != nil {
			return domain.QuoteRecord{}, fmt.Errorf("%w: %v", ErrFetchFailure, err)
		}
		if len(records) == 0 {
			return domain.QuoteRecord{}, fmt.Errorf("%w: empty response", ErrFetchFailure)
		}
		return records[0], nil
	}

	quote, ok, err := d.cache.Take(ctx)
	if err != nil {
		return domain.QuoteRecord{}, err
	}
	if ok {
		return quote, nil
	}

	if err := d.cache.Refill(ctx, token); err != nil {
		return domain.QuoteRecord{}, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	quote, ok, err = d.cache.Take(ctx)
	if err != nil {
		return domain.QuoteRecord{}, err
	}
	if !ok {
		return domain.QuoteRecord{}, fmt.Errorf("%w: cache empty after refill", ErrFetchFailure)
	}
	return quote, nil
}

func (d *Dispenser) insertQuoteBlock(ctx context.Context, pageUID string, quote domain.QuoteRecord) (string, error) {
	block := &domain.Block{
		UID:       newBlockUID(domain.QuoteSuffix),
		ParentUID: pageUID,
		PageUID:   pageUID,
		Order:     0,
		Text:      RenderQuote(quote),
	}
	if err := d.blocks.Create(ctx, block); err != nil {
		return "", fmt.Errorf("failed to insert quote block: %w", err)
	}
	return block.UID, nil
}

func (d *Dispenser) insertErrorBlock(ctx context.Context, pageUID string) (string, error) {
	block := &domain.Block{
		UID:       newBlockUID(domain.ErrorSuffix),
		ParentUID: pageUID,
		PageUID:   pageUID,
		Order:     0,
		Text:      errorBlockText,
	}
	if err := d.blocks.Create(ctx, block); err != nil {
		return "", fmt.Errorf("failed to insert error block: %w", err)
	}
	return block.UID, nil
}

// finish records the audit run and returns the outcome. Audit failures are
// logged, not propagated.
func (d *Dispenser) finish(ctx context.Context, pageUID string, outcome domain.DispenseOutcome, blockUID string, cause error) (domain.DispenseOutcome, error) {
	if d.runs != nil {
		run := &domain.DispenseRun{
			ID:       uuid.New().String(),
			PageUID:  pageUID,
			Outcome:  outcome,
			BlockUID: blockUID,
		}
		if cause != nil {
			run.ErrorLog = cause.Error()
		}
		if err := d.runs.Create(ctx, run); err != nil {
			d.log(ctx).WithError(err).Warn("Failed to record dispense run")
		}
	}
	return outcome, nil
}

// RenderQuote formats a quote record as markdown block text: bold quote,
// italic title, author, and a link back to the highlight in Readwise.
// Parameters:
//   - q: quote record to render.
// Returns:
//   - string: rendered block text.
func RenderQuote(q domain.QuoteRecord) string {
	return fmt.Sprintf("**%s** - __%s__, %s [View in Readwise](https://readwise.io/open/%s)",
		q.Text, q.Title, q.Author, q.ID)
}

// newBlockUID builds a block UID from the first 3 characters of a fresh
// UUID plus the kind suffix. The truncation keeps UIDs short at a known
// collision cost; the suffix scan depends on this exact shape.
func newBlockUID(suffix string) string {
	return uuid.New().String()[:3] + suffix
}
