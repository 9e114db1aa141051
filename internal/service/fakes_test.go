package service

import (
	"context"
	"errors"
	"sync"

	"github.com/timmy/quotewise/internal/domain"
)

// fakeSettingStore is an in-memory SettingStore.
type fakeSettingStore struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
	getErr error
	setErr error
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{values: map[string]string{}}
}

func (f *fakeSettingStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettingStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	f.sets++
	return nil
}

// fakeBlockStore is an in-memory BlockStore holding a flat block list.
type fakeBlockStore struct {
	mu     sync.Mutex
	pages  map[string]string
	blocks []domain.Block
}

func newFakeBlockStore() *fakeBlockStore {
	return &fakeBlockStore{pages: map[string]string{}}
}

func (f *fakeBlockStore) EnsurePage(_ context.Context, uid, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pages[uid]; !ok {
		f.pages[uid] = title
	}
	return nil
}

func (f *fakeBlockStore) ListDescendants(_ context.Context, pageUID string) ([]domain.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Block
	for _, b := range f.blocks {
		if b.PageUID == pageUID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockStore) Create(_ context.Context, block *domain.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.blocks {
		if f.blocks[i].ParentUID == block.ParentUID && f.blocks[i].Order >= block.Order {
			f.blocks[i].Order++
		}
	}
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeBlockStore) byPage(pageUID string) []domain.Block {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Block
	for _, b := range f.blocks {
		if b.PageUID == pageUID {
			out = append(out, b)
		}
	}
	return out
}

// fakeSource is a scripted HighlightSource.
type fakeSource struct {
	mu      sync.Mutex
	records []domain.QuoteRecord
	err     error
	calls   int
}

var errFakeFetch = errors.New("Readwise API returned HTTP 500")

func (f *fakeSource) FetchRandom(_ context.Context, _ string, n int) ([]domain.QuoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if n < len(f.records) {
		return f.records[:n], nil
	}
	return f.records, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeRunStore collects audit records.
type fakeRunStore struct {
	mu   sync.Mutex
	runs []domain.DispenseRun
}

func (f *fakeRunStore) Create(_ context.Context, run *domain.DispenseRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, *run)
	return nil
}
