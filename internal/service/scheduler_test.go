package service

import (
	"context"
	"testing"
	"time"

	"github.com/timmy/quotewise/internal/domain"
)

func TestSchedulerDispensesOnStart(t *testing.T) {
	f := newFixture(t, true, &fakeSource{records: []domain.QuoteRecord{{ID: "1", Text: "x"}}})
	f.settings.values[domain.SettingToken] = "tok"

	s := NewScheduler(f.dispenser, f.settings, 0, nil)
	s.Start(context.Background())
	s.Stop()

	blocks := f.blocks.byPage(f.pageUID)
	if got := countSuffix(blocks, "-quote"); got != 1 {
		t.Errorf("got %d quote blocks after startup dispense, want 1", got)
	}
}

func TestSchedulerRearmsOnInterval(t *testing.T) {
	f := newFixture(t, true, &fakeSource{records: []domain.QuoteRecord{{ID: "1", Text: "x"}}})
	f.settings.values[domain.SettingToken] = "tok"

	s := NewScheduler(f.dispenser, f.settings, 20*time.Millisecond, nil)
	s.Start(context.Background())
	time.Sleep(90 * time.Millisecond)
	s.Stop()

	// Re-dispensing on the same day is idempotent: repeated ticks must not
	// add more blocks.
	blocks := f.blocks.byPage(f.pageUID)
	if got := countSuffix(blocks, "-quote"); got != 1 {
		t.Errorf("got %d quote blocks after multiple ticks, want 1", got)
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	f := newFixture(t, true, &fakeSource{})
	s := NewScheduler(f.dispenser, f.settings, time.Hour, nil)
	s.Start(context.Background())

	s.Stop()
	s.Stop() // second Stop must not panic or block
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	f := newFixture(t, true, &fakeSource{})
	s := NewScheduler(f.dispenser, f.settings, time.Hour, nil)

	done := make(chan struct{})
	go func() {
		s.Stop() // no loop ever ran; must return, not block
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without a running loop")
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	f := newFixture(t, true, &fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())

	s := NewScheduler(f.dispenser, f.settings, time.Hour, nil)
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not exit after context cancel")
	}
}
