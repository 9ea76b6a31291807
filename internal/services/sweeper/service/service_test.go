package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"echobox/internal/platform/logger"
	capsdom "echobox/internal/services/api/capsules/domain"
)

type fakeSweep struct {
	mu    sync.Mutex
	calls int
	errOn int // pass number that fails, 0 = never
}

func (f *fakeSweep) SweepDue(_ context.Context, batch int) (capsdom.SweepReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.errOn != 0 && f.calls == f.errOn {
		return capsdom.SweepReport{}, errors.New("transient failure")
	}
	return capsdom.SweepReport{Scanned: batch, Unlocked: 1}, nil
}

func (f *fakeSweep) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := New(&fakeSweep{}, logger.Logger{}, Config{})
	if s.config.Interval != time.Hour {
		t.Fatalf("default interval = %v, want 1h", s.config.Interval)
	}
	if s.config.Batch != 100 {
		t.Fatalf("default batch = %d, want 100", s.config.Batch)
	}
}

func TestNew_PanicsOnNilPort(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("New(nil port) must panic")
		}
	}()
	_ = New(nil, logger.Logger{}, Config{})
}

func TestRun_SweepsImmediatelyThenOnTicks(t *testing.T) {
	t.Parallel()

	f := &fakeSweep{}
	s := New(f, logger.Logger{}, Config{Interval: 10 * time.Millisecond, Batch: 5})

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}
	if got := f.count(); got < 2 {
		t.Fatalf("sweep passes = %d, want immediate pass plus ticks", got)
	}
}

func TestRun_SurvivesFailedPass(t *testing.T) {
	t.Parallel()

	f := &fakeSweep{errOn: 1} // the immediate pass fails
	s := New(f, logger.Logger{}, Config{Interval: 10 * time.Millisecond, Batch: 5})

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	_ = s.Run(ctx)
	if got := f.count(); got < 2 {
		t.Fatalf("loop must keep ticking after a failed pass, passes = %d", got)
	}
}
