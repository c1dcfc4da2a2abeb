package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Scheduler triggers collection runs at a fixed interval. Runs are
// single-flight: a tick that fires while a run is still in progress is
// skipped.
type Scheduler struct {
	orchestrator *Orchestrator
	interval     time.Duration
	extract      bool
	extractLimit int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func NewScheduler(orchestrator *Orchestrator, interval time.Duration, extract bool, extractLimit int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		orchestrator: orchestrator,
		interval:     interval,
		extract:      extract,
		extractLimit: extractLimit,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (s *Scheduler) Start() {
	if s.interval <= 0 {
		slog.Info("Scheduled collection disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.run(0)

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.run(0)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Running reports whether a collection run is currently in flight.
func (s *Scheduler) Running() bool {
	return s.orchestrator.Running()
}

// TriggerRun starts a collection run in the background. Returns
// ErrRunInProgress when a run is already in flight.
func (s *Scheduler) TriggerRun(sourceLimit int) error {
	if s.orchestrator.Running() {
		return ErrRunInProgress
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(sourceLimit)
	}()

	return nil
}

func (s *Scheduler) run(sourceLimit int) {
	_, err := s.orchestrator.RunOnce(s.ctx, sourceLimit)
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			slog.Debug("Skipping collection tick, run already in progress")
			return
		}
		slog.Error("Collection run failed", "error", err)
		return
	}

	if s.extract {
		s.orchestrator.RunExtraction(s.ctx, s.extractLimit)
	}
}
