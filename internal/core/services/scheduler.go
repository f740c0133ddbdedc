package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs batch uploads on an interval for daemon mode.
// Settings are re-read before every run, so config edits take effect
// without a restart; the optional watcher just surfaces them in the log.
type Scheduler struct {
	uploader driving.UploadOrchestrator
	settings driving.SettingsService
	watcher  driven.ConfigWatcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. watcher may be nil.
func NewScheduler(
	uploader driving.UploadOrchestrator,
	settings driving.SettingsService,
	watcher driven.ConfigWatcher,
) *Scheduler {
	return &Scheduler{
		uploader: uploader,
		settings: settings,
		watcher:  watcher,
	}
}

// Start begins the daemon loop. This method blocks until Stop is called
// or the context is cancelled. The first batch run starts immediately;
// the configured interval paces the rest.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if s.watcher != nil {
		go func() {
			err := s.watcher.Watch(ctx, func() {
				log.Printf("daemon: configuration changed, next run picks it up")
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("daemon: config watch stopped: %v", err)
			}
		}()
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for a run in progress to finish
	s.wg.Wait()

	return nil
}

// run is the main daemon loop.
func (s *Scheduler) run(ctx context.Context) error {
	s.runOnce(ctx)

	interval := s.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
			// Pick up interval changes between runs
			if next := s.interval(); next != interval {
				log.Printf("daemon: interval changed from %s to %s", interval, next)
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// runOnce executes one batch run bounded by the configured timeout.
func (s *Scheduler) runOnce(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	runCtx := ctx
	if timeout := s.runTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	report, err := s.uploader.RunBatch(runCtx)
	if err != nil {
		if errors.Is(err, domain.ErrRunInProgress) {
			log.Printf("daemon: previous run still active, skipping")
			return
		}
		log.Printf("daemon: batch run failed: %v", err)
		return
	}

	counts := report.Counts()
	log.Printf("daemon: run %s done: %d uploaded, %d failed, %d skipped, %d flagged",
		report.RunID, counts.Uploaded, counts.Failed, counts.Skipped, counts.Flagged)
}

func (s *Scheduler) interval() time.Duration {
	settings, err := s.settings.Get()
	if err != nil || settings.Daemon.Interval <= 0 {
		return domain.DefaultAppSettings().Daemon.Interval
	}
	return settings.Daemon.Interval
}

func (s *Scheduler) runTimeout() time.Duration {
	settings, err := s.settings.Get()
	if err != nil {
		return domain.DefaultAppSettings().Daemon.RunTimeout
	}
	return settings.Daemon.RunTimeout
}
