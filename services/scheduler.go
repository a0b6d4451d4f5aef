package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lasse00042-cmyk/HandUp/store"
)

// ArchiveScheduler fires the scheduled rollover once per day at a fixed local
// hour, independent of request traffic. Each arming computes a fresh
// single-shot timer for the next occurrence of the target hour, so execution
// drift does not accumulate and local-time shifts are absorbed naturally.
type ArchiveScheduler struct {
	store    store.UserStore
	archiver ArchiveWriter
	clock    Clock
	hour     int
	log      *zap.SugaredLogger
}

// NewArchiveScheduler wires a scheduler from its injected dependencies.
func NewArchiveScheduler(st store.UserStore, aw ArchiveWriter, clock Clock, hour int, log *zap.SugaredLogger) *ArchiveScheduler {
	return &ArchiveScheduler{store: st, archiver: aw, clock: clock, hour: hour, log: log}
}

// Start launches the scheduling loop. It stops when ctx is cancelled.
func (s *ArchiveScheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ArchiveScheduler) run(ctx context.Context) {
	for {
		now := s.clock.Now()
		next := NextRunAt(now, s.hour)
		timer := time.NewTimer(next.Sub(now))
		s.log.Infof("daily rollover scheduled for %s", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("archive scheduler stopped")
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce reconciles every user to today, persists the result, and writes the
// daily archive dump. An archive failure is logged but never blocks the reset.
func (s *ArchiveScheduler) RunOnce(ctx context.Context) {
	today := s.clock.Today()

	users, err := s.store.LoadAll(ctx)
	if err != nil {
		s.log.Errorf("rollover load failed: %v", err)
		return
	}

	if ReconcileAll(users, today) {
		if err := s.store.SaveAll(ctx, users); err != nil {
			s.log.Errorf("rollover save failed: %v", err)
			return
		}
	}

	if err := s.archiver.Dump(today, users); err != nil {
		s.log.Warnf("archive dump failed for %s: %v", today, err)
	} else {
		s.log.Infof("daily rollover complete for %s (%d users)", today, len(users))
	}
}

// NextRunAt returns the next occurrence of the given local hour strictly
// after now.
func NextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
