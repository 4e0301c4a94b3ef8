// File: internal/scheduler/scheduler.go
// Package scheduler runs the periodic session cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"quantedgeb/internal/database"
	"quantedgeb/internal/store"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule is used when SESSION_PURGE_SCHEDULE is not set.
const DefaultSchedule = "@hourly"

type Scheduler struct {
	cron *cron.Cron
	db   database.DB
}

// New builds a scheduler purging expired sessions on the given cron spec.
func New(db database.DB, spec string) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	s := &Scheduler{cron: cron.New(), db: db}
	if _, err := s.cron.AddFunc(spec, s.purgeExpiredSessions); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := store.DeleteExpiredSessions(ctx, s.db, time.Now().UTC())
	if err != nil {
		log.Printf("scheduler: purge expired sessions: %v", err)
		return
	}
	if n > 0 {
		log.Printf("scheduler: purged %d expired sessions", n)
	}
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling; a purge already in flight finishes on its own.
func (s *Scheduler) Stop() { s.cron.Stop() }
