package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MidnightRefresher fires a callback at every local midnight so date-derived
// state (today highlight, "upcoming" cutoffs) rolls over without a restart.
// One pending timer at a time; each fire schedules the next.
type MidnightRefresher struct {
	loc    *time.Location
	fn     func(ctx context.Context)
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMidnightRefresher(loc *time.Location, fn func(ctx context.Context)) *MidnightRefresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &MidnightRefresher{
		loc:    loc,
		fn:     fn,
		ctx:    ctx,
		cancel: cancel,
	}
}

// NextMidnight returns the first midnight in loc strictly after now.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// Start begins the refresh loop.
func (m *MidnightRefresher) Start() {
	m.wg.Add(1)
	go m.run()
	slog.Info("Midnight refresher started", "timezone", m.loc.String())
}

// Stop cancels the pending timer and waits for the loop to exit.
func (m *MidnightRefresher) Stop() {
	m.cancel()
	m.wg.Wait()
	slog.Info("Midnight refresher stopped")
}

func (m *MidnightRefresher) run() {
	defer m.wg.Done()

	for {
		next := NextMidnight(time.Now(), m.loc)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-m.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			slog.Debug("Midnight refresh firing", "at", next)
			m.fn(m.ctx)
		}
	}
}
