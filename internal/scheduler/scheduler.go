// Package scheduler computes daily fire times and drives the daemon loop.
//
// The default schedule is one fire per day at a configured local wall-clock
// time. A fire time equal to the current instant belongs to the next day:
// the daemon only ever schedules strictly into the future, so a run is
// never posted twice for the same day.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"oryx-daily/internal/config"
)

// ClockError indicates the scheduler cannot compute or register fire times.
// It is fatal: a poster that cannot tell when to post must not run.
type ClockError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ClockError) Error() string {
	return fmt.Sprintf("scheduler %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ClockError) Unwrap() error {
	return e.Err
}

// NextFire returns the next occurrence of hour:minute in loc strictly after
// now. When now is exactly the target instant, the fire rolls to the next
// day. Nonexistent local times (DST spring-forward) normalize per time.Date.
func NextFire(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// RunFunc executes one digest run for the given fire time. The context
// carries the per-run timeout.
type RunFunc func(ctx context.Context, fireAt time.Time)

// Daemon fires a run function on the configured schedule until its context
// is cancelled.
type Daemon struct {
	schedule   config.Schedule
	runTimeout time.Duration
	run        RunFunc
	now        func() time.Time

	// OnSchedule, when set, is called with each computed fire time before
	// the daemon starts waiting for it. Used to expose the next fire as a
	// metric.
	OnSchedule func(next time.Time)
}

// NewDaemon creates a daemon for the given schedule. runTimeout bounds each
// individual run; the daemon itself runs until cancelled.
func NewDaemon(schedule config.Schedule, runTimeout time.Duration, run RunFunc) *Daemon {
	return &Daemon{
		schedule:   schedule,
		runTimeout: runTimeout,
		run:        run,
		now:        time.Now,
	}
}

// Run blocks, firing runs on schedule, until ctx is cancelled. It returns
// the context's error on shutdown, or a ClockError when the schedule cannot
// be registered.
func (d *Daemon) Run(ctx context.Context) error {
	if d.schedule.CronSpec != "" {
		return d.runCron(ctx)
	}

	for {
		next := NextFire(d.now(), d.schedule.Hour, d.schedule.Minute, d.schedule.Location)
		if d.OnSchedule != nil {
			d.OnSchedule(next)
		}
		slog.Info("next digest scheduled",
			slog.Time("fire_at", next),
			slog.Duration("sleep", next.Sub(d.now())))

		timer := time.NewTimer(next.Sub(d.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		d.fire(ctx, next)
	}
}

// runCron drives the daemon from a cron expression instead of the daily
// clock time. The expression is evaluated in the configured location.
func (d *Daemon) runCron(ctx context.Context) error {
	c := cron.New(cron.WithLocation(d.schedule.Location))
	_, err := c.AddFunc(d.schedule.CronSpec, func() {
		d.fire(ctx, d.now().In(d.schedule.Location))
	})
	if err != nil {
		return &ClockError{Op: "register cron schedule", Err: err}
	}

	slog.Info("cron schedule active",
		slog.String("spec", d.schedule.CronSpec),
		slog.String("timezone", d.schedule.Timezone))

	c.Start()
	<-ctx.Done()

	// Let an in-flight run finish before returning.
	<-c.Stop().Done()
	return ctx.Err()
}

// fire executes one run under the per-run timeout.
func (d *Daemon) fire(ctx context.Context, fireAt time.Time) {
	runCtx, cancel := context.WithTimeout(ctx, d.runTimeout)
	defer cancel()
	d.run(runCtx, fireAt)
}
