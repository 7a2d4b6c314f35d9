// Package schedule restores the activity roster on a cron schedule, e.g. at
// the start of every term.
//
//	trigger, err := schedule.NewTrigger("0 6 1 9 *", svc.ResetRoster, log)
//	if err != nil {
//	    return err
//	}
//	trigger.Start(ctx) // returns immediately; stops when ctx is cancelled
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/mergington/pkg/logger"
)

// Errors returned by NewTrigger.
var (
	ErrInvalidSchedule = errors.New("invalid reset schedule")
	ErrNeverFires      = errors.New("schedule never fires")
)

// Job is the work a Trigger runs on every tick.
type Job func(ctx context.Context) error

// Trigger runs a Job according to a 5-field cron expression.
type Trigger struct {
	spec     string
	schedule cron.Schedule
	job      Job
	logger   logger.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

// NewTrigger parses spec (minute, hour, day of month, month, day of week).
func NewTrigger(spec string, job Job, l logger.Logger) (*Trigger, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	if job == nil {
		return nil, errors.Join(ErrInvalidSchedule, errors.New("nil job"))
	}
	// Dates such as 30 February parse but never occur.
	if sched.Next(time.Now()).IsZero() {
		return nil, errors.Join(ErrInvalidSchedule, ErrNeverFires)
	}

	return &Trigger{
		spec:     spec,
		schedule: sched,
		job:      job,
		logger:   l,
		now:      time.Now,
	}, nil
}

// Spec returns the cron expression the trigger was built from.
func (t *Trigger) Spec() string { return t.spec }

// NextRun returns the next scheduled run after now.
func (t *Trigger) NextRun() time.Time {
	return t.schedule.Next(t.now())
}

// Start launches the scheduling loop in a goroutine and returns immediately.
func (t *Trigger) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.loop(ctx)
	}()
}

// Wait blocks until the loop started by Start has returned.
func (t *Trigger) Wait() {
	t.wg.Wait()
}

func (t *Trigger) loop(ctx context.Context) {
	for {
		now := t.now()
		next := t.schedule.Next(now)
		if next.IsZero() {
			t.logger.Error(ctx, "roster reset schedule has no future run; stopping", logger.String("schedule", t.spec))
			return
		}
		wait := next.Sub(now)

		t.logger.Debug(ctx, "waiting for next roster reset",
			logger.String("next_run", next.Format(time.RFC3339)),
			logger.String("wait", wait.String()),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.logger.Info(ctx, "roster reset trigger shutting down")
			return
		case <-timer.C:
			t.run(ctx)
		}
	}
}

// run executes the job once and logs the outcome.
func (t *Trigger) run(ctx context.Context) {
	t.logger.Info(ctx, "starting scheduled roster reset", logger.String("schedule", t.spec))
	if err := t.job(ctx); err != nil {
		t.logger.Warn(ctx, "scheduled roster reset failed", logger.Error(err))
		return
	}
	t.logger.Info(ctx, "scheduled roster reset completed")
}
