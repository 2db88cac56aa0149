// Package schedule runs the periodic maintenance jobs (session eviction,
// assist-result garbage collection) on cron specs.
package schedule

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler interface {
	AddJob(job Job, spec string) error
	Start(ctx context.Context)
	Stop()
}

// standard five-field crontab specs, no seconds field
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type CronScheduler struct {
	cron    *cron.Cron
	entries map[string]cron.EntryID
	ctx     context.Context
}

func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(cron.WithParser(cronParser)),
		entries: make(map[string]cron.EntryID),
	}
}

func (c *CronScheduler) AddJob(job Job, spec string) error {
	name := job.Name()
	if _, exists := c.entries[name]; exists {
		return fmt.Errorf("job already scheduled: %s", name)
	}
	entryID, err := c.cron.AddFunc(spec, c.runner(job))
	if err != nil {
		return fmt.Errorf("schedule %s with spec %q: %w", name, spec, err)
	}
	c.entries[name] = entryID
	logutil.GetLogger(context.Background()).Info("job scheduled",
		zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (c *CronScheduler) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.cron.Start()
}

// Stop waits for in-flight runs to finish.
func (c *CronScheduler) Stop() {
	<-c.cron.Stop().Done()
}

// runner serializes a job with itself: a tick that fires while the previous
// run is still going is dropped, not queued.
func (c *CronScheduler) runner(job Job) func() {
	var busy atomic.Bool
	return func() {
		ctx := c.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		logger := logutil.GetLogger(ctx).With(zap.String("job", job.Name()))
		if !busy.CompareAndSwap(false, true) {
			logger.Info("job skipped: previous run still in progress")
			return
		}
		defer busy.Store(false)

		start := time.Now()
		logger.Info("job started")
		if err := job.Run(ctx); err != nil {
			logger.Error("job failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
			return
		}
		logger.Info("job finished", zap.Duration("duration", time.Since(start)))
	}
}
