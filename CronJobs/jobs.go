package CronJobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"Checklist/Config"
)

// Purger deletes drafts saved before a cutoff.
type Purger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DraftJanitor is a scheduled job removing drafts older than the retention.
type DraftJanitor struct {
	cronScheduler *cron.Cron
	store         Purger
	log           *zap.Logger
	now           func() time.Time

	mu        sync.Mutex
	retention time.Duration
	schedule  string
	jobID     cron.EntryID
}

// NewDraftJanitor creates a janitor for the given retention settings.
func NewDraftJanitor(store Purger, cfg Config.DraftsConfig, log *zap.Logger) *DraftJanitor {
	if log == nil {
		log = zap.NewNop()
	}
	cl := cronLogger{log.Sugar()}
	return &DraftJanitor{
		cronScheduler: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		store:     store,
		retention: cfg.Retention,
		schedule:  cfg.PurgeSchedule,
		log:       log,
		now:       time.Now,
	}
}

// Start runs the scheduler and schedules the purge. A zero retention keeps
// drafts forever and schedules nothing until Reconfigure enables it.
func (j *DraftJanitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.retention > 0 {
		if err := j.scheduleLocked(j.schedule); err != nil {
			return err
		}
	}
	j.cronScheduler.Start()
	if j.jobID == 0 {
		j.log.Info("draft retention disabled")
		return nil
	}
	j.log.Info("draft janitor started", zap.String("schedule", j.schedule), zap.Duration("retention", j.retention))
	return nil
}

// Stop terminates the scheduler and waits for a running purge to finish.
func (j *DraftJanitor) Stop() {
	if j.cronScheduler != nil {
		<-j.cronScheduler.Stop().Done()
		j.log.Info("draft janitor stopped")
	}
}

// Reconfigure applies reloaded retention settings to a running janitor.
// A bad schedule leaves the current job in place.
func (j *DraftJanitor) Reconfigure(cfg Config.DraftsConfig) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if cfg.Retention <= 0 {
		if j.jobID != 0 {
			j.cronScheduler.Remove(j.jobID)
			j.jobID = 0
		}
		j.retention = cfg.Retention
		j.log.Info("draft retention disabled")
		return nil
	}
	if j.jobID == 0 || cfg.PurgeSchedule != j.schedule {
		if err := j.scheduleLocked(cfg.PurgeSchedule); err != nil {
			return err
		}
	}
	j.retention = cfg.Retention
	j.log.Info("draft janitor reconfigured", zap.String("schedule", j.schedule), zap.Duration("retention", j.retention))
	return nil
}

// scheduleLocked replaces the purge job with one on the given schedule.
// Format: standard five-field cron or a descriptor such as "@daily".
func (j *DraftJanitor) scheduleLocked(schedule string) error {
	id, err := j.cronScheduler.AddFunc(schedule, j.run)
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}
	if j.jobID != 0 {
		j.cronScheduler.Remove(j.jobID)
	}
	j.jobID = id
	j.schedule = schedule
	return nil
}

// RunOnce purges drafts older than the retention right away.
func (j *DraftJanitor) RunOnce(ctx context.Context) (int64, error) {
	j.mu.Lock()
	retention := j.retention
	j.mu.Unlock()
	cutoff := j.now().Add(-retention)
	n, err := j.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	j.log.Info("purged old drafts", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	return n, nil
}

func (j *DraftJanitor) run() {
	if _, err := j.RunOnce(context.Background()); err != nil {
		j.log.Error("draft purge failed", zap.Error(err))
	}
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
