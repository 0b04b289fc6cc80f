package CronJobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"Checklist/Config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func TestRunOnce(t *testing.T) {
	p := &fakePurger{}
	j := NewDraftJanitor(p, Config.DraftsConfig{Retention: 48 * time.Hour, PurgeSchedule: "@daily"}, zap.NewNop())
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }

	n, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, now.Add(-48*time.Hour), p.cutoffs[0])

	p.err = errors.New("database is locked")
	_, err = j.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	j := NewDraftJanitor(&fakePurger{}, Config.DraftsConfig{Retention: time.Hour, PurgeSchedule: "@every 1h"}, zap.NewNop())
	require.NoError(t, j.Start())
	assert.Len(t, j.cronScheduler.Entries(), 1)
	j.Stop()
}

func TestReconfigure(t *testing.T) {
	p := &fakePurger{}
	j := NewDraftJanitor(p, Config.DraftsConfig{Retention: time.Hour, PurgeSchedule: "@every 1h"}, zap.NewNop())
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }
	require.NoError(t, j.Start())
	defer j.Stop()
	first := j.jobID

	require.NoError(t, j.Reconfigure(Config.DraftsConfig{Retention: 72 * time.Hour, PurgeSchedule: "@daily"}))
	require.Len(t, j.cronScheduler.Entries(), 1)
	assert.NotEqual(t, first, j.jobID)
	assert.Equal(t, "@daily", j.schedule)

	_, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(-72*time.Hour), p.cutoffs[0])

	kept := j.jobID
	assert.Error(t, j.Reconfigure(Config.DraftsConfig{Retention: time.Hour, PurgeSchedule: "every tuesday"}))
	assert.Equal(t, kept, j.jobID, "a bad schedule keeps the running job")
	assert.Len(t, j.cronScheduler.Entries(), 1)

	require.NoError(t, j.Reconfigure(Config.DraftsConfig{Retention: 0, PurgeSchedule: "@daily"}))
	assert.Empty(t, j.cronScheduler.Entries())
}

func TestReconfigure_EnablesDisabledJanitor(t *testing.T) {
	j := NewDraftJanitor(&fakePurger{}, Config.DraftsConfig{Retention: 0, PurgeSchedule: "@daily"}, zap.NewNop())
	require.NoError(t, j.Start())
	defer j.Stop()
	require.Empty(t, j.cronScheduler.Entries())

	require.NoError(t, j.Reconfigure(Config.DraftsConfig{Retention: time.Hour, PurgeSchedule: "@daily"}))
	assert.Len(t, j.cronScheduler.Entries(), 1)
}

func TestStart_BadSchedule(t *testing.T) {
	j := NewDraftJanitor(&fakePurger{}, Config.DraftsConfig{Retention: time.Hour, PurgeSchedule: "every tuesday"}, zap.NewNop())
	assert.Error(t, j.Start())
	j.Stop()
}

func TestStart_RetentionDisabled(t *testing.T) {
	j := NewDraftJanitor(&fakePurger{}, Config.DraftsConfig{Retention: 0, PurgeSchedule: "@daily"}, zap.NewNop())
	require.NoError(t, j.Start())
	assert.Empty(t, j.cronScheduler.Entries())
	j.Stop()
}
