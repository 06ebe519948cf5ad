package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/testutil"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) DeleteExpired(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestCleanupJob(t *testing.T) {
	t.Run("sweeps immediately and on every tick", func(t *testing.T) {
		sweeper := &countingSweeper{}
		job := NewCleanupJob(sweeper, 10*time.Millisecond)

		job.Start()
		assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
		job.Stop()

		after := sweeper.calls.Load()
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, after, sweeper.calls.Load())
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		job := NewCleanupJob(&countingSweeper{}, time.Hour)
		job.Start()
		job.Stop()
		job.Stop()
	})

	t.Run("errors do not stop the loop", func(t *testing.T) {
		sweeper := &countingSweeper{err: errors.New("db down")}
		job := NewCleanupJob(sweeper, 10*time.Millisecond)

		job.Start()
		defer job.Stop()
		assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	})

	t.Run("removes only expired sessions", func(t *testing.T) {
		store := testutil.NewStore()
		now := time.Now()
		store.SeedSession(model.AdminSession{TokenHash: "old", ExpiresAt: now.Add(-time.Minute)})
		store.SeedSession(model.AdminSession{TokenHash: "new", ExpiresAt: now.Add(time.Hour)})

		NewCleanupJob(store.Sessions(), time.Hour).cleanup()

		assert.Equal(t, 1, store.SessionCount())
	})
}
