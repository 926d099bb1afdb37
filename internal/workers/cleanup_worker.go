package workers

import (
	"context"
	"time"

	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/ratelimit"
	"jobmarket_backend/internal/repositories"

	"gorm.io/gorm"
)

const (
	// Used reset tokens are kept this long for auditing before deletion.
	usedResetTokenRetention = 24 * time.Hour
	// Rate-limit buckets idle this long are dropped.
	rateLimitIdle = time.Hour
)

// CleanupResult counts what one pass removed.
type CleanupResult struct {
	Sessions    int64
	ResetTokens int64
	Buckets     int
}

type CleanupWorker struct {
	db          *gorm.DB
	sessionRepo repositories.SessionRepository
	resetRepo   repositories.PasswordResetRepository
	pruners     []ratelimit.Pruner
	interval    time.Duration
	now         func() time.Time
}

func NewCleanupWorker(
	db *gorm.DB,
	sessionRepo repositories.SessionRepository,
	resetRepo repositories.PasswordResetRepository,
	interval time.Duration,
	pruners ...ratelimit.Pruner,
) *CleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupWorker{
		db:          db,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		pruners:     pruners,
		interval:    interval,
		now:         time.Now,
	}
}

// WithClock replaces time.Now; tests use it.
func (w *CleanupWorker) WithClock(now func() time.Time) *CleanupWorker {
	w.now = now
	return w
}

// Start runs a pass every interval until ctx is cancelled.
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *CleanupWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce removes expired sessions, stale reset tokens and idle rate-limit
// buckets. Failures are logged; one failing step does not stop the others.
func (w *CleanupWorker) RunOnce(ctx context.Context) CleanupResult {
	var res CleanupResult
	now := w.now().UTC()
	db := w.db.WithContext(ctx)

	n, err := w.sessionRepo.DeleteExpired(db, now)
	res.Sessions = n
	logger.WorkerLog("cleanup", "delete_expired_sessions", err, "deleted", n)

	n, err = w.resetRepo.DeleteStale(db, now, now.Add(-usedResetTokenRetention))
	res.ResetTokens = n
	logger.WorkerLog("cleanup", "delete_stale_reset_tokens", err, "deleted", n)

	for _, p := range w.pruners {
		res.Buckets += p.Prune(rateLimitIdle)
	}
	if res.Buckets > 0 {
		logger.Debug("Pruned idle rate-limit buckets", "count", res.Buckets)
	}
	return res
}
