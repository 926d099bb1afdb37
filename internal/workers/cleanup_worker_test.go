package workers_test

import (
	"context"
	"testing"
	"time"

	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/ratelimit"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/workers"
	"jobmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupWorker_RunOnce(t *testing.T) {
	db := helpers.NewTestDB(t)
	user := helpers.CreateUser(t, db, "u@example.com", "P@ssw0rd1", models.UserRoleCandidate)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time { ts := now.Add(-d); return &ts }

	require.NoError(t, db.Create(&[]models.Session{
		{TokenHash: "expired", UserID: user.ID, ExpiresAt: now.Add(-time.Minute)},
		{TokenHash: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)},
	}).Error)
	require.NoError(t, db.Create(&[]models.PasswordResetToken{
		{Token: "expired", UserID: user.ID, ExpiresAt: now.Add(-time.Minute)},
		{Token: "used-long-ago", UserID: user.ID, ExpiresAt: now.Add(time.Hour), UsedAt: ago(25 * time.Hour)},
		{Token: "used-recently", UserID: user.ID, ExpiresAt: now.Add(time.Hour), UsedAt: ago(time.Hour)},
		{Token: "valid", UserID: user.ID, ExpiresAt: now.Add(time.Hour)},
	}).Error)

	w := workers.NewCleanupWorker(db, repositories.NewSessionRepository(), repositories.NewPasswordResetRepository(), time.Hour).
		WithClock(func() time.Time { return now })

	res := w.RunOnce(context.Background())
	assert.Equal(t, int64(1), res.Sessions)
	assert.Equal(t, int64(2), res.ResetTokens)

	var sessions []string
	require.NoError(t, db.Model(&models.Session{}).Pluck("token_hash", &sessions).Error)
	assert.Equal(t, []string{"live"}, sessions)

	var tokens []string
	require.NoError(t, db.Model(&models.PasswordResetToken{}).Order("token").Pluck("token", &tokens).Error)
	assert.Equal(t, []string{"used-recently", "valid"}, tokens)
}

func TestCleanupWorker_PrunesIdleBuckets(t *testing.T) {
	db := helpers.NewTestDB(t)
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewMemoryStoreWithClock(ratelimit.Policy{Max: 5, Window: time.Minute}, func() time.Time { return current })

	_, err := limiter.Take(context.Background(), "1.2.3.4")
	require.NoError(t, err)

	w := workers.NewCleanupWorker(db, repositories.NewSessionRepository(), repositories.NewPasswordResetRepository(), time.Hour, limiter)

	assert.Zero(t, w.RunOnce(context.Background()).Buckets)
	current = current.Add(2 * time.Hour)
	assert.Equal(t, 1, w.RunOnce(context.Background()).Buckets)
	assert.Zero(t, limiter.Len())
}
