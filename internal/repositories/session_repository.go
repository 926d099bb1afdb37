package repositories

import (
	"errors"
	"time"

	"jobmarket_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrResetTokenNotFound = errors.New("reset token not found")
)

// SessionRepository stores refresh-token sessions keyed by token hash.
type SessionRepository interface {
	// Replace deletes every session of the user and inserts the new one.
	// Callers run it inside a transaction.
	Replace(db *gorm.DB, userID, tokenHash string, expiresAt time.Time) error
	FindActive(db *gorm.DB, tokenHash string, now time.Time) (*models.Session, error)
	// DeleteByHash reports whether a row was removed; a missing row is not an error.
	DeleteByHash(db *gorm.DB, tokenHash string) (bool, error)
	DeleteByUserID(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Replace(db *gorm.DB, userID, tokenHash string, expiresAt time.Time) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return err
	}
	return db.Create(&models.Session{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}).Error
}

func (r *sessionRepository) FindActive(db *gorm.DB, tokenHash string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := db.Where("token_hash = ? AND expires_at > ?", tokenHash, now).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByHash(db *gorm.DB, tokenHash string) (bool, error) {
	result := db.Where("token_hash = ?", tokenHash).Delete(&models.Session{})
	return result.RowsAffected > 0, result.Error
}

func (r *sessionRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at <= ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// PasswordResetRepository stores single-use reset tokens.
type PasswordResetRepository interface {
	Create(db *gorm.DB, token *models.PasswordResetToken) error
	FindValid(db *gorm.DB, token string, now time.Time) (*models.PasswordResetToken, error)
	// MarkUsed consumes the token only if it is still unused; false means
	// another request got there first.
	MarkUsed(db *gorm.DB, id string, now time.Time) (bool, error)
	InvalidateForUser(db *gorm.DB, userID string, now time.Time) error
	DeleteStale(db *gorm.DB, now, usedBefore time.Time) (int64, error)
}

type passwordResetRepository struct{}

func NewPasswordResetRepository() PasswordResetRepository {
	return &passwordResetRepository{}
}

func (r *passwordResetRepository) Create(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *passwordResetRepository) FindValid(db *gorm.DB, token string, now time.Time) (*models.PasswordResetToken, error) {
	var prt models.PasswordResetToken
	err := db.Where("token = ? AND expires_at > ? AND used_at IS NULL", token, now).First(&prt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &prt, nil
}

func (r *passwordResetRepository) MarkUsed(db *gorm.DB, id string, now time.Time) (bool, error) {
	result := db.Model(&models.PasswordResetToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", now)
	return result.RowsAffected == 1, result.Error
}

func (r *passwordResetRepository) InvalidateForUser(db *gorm.DB, userID string, now time.Time) error {
	return db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", now).Error
}

// DeleteStale removes expired tokens and tokens consumed before usedBefore.
func (r *passwordResetRepository) DeleteStale(db *gorm.DB, now, usedBefore time.Time) (int64, error) {
	result := db.Where("expires_at <= ? OR (used_at IS NOT NULL AND used_at < ?)", now, usedBefore).
		Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
