package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountMailer sends the account emails. *email.Mailer implements it.
type AccountMailer interface {
	SendVerification(ctx context.Context, to, userID, token string) error
	SendPasswordReset(ctx context.Context, to, token string, ttl time.Duration) error
}

// accounts holds the steps shared by registration and profile claiming:
// user creation, session issuing and the verification email.
type accounts struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
	mailer      AccountMailer
	async       *Dispatcher
}

func (a *accounts) now() time.Time {
	return a.tokens.Now().UTC()
}

// ensureEmailFree is the pre-check; the unique index is the real guard.
func (a *accounts) ensureEmailFree(db *gorm.DB, email string) error {
	exists, err := a.userRepo.ExistsByEmail(db, email)
	if err != nil {
		return apperrors.FromDB(err, "auth")
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}
	return nil
}

func (a *accounts) hashPassword(password string) (string, error) {
	hash, err := a.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// multi-byte input can pass the character limit and still overflow
		return "", apperrors.ValidationError(map[string]string{
			"password": fmt.Sprintf("Cannot exceed %d bytes", auth.MaxPasswordLength),
		})
	}
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return hash, nil
}

func (a *accounts) createUser(tx *gorm.DB, email, passwordHash string, role models.UserRole) (*models.User, error) {
	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsVerified:   false,
	}
	if err := a.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.FromDB(err, "auth")
	}
	return user, nil
}

// startSession issues a token pair and makes its refresh token the only live
// session of the user. Must run inside the caller's transaction.
func (a *accounts) startSession(tx *gorm.DB, user *models.User) (*auth.TokenPair, error) {
	pair, err := a.tokens.IssueTokenPair(auth.TokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	expiresAt := a.now().Add(a.tokens.RefreshTTL())
	if err := a.sessionRepo.Replace(tx, user.ID, auth.HashToken(pair.RefreshToken), expiresAt); err != nil {
		return nil, apperrors.FromDB(err, "auth")
	}
	return pair, nil
}

// sendVerification runs after commit.
func (a *accounts) sendVerification(user *models.User) {
	userID, to := user.ID, user.Email
	a.async.Go("email", "send_verification", func(ctx context.Context) error {
		token, err := a.tokens.IssueVerificationToken(userID)
		if err != nil {
			return err
		}
		return a.mailer.SendVerification(ctx, to, userID, token)
	}, "user_id", userID)
}
