package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const resetTokenBytes = 32

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.TokensResponse, error)
	Logout(ctx context.Context, db *gorm.DB, refreshToken string) error
	// VerifyEmail marks the user verified. token may be empty unless
	// verification tokens are required.
	VerifyEmail(ctx context.Context, db *gorm.DB, userID, token string) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error
	ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
}

type AuthOptions struct {
	ResetTokenTTL            time.Duration
	RequireVerificationToken bool
	RevokeOnPasswordReset    bool
}

type AuthServiceImpl struct {
	*accounts
	candidateRepo repositories.CandidateRepository
	resetRepo     repositories.PasswordResetRepository
	opts          AuthOptions

	dummyMu   sync.Mutex
	dummyHash string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	resetRepo repositories.PasswordResetRepository,
	candidateRepo repositories.CandidateRepository,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	mailer AccountMailer,
	async *Dispatcher,
	opts AuthOptions,
) AuthService {
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = time.Hour
	}
	return &AuthServiceImpl{
		accounts: &accounts{
			userRepo:    userRepo,
			sessionRepo: sessionRepo,
			tokens:      tokens,
			hasher:      hasher,
			mailer:      mailer,
			async:       async,
		},
		candidateRepo: candidateRepo,
		resetRepo:     resetRepo,
		opts:          opts,
	}
}

// Register creates the user, an optional minimal candidate profile and the
// first session in one transaction.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	db = db.WithContext(ctx)

	if err := s.ensureEmailFree(db, req.Email); err != nil {
		return nil, err
	}
	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.createUser(tx, req.Email, passwordHash, req.Role)
	if err != nil {
		return nil, err
	}

	if fullName := strings.TrimSpace(req.FullName); req.Role == models.UserRoleCandidate && fullName != "" {
		if err := s.candidateRepo.Create(tx, minimalCandidateProfile(user.ID, fullName)); err != nil {
			return nil, apperrors.FromDB(err, "candidate")
		}
	}

	tokens, err := s.startSession(tx, user)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.FromDB(err, "auth")
	}

	s.sendVerification(user)

	return &dto.AuthResponse{User: dto.NewUserResponse(user), Tokens: *tokens}, nil
}

func minimalCandidateProfile(userID, fullName string) *models.CandidateProfile {
	req := dto.CandidateProfileRequest{FullName: fullName}
	profile := req.ToModel()
	profile.UserID = &userID
	return profile
}

// Login answers every failure with the same error so callers cannot probe
// which emails exist or which role they have.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	db = db.WithContext(ctx)

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.hasher.Compare(s.dummyPasswordHash(), req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.FromDB(err, "auth")
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) || user.Role != req.Role {
		return nil, apperrors.ErrInvalidCredentials
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	tokens, err := s.startSession(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.FromDB(err, "auth")
	}

	return &dto.AuthResponse{User: dto.NewUserResponse(user), Tokens: *tokens}, nil
}

// dummyPasswordHash keeps unknown-email logins as slow as wrong-password ones.
func (s *AuthServiceImpl) dummyPasswordHash() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash == "" {
		hash, err := s.hasher.Hash("unused-password")
		if err != nil {
			// retried on the next unknown-email login
			logger.Error("Failed to build dummy password hash", "error", err)
			return ""
		}
		s.dummyHash = hash
	}
	return s.dummyHash
}

// RefreshToken rotates the session: the presented token is consumed and a
// new pair replaces it.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.TokensResponse, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken.WithError(err)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	hash := auth.HashToken(refreshToken)
	session, err := s.sessionRepo.FindActive(tx, hash, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.FromDB(err, "auth")
	}
	if session.UserID != claims.UserID {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(tx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.FromDB(err, "auth")
	}

	// a concurrent refresh with the same token loses here
	consumed, err := s.sessionRepo.DeleteByHash(tx, hash)
	if err != nil {
		return nil, apperrors.FromDB(err, "auth")
	}
	if !consumed {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	tokens, err := s.startSession(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.FromDB(err, "auth")
	}

	return &dto.TokensResponse{Tokens: *tokens}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, db *gorm.DB, refreshToken string) error {
	if _, err := s.sessionRepo.DeleteByHash(db.WithContext(ctx), auth.HashToken(refreshToken)); err != nil {
		return apperrors.FromDB(err, "auth")
	}
	return nil
}

func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, db *gorm.DB, userID, token string) error {
	if token != "" || s.opts.RequireVerificationToken {
		if err := s.tokens.VerifyVerificationToken(token, userID); err != nil {
			return apperrors.ErrInvalidVerificationToken.WithError(err)
		}
	}
	// unknown ids are a silent success
	if err := s.userRepo.MarkVerified(db.WithContext(ctx), userID); err != nil {
		return apperrors.FromDB(err, "auth")
	}
	return nil
}

// RequestPasswordReset never reveals whether the email is registered.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error {
	db = db.WithContext(ctx)

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.FromDB(err, "auth")
	}

	token, err := auth.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.resetRepo.Create(db, &models.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.opts.ResetTokenTTL),
	}); err != nil {
		return apperrors.FromDB(err, "auth")
	}

	to, ttl := user.Email, s.opts.ResetTokenTTL
	s.async.Go("email", "send_password_reset", func(ctx context.Context) error {
		return s.mailer.SendPasswordReset(ctx, to, token, ttl)
	}, "user_id", user.ID)

	return nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error {
	db = db.WithContext(ctx)

	prt, err := s.resetRepo.FindValid(db, token, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.FromDB(err, "auth")
	}

	passwordHash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	now := s.now()
	used, err := s.resetRepo.MarkUsed(tx, prt.ID, now)
	if err != nil {
		return apperrors.FromDB(err, "auth")
	}
	if !used {
		return apperrors.ErrInvalidResetToken
	}

	if err := s.userRepo.UpdatePasswordHash(tx, prt.UserID, passwordHash); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.FromDB(err, "auth")
	}

	if s.opts.RevokeOnPasswordReset {
		if err := s.sessionRepo.DeleteByUserID(tx, prt.UserID); err != nil {
			return apperrors.FromDB(err, "auth")
		}
		if err := s.resetRepo.InvalidateForUser(tx, prt.UserID, now); err != nil {
			return apperrors.FromDB(err, "auth")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.FromDB(err, "auth")
	}
	return nil
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.FromDB(err, "auth")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
