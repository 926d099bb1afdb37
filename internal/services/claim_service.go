package services

import (
	"context"
	"errors"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ClaimService turns guest profiles into accounts. A profile can be claimed
// exactly once; losers of a race see the same 404 as a second attempt.
type ClaimService interface {
	ClaimCandidateProfile(ctx context.Context, db *gorm.DB, profileID string, req *dto.ClaimRequest) (*dto.ClaimCandidateResponse, error)
	ClaimCompany(ctx context.Context, db *gorm.DB, companyID string, req *dto.ClaimRequest) (*dto.ClaimCompanyResponse, error)
}

type ClaimServiceImpl struct {
	*accounts
	candidateRepo repositories.CandidateRepository
	companyRepo   repositories.CompanyRepository
}

func NewClaimService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	candidateRepo repositories.CandidateRepository,
	companyRepo repositories.CompanyRepository,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	mailer AccountMailer,
	async *Dispatcher,
) ClaimService {
	return &ClaimServiceImpl{
		accounts: &accounts{
			userRepo:    userRepo,
			sessionRepo: sessionRepo,
			tokens:      tokens,
			hasher:      hasher,
			mailer:      mailer,
			async:       async,
		},
		candidateRepo: candidateRepo,
		companyRepo:   companyRepo,
	}
}

func (s *ClaimServiceImpl) ClaimCandidateProfile(ctx context.Context, db *gorm.DB, profileID string, req *dto.ClaimRequest) (*dto.ClaimCandidateResponse, error) {
	db = db.WithContext(ctx)

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.candidateRepo.FindUnclaimed(tx, profileID); err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrCandidateAlreadyClaimed
		}
		return nil, apperrors.FromDB(err, "candidate")
	}

	if err := s.ensureEmailFree(tx, req.Email); err != nil {
		return nil, err
	}
	user, err := s.createUser(tx, req.Email, passwordHash, models.UserRoleCandidate)
	if err != nil {
		return nil, err
	}

	claimed, err := s.candidateRepo.Claim(tx, profileID, user.ID, req.FullName)
	if err != nil {
		return nil, apperrors.FromDB(err, "candidate")
	}
	if !claimed {
		return nil, apperrors.ErrCandidateAlreadyClaimed
	}

	tokens, err := s.startSession(tx, user)
	if err != nil {
		return nil, err
	}

	profile, err := s.candidateRepo.FindByID(tx, profileID)
	if err != nil {
		return nil, apperrors.FromDB(err, "candidate")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.FromDB(err, "candidate")
	}

	s.sendVerification(user)

	return &dto.ClaimCandidateResponse{
		User:    dto.NewUserResponse(user),
		Tokens:  *tokens,
		Profile: profile,
	}, nil
}

// ClaimCompany mirrors ClaimCandidateProfile. full_name belongs to the person
// claiming and is not written to the company.
func (s *ClaimServiceImpl) ClaimCompany(ctx context.Context, db *gorm.DB, companyID string, req *dto.ClaimRequest) (*dto.ClaimCompanyResponse, error) {
	db = db.WithContext(ctx)

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.companyRepo.FindUnclaimed(tx, companyID); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyAlreadyClaimed
		}
		return nil, apperrors.FromDB(err, "employer")
	}

	if err := s.ensureEmailFree(tx, req.Email); err != nil {
		return nil, err
	}
	user, err := s.createUser(tx, req.Email, passwordHash, models.UserRoleEmployer)
	if err != nil {
		return nil, err
	}

	claimed, err := s.companyRepo.Claim(tx, companyID, user.ID)
	if err != nil {
		return nil, apperrors.FromDB(err, "employer")
	}
	if !claimed {
		return nil, apperrors.ErrCompanyAlreadyClaimed
	}

	tokens, err := s.startSession(tx, user)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByID(tx, companyID)
	if err != nil {
		return nil, apperrors.FromDB(err, "employer")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.FromDB(err, "employer")
	}

	s.sendVerification(user)

	return &dto.ClaimCompanyResponse{
		User:    dto.NewUserResponse(user),
		Tokens:  *tokens,
		Company: company,
	}, nil
}
