package services

import (
	"context"
	"errors"

	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/internal/storage"
	"jobmarket_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CandidateService interface {
	// Guest onboarding
	CreateGuestProfile(ctx context.Context, db *gorm.DB, req *dto.CandidateProfileRequest) (*models.CandidateProfile, error)
	UpdateGuestProfile(ctx context.Context, db *gorm.DB, profileID string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error)

	// Signed-in candidate
	CreateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CandidateProfileRequest) (*models.CandidateProfile, error)
	GetMyProfile(ctx context.Context, db *gorm.DB, userID string) (*models.CandidateProfile, error)
	UpdateMyProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error)
	DeleteMyProfile(ctx context.Context, db *gorm.DB, userID string) error
	MarkComplete(ctx context.Context, db *gorm.DB, userID, profileID string) (*models.CandidateProfile, error)

	// Public
	GetProfile(ctx context.Context, db *gorm.DB, profileID string) (*models.CandidateProfile, error)
	Search(ctx context.Context, db *gorm.DB, query *dto.CandidateSearchQuery) (*dto.PaginatedResponse, error)
}

type CandidateServiceImpl struct {
	candidateRepo repositories.CandidateRepository
	videoRepo     repositories.VideoRepository
	storage       storage.Storage
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	videoRepo repositories.VideoRepository,
	store storage.Storage,
) CandidateService {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		videoRepo:     videoRepo,
		storage:       store,
	}
}

func (s *CandidateServiceImpl) CreateGuestProfile(ctx context.Context, db *gorm.DB, req *dto.CandidateProfileRequest) (*models.CandidateProfile, error) {
	profile := req.ToModel()
	if err := s.candidateRepo.Create(db.WithContext(ctx), profile); err != nil {
		return nil, apperrors.FromDB(err, "candidate")
	}
	return profile, nil
}

// UpdateGuestProfile only touches profiles nobody has claimed yet.
func (s *CandidateServiceImpl) UpdateGuestProfile(ctx context.Context, db *gorm.DB, profileID string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error) {
	db = db.WithContext(ctx)

	updates := req.Updates()
	// completion is decided by the owner after claiming
	delete(updates, "is_profile_complete")
	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	if err := s.candidateRepo.UpdateUnclaimed(db, profileID, updates); err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrCandidateAlreadyClaimed
		}
		return nil, apperrors.FromDB(err, "candidate")
	}
	return s.find(db, profileID)
}

func (s *CandidateServiceImpl) CreateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CandidateProfileRequest) (*models.CandidateProfile, error) {
	db = db.WithContext(ctx)

	if _, err := s.candidateRepo.FindByUserID(db, userID); err == nil {
		return nil, apperrors.ErrCandidateProfileExists
	} else if !errors.Is(err, repositories.ErrCandidateNotFound) {
		return nil, apperrors.FromDB(err, "candidate")
	}

	profile := req.ToModel()
	profile.UserID = &userID
	if err := s.candidateRepo.Create(db, profile); err != nil {
		if errors.Is(err, repositories.ErrCandidateExists) || apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrCandidateProfileExists
		}
		return nil, apperrors.FromDB(err, "candidate")
	}
	return profile, nil
}

func (s *CandidateServiceImpl) GetMyProfile(ctx context.Context, db *gorm.DB, userID string) (*models.CandidateProfile, error) {
	profile, err := s.candidateRepo.FindByUserID(db.WithContext(ctx), userID)
	if err != nil {
		return nil, candidateError(err)
	}
	return profile, nil
}

func (s *CandidateServiceImpl) UpdateMyProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error) {
	db = db.WithContext(ctx)

	updates := req.Updates()
	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	profile, err := s.candidateRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, candidateError(err)
	}
	if err := s.candidateRepo.Update(db, profile.ID, updates); err != nil {
		return nil, candidateError(err)
	}
	return s.find(db, profile.ID)
}

// DeleteMyProfile removes the profile and its video responses. Stored objects
// are removed after commit; a failure there leaves an orphan object only.
func (s *CandidateServiceImpl) DeleteMyProfile(ctx context.Context, db *gorm.DB, userID string) error {
	db = db.WithContext(ctx)

	profile, err := s.candidateRepo.FindByUserID(db, userID)
	if err != nil {
		return candidateError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	keys, err := s.videoRepo.ListKeysByCandidate(tx, profile.ID)
	if err != nil {
		return apperrors.FromDB(err, "candidate")
	}
	if err := s.videoRepo.DeleteByCandidate(tx, profile.ID); err != nil {
		return apperrors.FromDB(err, "candidate")
	}
	if err := s.candidateRepo.Delete(tx, profile.ID); err != nil {
		return candidateError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.FromDB(err, "candidate")
	}

	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.CtxWithError(ctx, "Failed to delete video object", err, "key", key)
		}
	}
	return nil
}

func (s *CandidateServiceImpl) MarkComplete(ctx context.Context, db *gorm.DB, userID, profileID string) (*models.CandidateProfile, error) {
	db = db.WithContext(ctx)

	profile, err := s.candidateRepo.FindByID(db, profileID)
	if err != nil {
		return nil, candidateError(err)
	}
	if !profile.OwnedBy(userID) {
		return nil, apperrors.ErrAccessDenied
	}

	if err := s.candidateRepo.Update(db, profile.ID, map[string]interface{}{"is_profile_complete": true}); err != nil {
		return nil, candidateError(err)
	}
	profile.IsProfileComplete = true
	return profile, nil
}

func (s *CandidateServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, profileID string) (*models.CandidateProfile, error) {
	return s.find(db.WithContext(ctx), profileID)
}

func (s *CandidateServiceImpl) Search(ctx context.Context, db *gorm.DB, query *dto.CandidateSearchQuery) (*dto.PaginatedResponse, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	profiles, total, err := s.candidateRepo.Search(db.WithContext(ctx), repositories.CandidateSearchFilter{
		Skills:        dto.SplitList(query.Skills),
		Languages:     dto.SplitList(query.Languages),
		Industries:    dto.SplitList(query.Industries),
		ExperienceMin: query.ExperienceMin,
		ExperienceMax: query.ExperienceMax,
		WorkingModel:  query.WorkingModel,
		Location:      query.Location,
		SalaryMin:     query.SalaryMin,
		SalaryMax:     query.SalaryMax,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "candidate")
	}
	if profiles == nil {
		profiles = []models.CandidateProfile{}
	}

	return &dto.PaginatedResponse{
		Items:      profiles,
		Pagination: dto.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *CandidateServiceImpl) find(db *gorm.DB, profileID string) (*models.CandidateProfile, error) {
	profile, err := s.candidateRepo.FindByID(db, profileID)
	if err != nil {
		return nil, candidateError(err)
	}
	return profile, nil
}

func candidateError(err error) error {
	if errors.Is(err, repositories.ErrCandidateNotFound) {
		return apperrors.ErrCandidateNotFound
	}
	return apperrors.FromDB(err, "candidate")
}
