package services

import (
	"context"
	"errors"

	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EmployerService interface {
	// Guest onboarding
	CreateGuestCompany(ctx context.Context, db *gorm.DB, req *dto.CompanyRequest) (*models.Company, error)
	UpdateGuestCompany(ctx context.Context, db *gorm.DB, companyID string, req *dto.UpdateCompanyRequest) (*models.Company, error)
	AddGuestJob(ctx context.Context, db *gorm.DB, companyID string, req *dto.JobRequest) (*models.JobPosting, error)
	// PublishGuestCompany activates every job drafted for the guest company.
	PublishGuestCompany(ctx context.Context, db *gorm.DB, companyID string) error

	// Signed-in employer
	CreateMyCompany(ctx context.Context, db *gorm.DB, userID string, req *dto.CompanyRequest) (*models.Company, error)
	GetMyCompany(ctx context.Context, db *gorm.DB, userID string) (*models.Company, error)
	UpdateMyCompany(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCompanyRequest) (*models.Company, error)
	DeleteMyCompany(ctx context.Context, db *gorm.DB, userID string) error

	// Public
	GetCompany(ctx context.Context, db *gorm.DB, companyID string) (*models.Company, error)
	Search(ctx context.Context, db *gorm.DB, query *dto.CompanySearchQuery) (*dto.PaginatedResponse, error)
}

type EmployerServiceImpl struct {
	companyRepo repositories.CompanyRepository
	jobRepo     repositories.JobRepository
}

func NewEmployerService(companyRepo repositories.CompanyRepository, jobRepo repositories.JobRepository) EmployerService {
	return &EmployerServiceImpl{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
	}
}

func (s *EmployerServiceImpl) CreateGuestCompany(ctx context.Context, db *gorm.DB, req *dto.CompanyRequest) (*models.Company, error) {
	company := req.ToModel()
	if err := s.companyRepo.Create(db.WithContext(ctx), company); err != nil {
		return nil, apperrors.FromDB(err, "employer")
	}
	return company, nil
}

func (s *EmployerServiceImpl) UpdateGuestCompany(ctx context.Context, db *gorm.DB, companyID string, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	db = db.WithContext(ctx)

	updates := req.Updates()
	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if err := s.companyRepo.UpdateUnclaimed(db, companyID, updates); err != nil {
		return nil, guestCompanyError(err)
	}
	return s.find(db, companyID)
}

// AddGuestJob drafts a job; it stays inactive until the company is published.
func (s *EmployerServiceImpl) AddGuestJob(ctx context.Context, db *gorm.DB, companyID string, req *dto.JobRequest) (*models.JobPosting, error) {
	db = db.WithContext(ctx)

	company, err := s.companyRepo.FindUnclaimed(db, companyID)
	if err != nil {
		return nil, guestCompanyError(err)
	}

	job := req.ToModel(company.ID, false)
	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.FromDB(err, "job")
	}
	return job, nil
}

func (s *EmployerServiceImpl) PublishGuestCompany(ctx context.Context, db *gorm.DB, companyID string) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.companyRepo.FindUnclaimed(tx, companyID); err != nil {
		return guestCompanyError(err)
	}
	if _, err := s.jobRepo.ActivateForCompany(tx, companyID); err != nil {
		return apperrors.FromDB(err, "job")
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.FromDB(err, "employer")
	}
	return nil
}

func (s *EmployerServiceImpl) CreateMyCompany(ctx context.Context, db *gorm.DB, userID string, req *dto.CompanyRequest) (*models.Company, error) {
	db = db.WithContext(ctx)

	if _, err := s.companyRepo.FindByUserID(db, userID); err == nil {
		return nil, apperrors.ErrCompanyProfileExists
	} else if !errors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.FromDB(err, "employer")
	}

	company := req.ToModel()
	company.UserID = &userID
	if err := s.companyRepo.Create(db, company); err != nil {
		if errors.Is(err, repositories.ErrCompanyExists) || apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrCompanyProfileExists
		}
		return nil, apperrors.FromDB(err, "employer")
	}
	return company, nil
}

func (s *EmployerServiceImpl) GetMyCompany(ctx context.Context, db *gorm.DB, userID string) (*models.Company, error) {
	company, err := s.companyRepo.FindByUserID(db.WithContext(ctx), userID)
	if err != nil {
		return nil, companyError(err)
	}
	return company, nil
}

func (s *EmployerServiceImpl) UpdateMyCompany(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	db = db.WithContext(ctx)

	updates := req.Updates()
	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	company, err := s.companyRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, companyError(err)
	}
	if err := s.companyRepo.Update(db, company.ID, updates); err != nil {
		return nil, companyError(err)
	}
	return s.find(db, company.ID)
}

// DeleteMyCompany removes the company together with its job postings.
func (s *EmployerServiceImpl) DeleteMyCompany(ctx context.Context, db *gorm.DB, userID string) error {
	db = db.WithContext(ctx)

	company, err := s.companyRepo.FindByUserID(db, userID)
	if err != nil {
		return companyError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.jobRepo.DeleteByCompany(tx, company.ID); err != nil {
		return apperrors.FromDB(err, "job")
	}
	if err := s.companyRepo.Delete(tx, company.ID); err != nil {
		return companyError(err)
	}
	return apperrors.FromDB(tx.Commit().Error, "employer")
}

func (s *EmployerServiceImpl) GetCompany(ctx context.Context, db *gorm.DB, companyID string) (*models.Company, error) {
	return s.find(db.WithContext(ctx), companyID)
}

func (s *EmployerServiceImpl) Search(ctx context.Context, db *gorm.DB, query *dto.CompanySearchQuery) (*dto.PaginatedResponse, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	companies, total, err := s.companyRepo.Search(db.WithContext(ctx), repositories.CompanySearchFilter{
		Industries:  dto.SplitList(query.Industries),
		CompanySize: query.CompanySize,
		Location:    query.Location,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "employer")
	}
	if companies == nil {
		companies = []models.Company{}
	}

	return &dto.PaginatedResponse{
		Items:      companies,
		Pagination: dto.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *EmployerServiceImpl) find(db *gorm.DB, companyID string) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, companyError(err)
	}
	return company, nil
}

func companyError(err error) error {
	if errors.Is(err, repositories.ErrCompanyNotFound) {
		return apperrors.ErrCompanyNotFound
	}
	return apperrors.FromDB(err, "employer")
}

func guestCompanyError(err error) error {
	if errors.Is(err, repositories.ErrCompanyNotFound) {
		return apperrors.ErrCompanyAlreadyClaimed
	}
	return apperrors.FromDB(err, "employer")
}
