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

// JobService manages the postings of the caller's own company.
type JobService interface {
	ListMyJobs(ctx context.Context, db *gorm.DB, userID string) ([]models.JobPosting, error)
	CreateJob(ctx context.Context, db *gorm.DB, userID string, req *dto.JobRequest) (*models.JobPosting, error)
	UpdateJob(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.UpdateJobRequest) (*models.JobPosting, error)
	DeleteJob(ctx context.Context, db *gorm.DB, userID, jobID string) error
}

type JobServiceImpl struct {
	companyRepo repositories.CompanyRepository
	jobRepo     repositories.JobRepository
}

func NewJobService(companyRepo repositories.CompanyRepository, jobRepo repositories.JobRepository) JobService {
	return &JobServiceImpl{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
	}
}

func (s *JobServiceImpl) ListMyJobs(ctx context.Context, db *gorm.DB, userID string) ([]models.JobPosting, error) {
	db = db.WithContext(ctx)

	company, err := s.myCompany(db, userID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.ListByCompany(db, company.ID)
	if err != nil {
		return nil, apperrors.FromDB(err, "job")
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	return jobs, nil
}

// CreateJob publishes immediately; only guest drafts start inactive.
func (s *JobServiceImpl) CreateJob(ctx context.Context, db *gorm.DB, userID string, req *dto.JobRequest) (*models.JobPosting, error) {
	db = db.WithContext(ctx)

	company, err := s.myCompany(db, userID)
	if err != nil {
		return nil, err
	}
	job := req.ToModel(company.ID, true)
	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.FromDB(err, "job")
	}
	return job, nil
}

func (s *JobServiceImpl) UpdateJob(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.UpdateJobRequest) (*models.JobPosting, error) {
	db = db.WithContext(ctx)

	updates := req.Updates()
	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	job, err := s.ownedJob(db, userID, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(db, job.ID, updates); err != nil {
		return nil, jobError(err)
	}

	updated, err := s.jobRepo.FindByID(db, job.ID)
	if err != nil {
		return nil, jobError(err)
	}
	return updated, nil
}

func (s *JobServiceImpl) DeleteJob(ctx context.Context, db *gorm.DB, userID, jobID string) error {
	db = db.WithContext(ctx)

	job, err := s.ownedJob(db, userID, jobID)
	if err != nil {
		return err
	}
	if err := s.jobRepo.Delete(db, job.ID); err != nil {
		return jobError(err)
	}
	return nil
}

func (s *JobServiceImpl) myCompany(db *gorm.DB, userID string) (*models.Company, error) {
	company, err := s.companyRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyRequired
		}
		return nil, apperrors.FromDB(err, "employer")
	}
	return company, nil
}

// ownedJob loads the job and checks that it belongs to the caller's company.
func (s *JobServiceImpl) ownedJob(db *gorm.DB, userID, jobID string) (*models.JobPosting, error) {
	company, err := s.myCompany(db, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, jobError(err)
	}
	if job.CompanyID != company.ID {
		return nil, apperrors.ErrAccessDenied
	}
	return job, nil
}

func jobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.FromDB(err, "job")
}
