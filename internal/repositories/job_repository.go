package repositories

import (
	"errors"

	"jobmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job posting not found")

type JobRepository interface {
	Create(db *gorm.DB, job *models.JobPosting) error
	FindByID(db *gorm.DB, id string) (*models.JobPosting, error)
	ListByCompany(db *gorm.DB, companyID string) ([]models.JobPosting, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	// ActivateForCompany flips every posting of the company to active and
	// returns how many rows changed.
	ActivateForCompany(db *gorm.DB, companyID string) (int64, error)
	DeleteByCompany(db *gorm.DB, companyID string) error
}

type jobRepository struct{}

func NewJobRepository() JobRepository {
	return &jobRepository{}
}

func (r *jobRepository) Create(db *gorm.DB, job *models.JobPosting) error {
	return db.Create(job).Error
}

func (r *jobRepository) FindByID(db *gorm.DB, id string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListByCompany(db *gorm.DB, companyID string) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return rowsOrNotFound(
		db.Model(&models.JobPosting{}).Where("id = ?", id).Updates(updates),
		ErrJobNotFound,
	)
}

func (r *jobRepository) Delete(db *gorm.DB, id string) error {
	return rowsOrNotFound(db.Where("id = ?", id).Delete(&models.JobPosting{}), ErrJobNotFound)
}

func (r *jobRepository) ActivateForCompany(db *gorm.DB, companyID string) (int64, error) {
	result := db.Model(&models.JobPosting{}).
		Where("company_id = ?", companyID).
		Update("is_active", true)
	return result.RowsAffected, result.Error
}

func (r *jobRepository) DeleteByCompany(db *gorm.DB, companyID string) error {
	return db.Where("company_id = ?", companyID).Delete(&models.JobPosting{}).Error
}
