package repositories

import (
	"errors"

	"jobmarket_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyExists   = errors.New("company already exists")
)

type CompanySearchFilter struct {
	Industries  []string
	CompanySize string
	Location    string
	Page        int
	Limit       int
}

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Company, error)
	FindUnclaimed(db *gorm.DB, id string) (*models.Company, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	UpdateUnclaimed(db *gorm.DB, id string, updates map[string]interface{}) error
	// Claim is the conditional counterpart of CandidateRepository.Claim.
	Claim(db *gorm.DB, id, userID string) (bool, error)
	Delete(db *gorm.DB, id string) error
	Search(db *gorm.DB, filter CompanySearchFilter) ([]models.Company, int64, error)
}

type companyRepository struct{}

func NewCompanyRepository() CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(db *gorm.DB, company *models.Company) error {
	if err := db.Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCompanyExists
		}
		return err
	}
	return nil
}

func (r *companyRepository) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	return r.first(db.Where("id = ?", id))
}

func (r *companyRepository) FindByUserID(db *gorm.DB, userID string) (*models.Company, error) {
	return r.first(db.Where("user_id = ?", userID))
}

func (r *companyRepository) FindUnclaimed(db *gorm.DB, id string) (*models.Company, error) {
	return r.first(db.Where("id = ? AND user_id IS NULL", id))
}

func (r *companyRepository) first(q *gorm.DB) (*models.Company, error) {
	var company models.Company
	if err := q.First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return rowsOrNotFound(
		db.Model(&models.Company{}).Where("id = ?", id).Updates(updates),
		ErrCompanyNotFound,
	)
}

func (r *companyRepository) UpdateUnclaimed(db *gorm.DB, id string, updates map[string]interface{}) error {
	return rowsOrNotFound(
		db.Model(&models.Company{}).Where("id = ? AND user_id IS NULL", id).Updates(updates),
		ErrCompanyNotFound,
	)
}

func (r *companyRepository) Claim(db *gorm.DB, id, userID string) (bool, error) {
	result := db.Model(&models.Company{}).
		Where("id = ? AND user_id IS NULL", id).
		Update("user_id", userID)
	return result.RowsAffected == 1, result.Error
}

func (r *companyRepository) Delete(db *gorm.DB, id string) error {
	return rowsOrNotFound(db.Where("id = ?", id).Delete(&models.Company{}), ErrCompanyNotFound)
}

func (r *companyRepository) Search(db *gorm.DB, f CompanySearchFilter) ([]models.Company, int64, error) {
	filters := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id IS NOT NULL")
		if industries := nonEmpty(f.Industries); len(industries) > 0 {
			q = q.Where("industry IN ?", industries)
		}
		if f.CompanySize != "" {
			q = q.Where("company_size = ?", f.CompanySize)
		}
		if f.Location != "" {
			q = q.Where("LOWER(location) "+likeClause, likeContains(f.Location))
		}
		return q
	}

	var total int64
	if err := db.Model(&models.Company{}).Scopes(filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := db.Scopes(filters, paginate(f.Page, f.Limit)).
		Order("updated_at DESC").
		Find(&companies).Error
	return companies, total, err
}
