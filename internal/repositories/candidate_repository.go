package repositories

import (
	"errors"

	"jobmarket_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCandidateNotFound = errors.New("candidate profile not found")
	ErrCandidateExists   = errors.New("candidate profile already exists")
)

type CandidateSearchFilter struct {
	Skills        []string
	Languages     []string
	Industries    []string
	ExperienceMin *int
	ExperienceMax *int
	WorkingModel  string
	Location      string
	SalaryMin     *int
	SalaryMax     *int
	Page          int
	Limit         int
}

type CandidateRepository interface {
	Create(db *gorm.DB, profile *models.CandidateProfile) error
	FindByID(db *gorm.DB, id string) (*models.CandidateProfile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.CandidateProfile, error)
	FindUnclaimed(db *gorm.DB, id string) (*models.CandidateProfile, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	UpdateUnclaimed(db *gorm.DB, id string, updates map[string]interface{}) error
	// Claim binds an unclaimed profile to userID. It returns false when the
	// profile was claimed concurrently or does not exist.
	Claim(db *gorm.DB, id, userID, fullName string) (bool, error)
	Delete(db *gorm.DB, id string) error
	Search(db *gorm.DB, filter CandidateSearchFilter) ([]models.CandidateProfile, int64, error)
}

type candidateRepository struct{}

func NewCandidateRepository() CandidateRepository {
	return &candidateRepository{}
}

func (r *candidateRepository) Create(db *gorm.DB, profile *models.CandidateProfile) error {
	if err := db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCandidateExists
		}
		return err
	}
	return nil
}

func (r *candidateRepository) FindByID(db *gorm.DB, id string) (*models.CandidateProfile, error) {
	return r.first(db.Where("id = ?", id))
}

func (r *candidateRepository) FindByUserID(db *gorm.DB, userID string) (*models.CandidateProfile, error) {
	return r.first(db.Where("user_id = ?", userID))
}

func (r *candidateRepository) FindUnclaimed(db *gorm.DB, id string) (*models.CandidateProfile, error) {
	return r.first(db.Where("id = ? AND user_id IS NULL", id))
}

func (r *candidateRepository) first(q *gorm.DB) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	if err := q.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *candidateRepository) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	return rowsOrNotFound(
		db.Model(&models.CandidateProfile{}).Where("id = ?", id).Updates(updates),
		ErrCandidateNotFound,
	)
}

func (r *candidateRepository) UpdateUnclaimed(db *gorm.DB, id string, updates map[string]interface{}) error {
	return rowsOrNotFound(
		db.Model(&models.CandidateProfile{}).Where("id = ? AND user_id IS NULL", id).Updates(updates),
		ErrCandidateNotFound,
	)
}

func (r *candidateRepository) Claim(db *gorm.DB, id, userID, fullName string) (bool, error) {
	updates := map[string]interface{}{"user_id": userID}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	result := db.Model(&models.CandidateProfile{}).
		Where("id = ? AND user_id IS NULL", id).
		Updates(updates)
	return result.RowsAffected == 1, result.Error
}

func (r *candidateRepository) Delete(db *gorm.DB, id string) error {
	return rowsOrNotFound(db.Where("id = ?", id).Delete(&models.CandidateProfile{}), ErrCandidateNotFound)
}

func (r *candidateRepository) Search(db *gorm.DB, f CandidateSearchFilter) ([]models.CandidateProfile, int64, error) {
	filters := func(q *gorm.DB) *gorm.DB {
		q = q.Where("is_profile_complete = ? AND user_id IS NOT NULL", true)
		q = jsonArrayContainsAny(q, "skills", f.Skills)
		q = jsonArrayContainsAny(q, "languages", f.Languages)
		q = jsonArrayContainsAny(q, "preferred_industries", f.Industries)
		if f.ExperienceMin != nil {
			q = q.Where("years_experience >= ?", *f.ExperienceMin)
		}
		if f.ExperienceMax != nil {
			q = q.Where("years_experience <= ?", *f.ExperienceMax)
		}
		if f.WorkingModel != "" {
			q = q.Where("working_model = ?", f.WorkingModel)
		}
		if f.Location != "" {
			q = q.Where("LOWER(location) "+likeClause, likeContains(f.Location))
		}
		// salary ranges overlap
		if f.SalaryMin != nil {
			q = q.Where("salary_max >= ?", *f.SalaryMin)
		}
		if f.SalaryMax != nil {
			q = q.Where("salary_min <= ?", *f.SalaryMax)
		}
		return q
	}

	var total int64
	if err := db.Model(&models.CandidateProfile{}).Scopes(filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.CandidateProfile
	err := db.Scopes(filters, paginate(f.Page, f.Limit)).
		Order("updated_at DESC").
		Find(&profiles).Error
	return profiles, total, err
}
