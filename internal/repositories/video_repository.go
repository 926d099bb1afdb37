package repositories

import (
	"errors"

	"jobmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVideoNotFound = errors.New("video response not found")

type VideoRepository interface {
	Create(db *gorm.DB, video *models.VideoResponse) error
	FindByID(db *gorm.DB, id string) (*models.VideoResponse, error)
	ListByCandidate(db *gorm.DB, candidateProfileID string) ([]models.VideoResponse, error)
	UpdateStatus(db *gorm.DB, id string, status models.VideoStatus) error
	Delete(db *gorm.DB, id string) error
	// ListKeysByCandidate returns the storage keys of every video of the
	// profile, used to clean up objects before the rows go away.
	ListKeysByCandidate(db *gorm.DB, candidateProfileID string) ([]string, error)
	DeleteByCandidate(db *gorm.DB, candidateProfileID string) error
}

type videoRepository struct{}

func NewVideoRepository() VideoRepository {
	return &videoRepository{}
}

func (r *videoRepository) Create(db *gorm.DB, video *models.VideoResponse) error {
	return db.Create(video).Error
}

func (r *videoRepository) FindByID(db *gorm.DB, id string) (*models.VideoResponse, error) {
	var video models.VideoResponse
	if err := db.First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) ListByCandidate(db *gorm.DB, candidateProfileID string) ([]models.VideoResponse, error) {
	var videos []models.VideoResponse
	err := db.Where("candidate_profile_id = ?", candidateProfileID).
		Order("response_order ASC").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) UpdateStatus(db *gorm.DB, id string, status models.VideoStatus) error {
	return rowsOrNotFound(
		db.Model(&models.VideoResponse{}).Where("id = ?", id).Update("status", status),
		ErrVideoNotFound,
	)
}

func (r *videoRepository) Delete(db *gorm.DB, id string) error {
	return rowsOrNotFound(db.Where("id = ?", id).Delete(&models.VideoResponse{}), ErrVideoNotFound)
}

func (r *videoRepository) ListKeysByCandidate(db *gorm.DB, candidateProfileID string) ([]string, error) {
	var keys []string
	err := db.Model(&models.VideoResponse{}).
		Where("candidate_profile_id = ?", candidateProfileID).
		Pluck("storage_key", &keys).Error
	return keys, err
}

func (r *videoRepository) DeleteByCandidate(db *gorm.DB, candidateProfileID string) error {
	return db.Where("candidate_profile_id = ?", candidateProfileID).Delete(&models.VideoResponse{}).Error
}
