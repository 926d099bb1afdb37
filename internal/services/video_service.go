package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/internal/storage"
	"jobmarket_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const videoContentType = "video/webm"

// StatusNotifier delivers live events to the connections of one user.
type StatusNotifier interface {
	SendToUser(userID string, event interface{})
}

type VideoService interface {
	Upload(ctx context.Context, db *gorm.DB, userID string, req *dto.UploadVideoRequest) (*models.VideoResponse, error)
	// ListByCandidate lets employers read any profile; candidates only their own.
	ListByCandidate(ctx context.Context, db *gorm.DB, userID string, role models.UserRole, candidateProfileID string) ([]models.VideoResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, videoID string, status models.VideoStatus) (*models.VideoResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, videoID string) error
}

type VideoServiceImpl struct {
	videoRepo     repositories.VideoRepository
	candidateRepo repositories.CandidateRepository
	storage       storage.Storage
	notifier      StatusNotifier
	cfg           config.UploadConfig
}

func NewVideoService(
	videoRepo repositories.VideoRepository,
	candidateRepo repositories.CandidateRepository,
	store storage.Storage,
	notifier StatusNotifier,
	cfg config.UploadConfig,
) VideoService {
	if cfg.VideoPrefix == "" {
		cfg.VideoPrefix = "videos"
	}
	return &VideoServiceImpl{
		videoRepo:     videoRepo,
		candidateRepo: candidateRepo,
		storage:       store,
		notifier:      notifier,
		cfg:           cfg,
	}
}

func (s *VideoServiceImpl) Upload(ctx context.Context, db *gorm.DB, userID string, req *dto.UploadVideoRequest) (*models.VideoResponse, error) {
	db = db.WithContext(ctx)

	if _, err := s.ownedProfile(db, userID, req.CandidateProfileID); err != nil {
		return nil, err
	}

	data, err := decodeVideoBlob(req.VideoBlob, s.cfg.MaxVideoBytes)
	if err != nil {
		return nil, err
	}

	key := strings.TrimSuffix(s.cfg.VideoPrefix, "/") + "/" + uuid.NewString() + ".webm"
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), videoContentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "video", "Failed to store video", http.StatusInternalServerError)
	}

	video := &models.VideoResponse{
		CandidateProfileID: req.CandidateProfileID,
		QuestionText:       strings.TrimSpace(req.QuestionText),
		StorageKey:         key,
		VideoURL:           s.storage.URL(key),
		DurationSeconds:    req.DurationSeconds,
		Status:             models.VideoStatusReady,
		ResponseOrder:      req.ResponseOrder,
	}
	if err := s.videoRepo.Create(db, video); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxWithError(ctx, "Failed to remove orphaned video object", delErr, "key", key)
		}
		return nil, apperrors.FromDB(err, "video")
	}

	logger.CtxInfo(ctx, "Video uploaded", "video_id", video.ID, "bytes", len(data))
	return video, nil
}

func (s *VideoServiceImpl) ListByCandidate(ctx context.Context, db *gorm.DB, userID string, role models.UserRole, candidateProfileID string) ([]models.VideoResponse, error) {
	db = db.WithContext(ctx)

	profile, err := s.candidateRepo.FindByID(db, candidateProfileID)
	if err != nil {
		return nil, candidateError(err)
	}
	if role != models.UserRoleEmployer && !profile.OwnedBy(userID) {
		return nil, apperrors.ErrAccessDenied
	}

	videos, err := s.videoRepo.ListByCandidate(db, profile.ID)
	if err != nil {
		return nil, apperrors.FromDB(err, "video")
	}
	if videos == nil {
		videos = []models.VideoResponse{}
	}
	return videos, nil
}

func (s *VideoServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, userID, videoID string, status models.VideoStatus) (*models.VideoResponse, error) {
	db = db.WithContext(ctx)

	video, err := s.ownedVideo(db, userID, videoID)
	if err != nil {
		return nil, err
	}
	if err := s.videoRepo.UpdateStatus(db, video.ID, status); err != nil {
		return nil, videoError(err)
	}
	video.Status = status

	if s.notifier != nil {
		s.notifier.SendToUser(userID, dto.VideoStatusEvent{
			Type:               dto.EventVideoStatusChanged,
			VideoID:            video.ID,
			CandidateProfileID: video.CandidateProfileID,
			Status:             status,
		})
	}
	return video, nil
}

// Delete removes the row first; a stale object is only logged.
func (s *VideoServiceImpl) Delete(ctx context.Context, db *gorm.DB, userID, videoID string) error {
	db = db.WithContext(ctx)

	video, err := s.ownedVideo(db, userID, videoID)
	if err != nil {
		return err
	}
	if err := s.videoRepo.Delete(db, video.ID); err != nil {
		return videoError(err)
	}
	if err := s.storage.Delete(ctx, video.StorageKey); err != nil {
		logger.CtxWithError(ctx, "Failed to delete video object", err, "key", video.StorageKey)
	}
	return nil
}

func (s *VideoServiceImpl) ownedProfile(db *gorm.DB, userID, profileID string) (*models.CandidateProfile, error) {
	profile, err := s.candidateRepo.FindByID(db, profileID)
	if err != nil {
		return nil, candidateError(err)
	}
	if !profile.OwnedBy(userID) {
		return nil, apperrors.ErrAccessDenied
	}
	return profile, nil
}

func (s *VideoServiceImpl) ownedVideo(db *gorm.DB, userID, videoID string) (*models.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(db, videoID)
	if err != nil {
		return nil, videoError(err)
	}
	if _, err := s.ownedProfile(db, userID, video.CandidateProfileID); err != nil {
		return nil, err
	}
	return video, nil
}

// decodeVideoBlob accepts plain base64 or a data URL. The size check runs
// on the encoded length first so oversized bodies are never decoded.
func decodeVideoBlob(blob string, maxBytes int64) ([]byte, error) {
	blob = strings.TrimSpace(blob)
	if strings.HasPrefix(blob, "data:") {
		idx := strings.Index(blob, ",")
		if idx < 0 || !strings.HasSuffix(blob[:idx], ";base64") {
			return nil, apperrors.ErrInvalidVideoBlob
		}
		blob = blob[idx+1:]
	}
	if blob == "" {
		return nil, apperrors.ErrInvalidVideoBlob
	}

	if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(blob)))-2 > maxBytes {
		return nil, apperrors.ErrVideoTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, apperrors.ErrInvalidVideoBlob.WithError(err)
	}
	if len(data) == 0 {
		return nil, apperrors.ErrInvalidVideoBlob
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, apperrors.ErrVideoTooLarge
	}
	return data, nil
}

func videoError(err error) error {
	if errors.Is(err, repositories.ErrVideoNotFound) {
		return apperrors.ErrVideoNotFound
	}
	return apperrors.FromDB(err, "video")
}
