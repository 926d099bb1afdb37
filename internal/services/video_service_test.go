package services_test

import (
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeWebm = []byte("\x1a\x45\xdf\xa3 not really a webm")

func uploadVideo(t *testing.T, f *fixture, userID, profileID string, order int) *models.VideoResponse {
	t.Helper()
	video, err := f.svc.VideoService.Upload(f.ctx, f.db, userID, &dto.UploadVideoRequest{
		CandidateProfileID: profileID,
		QuestionText:       "Tell us about yourself and your professional background.",
		VideoBlob:          base64.StdEncoding.EncodeToString(fakeWebm),
		DurationSeconds:    42,
		ResponseOrder:      order,
	})
	require.NoError(t, err)
	return video
}

func videoKey(t *testing.T, f *fixture, videoID string) string {
	t.Helper()
	var video models.VideoResponse
	require.NoError(t, f.db.First(&video, "id = ?", videoID).Error)
	return video.StorageKey
}

func TestVideo_Upload(t *testing.T) {
	f := newFixture(t)
	userID, profile := newCandidate(t, f, "v@x.com", dto.CandidateProfileRequest{FullName: "Vee"})

	video := uploadVideo(t, f, userID, profile.ID, 1)
	assert.Equal(t, models.VideoStatusReady, video.Status)
	assert.Equal(t, 42, video.DurationSeconds)

	key := videoKey(t, f, video.ID)
	assert.True(t, strings.HasPrefix(key, "videos/"))
	assert.True(t, strings.HasSuffix(key, ".webm"))
	assert.Equal(t, "/uploads/"+key, video.VideoURL)

	rc, err := f.store.Get(f.ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, fakeWebm, data)
}

func TestVideo_UploadDataURL(t *testing.T) {
	f := newFixture(t)
	userID, profile := newCandidate(t, f, "d@x.com", dto.CandidateProfileRequest{FullName: "Dee"})

	_, err := f.svc.VideoService.Upload(f.ctx, f.db, userID, &dto.UploadVideoRequest{
		CandidateProfileID: profile.ID,
		QuestionText:       "Q",
		VideoBlob:          "data:video/webm;base64," + base64.StdEncoding.EncodeToString(fakeWebm),
		DurationSeconds:    5,
		ResponseOrder:      1,
	})
	assert.NoError(t, err)
}

func TestVideo_UploadRejects(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Upload.MaxVideoBytes = 16 })
	owner, profile := newCandidate(t, f, "o@x.com", dto.CandidateProfileRequest{FullName: "Owner"})
	other, _ := newCandidate(t, f, "x@x.com", dto.CandidateProfileRequest{FullName: "Other"})

	req := func(blob string) *dto.UploadVideoRequest {
		return &dto.UploadVideoRequest{
			CandidateProfileID: profile.ID,
			QuestionText:       "Q",
			VideoBlob:          blob,
			DurationSeconds:    5,
			ResponseOrder:      1,
		}
	}
	small := base64.StdEncoding.EncodeToString([]byte("tiny"))

	_, err := f.svc.VideoService.Upload(f.ctx, f.db, other, req(small))
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	_, err = f.svc.VideoService.Upload(f.ctx, f.db, owner, req("!!not base64!!"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidVideoBlob)

	_, err = f.svc.VideoService.Upload(f.ctx, f.db, owner, req("data:video/webm,plain"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidVideoBlob)

	_, err = f.svc.VideoService.Upload(f.ctx, f.db, owner, req(base64.StdEncoding.EncodeToString(make([]byte, 17))))
	assert.ErrorIs(t, err, apperrors.ErrVideoTooLarge)

	missing := req(small)
	missing.CandidateProfileID = "missing"
	_, err = f.svc.VideoService.Upload(f.ctx, f.db, owner, missing)
	assert.ErrorIs(t, err, apperrors.ErrCandidateNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.VideoResponse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVideo_ListByCandidate(t *testing.T) {
	f := newFixture(t)
	owner, profile := newCandidate(t, f, "l@x.com", dto.CandidateProfileRequest{FullName: "List"})
	stranger, _ := newCandidate(t, f, "s@x.com", dto.CandidateProfileRequest{FullName: "Stranger"})
	employer := register(t, f, "hr@x.com", models.UserRoleEmployer).User.ID

	second := uploadVideo(t, f, owner, profile.ID, 2)
	first := uploadVideo(t, f, owner, profile.ID, 1)

	videos, err := f.svc.VideoService.ListByCandidate(f.ctx, f.db, owner, models.UserRoleCandidate, profile.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, first.ID, videos[0].ID)
	assert.Equal(t, second.ID, videos[1].ID)

	videos, err = f.svc.VideoService.ListByCandidate(f.ctx, f.db, employer, models.UserRoleEmployer, profile.ID)
	require.NoError(t, err)
	assert.Len(t, videos, 2)

	_, err = f.svc.VideoService.ListByCandidate(f.ctx, f.db, stranger, models.UserRoleCandidate, profile.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestVideo_UpdateStatusNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	owner, profile := newCandidate(t, f, "n@x.com", dto.CandidateProfileRequest{FullName: "Note"})
	stranger, _ := newCandidate(t, f, "s@x.com", dto.CandidateProfileRequest{FullName: "Stranger"})
	video := uploadVideo(t, f, owner, profile.ID, 1)

	_, err := f.svc.VideoService.UpdateStatus(f.ctx, f.db, stranger, video.ID, models.VideoStatusFailed)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	assert.Empty(t, f.notifier.For(owner))

	updated, err := f.svc.VideoService.UpdateStatus(f.ctx, f.db, owner, video.ID, models.VideoStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusProcessing, updated.Status)

	events := f.notifier.For(owner)
	require.Len(t, events, 1)
	assert.Equal(t, dto.VideoStatusEvent{
		Type:               dto.EventVideoStatusChanged,
		VideoID:            video.ID,
		CandidateProfileID: profile.ID,
		Status:             models.VideoStatusProcessing,
	}, events[0])

	_, err = f.svc.VideoService.UpdateStatus(f.ctx, f.db, owner, "missing", models.VideoStatusReady)
	assert.ErrorIs(t, err, apperrors.ErrVideoNotFound)
}

func TestVideo_Delete(t *testing.T) {
	f := newFixture(t)
	owner, profile := newCandidate(t, f, "del@x.com", dto.CandidateProfileRequest{FullName: "Del"})
	stranger, _ := newCandidate(t, f, "s@x.com", dto.CandidateProfileRequest{FullName: "Stranger"})
	video := uploadVideo(t, f, owner, profile.ID, 1)
	key := videoKey(t, f, video.ID)

	assert.ErrorIs(t, f.svc.VideoService.Delete(f.ctx, f.db, stranger, video.ID), apperrors.ErrAccessDenied)

	require.NoError(t, f.svc.VideoService.Delete(f.ctx, f.db, owner, video.ID))
	exists, err := f.store.Exists(f.ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, f.svc.VideoService.Delete(f.ctx, f.db, owner, video.ID), apperrors.ErrVideoNotFound)
}
