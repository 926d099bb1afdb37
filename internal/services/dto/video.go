package dto

import "jobmarket_backend/internal/models"

type UploadVideoRequest struct {
	CandidateProfileID string `json:"candidateProfileId" validate:"required"`
	QuestionText       string `json:"questionText" validate:"required,min=1,max=1000"`
	// VideoBlob is the base64 encoded recording, optionally as a data URL.
	VideoBlob       string `json:"videoBlob" validate:"required"`
	DurationSeconds int    `json:"durationSeconds" validate:"required,min=1,max=300"`
	ResponseOrder   int    `json:"responseOrder" validate:"required,min=1"`
}

type UpdateVideoStatusRequest struct {
	Status models.VideoStatus `json:"status" validate:"required,video_status"`
}

const EventVideoStatusChanged = "video.status_changed"

// VideoStatusEvent is pushed to the owner's websocket connections.
type VideoStatusEvent struct {
	Type               string             `json:"type"`
	VideoID            string             `json:"videoId"`
	CandidateProfileID string             `json:"candidateProfileId"`
	Status             models.VideoStatus `json:"status"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}
