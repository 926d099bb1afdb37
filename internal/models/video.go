package models

type VideoResponse struct {
	BaseModel
	CandidateProfileID string      `gorm:"type:varchar(36);not null;index" json:"candidate_profile_id"`
	QuestionText       string      `gorm:"type:text;not null" json:"question_text"`
	StorageKey         string      `gorm:"type:varchar(255);not null" json:"-"`
	VideoURL           string      `gorm:"type:varchar(500);not null" json:"video_url"`
	DurationSeconds    int         `gorm:"not null" json:"duration_seconds"`
	Status             VideoStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ResponseOrder      int         `gorm:"not null" json:"response_order"`
}
