package models

import "gorm.io/datatypes"

type Skill struct {
	Name        string           `json:"name"`
	Proficiency SkillProficiency `json:"proficiency"`
}

// CandidateProfile starts as a guest profile (UserID nil) and is bound to a
// candidate account once claimed.
type CandidateProfile struct {
	BaseModel
	UserID                 *string                     `gorm:"type:varchar(36);uniqueIndex" json:"user_id"`
	FullName               string                      `gorm:"type:varchar(100);not null" json:"full_name"`
	Location               string                      `gorm:"type:varchar(100)" json:"location"`
	HasWorkAuthorization   bool                        `gorm:"not null;default:false" json:"has_work_authorization"`
	Languages              datatypes.JSONSlice[string] `json:"languages"`
	YearsExperience        int                         `gorm:"not null;default:0" json:"years_experience"`
	TargetJobTitles        datatypes.JSONSlice[string] `json:"target_job_titles"`
	PreferredIndustries    datatypes.JSONSlice[string] `json:"preferred_industries"`
	WorkingModel           WorkingModel                `gorm:"type:varchar(20);not null;default:'remote'" json:"working_model"`
	SalaryMin              *int                        `json:"salary_min"`
	SalaryMax              *int                        `json:"salary_max"`
	SalaryCurrency         string                      `gorm:"type:varchar(3);not null;default:'USD'" json:"salary_currency"`
	IsWillingToRelocate    bool                        `gorm:"not null;default:false" json:"is_willing_to_relocate"`
	Skills                 datatypes.JSONSlice[Skill]  `json:"skills"`
	Achievements           string                      `gorm:"type:text" json:"achievements"`
	HasConsentedAIAnalysis bool                        `gorm:"column:has_consented_ai_analysis;not null;default:false" json:"has_consented_ai_analysis"`
	IsProfileComplete      bool                        `gorm:"not null;default:false;index" json:"is_profile_complete"`
}

func (p *CandidateProfile) IsClaimed() bool {
	return p.UserID != nil
}

func (p *CandidateProfile) OwnedBy(userID string) bool {
	return p.UserID != nil && *p.UserID == userID
}
