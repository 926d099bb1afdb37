package models

import "gorm.io/datatypes"

type Company struct {
	BaseModel
	UserID        *string                     `gorm:"type:varchar(36);uniqueIndex" json:"user_id"`
	CompanyName   string                      `gorm:"type:varchar(100);not null" json:"company_name"`
	Industry      string                      `gorm:"type:varchar(50)" json:"industry"`
	CompanySize   string                      `gorm:"type:varchar(50)" json:"company_size"`
	Location      string                      `gorm:"type:varchar(100)" json:"location"`
	Website       string                      `gorm:"type:varchar(255)" json:"website"`
	Description   string                      `gorm:"type:text" json:"description"`
	CompanyValues datatypes.JSONSlice[string] `json:"company_values"`
	WorkCulture   string                      `gorm:"type:text" json:"work_culture"`
	HasVideoIntro bool                        `gorm:"not null;default:false" json:"has_video_intro"`
	VideoIntroURL *string                     `gorm:"type:varchar(500)" json:"video_intro_url"`
}

func (c *Company) IsClaimed() bool {
	return c.UserID != nil
}

type JobPosting struct {
	BaseModel
	CompanyID        string                      `gorm:"type:varchar(36);not null;index" json:"company_id"`
	JobTitle         string                      `gorm:"type:varchar(100);not null" json:"job_title"`
	Department       string                      `gorm:"type:varchar(50)" json:"department"`
	EmploymentType   EmploymentType              `gorm:"type:varchar(20);not null;default:'full-time'" json:"employment_type"`
	WorkingModel     WorkingModel                `gorm:"type:varchar(20);not null;default:'remote'" json:"working_model"`
	Location         string                      `gorm:"type:varchar(100)" json:"location"`
	SalaryMin        *int                        `json:"salary_min"`
	SalaryMax        *int                        `json:"salary_max"`
	SalaryCurrency   string                      `gorm:"type:varchar(3);not null;default:'USD'" json:"salary_currency"`
	ExperienceLevel  string                      `gorm:"type:varchar(50)" json:"experience_level"`
	Requirements     datatypes.JSONSlice[string] `json:"requirements"`
	Responsibilities datatypes.JSONSlice[string] `json:"responsibilities"`
	Benefits         datatypes.JSONSlice[string] `json:"benefits"`
	IsActive         bool                        `gorm:"not null;default:false;index" json:"is_active"`
}
