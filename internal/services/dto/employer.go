package dto

import (
	"strings"

	"jobmarket_backend/internal/models"
)

type CompanyRequest struct {
	CompanyName   string   `json:"company_name" validate:"required,min=2,max=100"`
	Industry      string   `json:"industry" validate:"max=50"`
	CompanySize   string   `json:"company_size" validate:"max=50"`
	Location      string   `json:"location" validate:"max=100"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Description   string   `json:"description" validate:"max=2000"`
	CompanyValues []string `json:"company_values"`
	WorkCulture   string   `json:"work_culture" validate:"max=2000"`
	HasVideoIntro bool     `json:"has_video_intro"`
	VideoIntroURL *string  `json:"video_intro_url" validate:"omitempty,url"`
}

func (r *CompanyRequest) ToModel() *models.Company {
	return &models.Company{
		CompanyName:   strings.TrimSpace(r.CompanyName),
		Industry:      r.Industry,
		CompanySize:   r.CompanySize,
		Location:      r.Location,
		Website:       r.Website,
		Description:   r.Description,
		CompanyValues: JSONStrings(r.CompanyValues),
		WorkCulture:   r.WorkCulture,
		HasVideoIntro: r.HasVideoIntro,
		VideoIntroURL: r.VideoIntroURL,
	}
}

type UpdateCompanyRequest struct {
	CompanyName   *string  `json:"company_name" validate:"omitempty,min=2,max=100"`
	Industry      *string  `json:"industry" validate:"omitempty,max=50"`
	CompanySize   *string  `json:"company_size" validate:"omitempty,max=50"`
	Location      *string  `json:"location" validate:"omitempty,max=100"`
	Website       *string  `json:"website" validate:"omitempty,url"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	CompanyValues []string `json:"company_values"`
	WorkCulture   *string  `json:"work_culture" validate:"omitempty,max=2000"`
	HasVideoIntro *bool    `json:"has_video_intro"`
	VideoIntroURL *string  `json:"video_intro_url" validate:"omitempty,url"`
}

func (r *UpdateCompanyRequest) Updates() map[string]interface{} {
	u := make(map[string]interface{})
	if r.CompanyName != nil {
		u["company_name"] = strings.TrimSpace(*r.CompanyName)
	}
	if r.Industry != nil {
		u["industry"] = *r.Industry
	}
	if r.CompanySize != nil {
		u["company_size"] = *r.CompanySize
	}
	if r.Location != nil {
		u["location"] = *r.Location
	}
	if r.Website != nil {
		u["website"] = *r.Website
	}
	if r.Description != nil {
		u["description"] = *r.Description
	}
	if r.CompanyValues != nil {
		u["company_values"] = JSONStrings(r.CompanyValues)
	}
	if r.WorkCulture != nil {
		u["work_culture"] = *r.WorkCulture
	}
	if r.HasVideoIntro != nil {
		u["has_video_intro"] = *r.HasVideoIntro
	}
	if r.VideoIntroURL != nil {
		u["video_intro_url"] = *r.VideoIntroURL
	}
	return u
}

type CompanySearchQuery struct {
	Industries  []string `form:"industries"`
	CompanySize string   `form:"company_size" validate:"max=50"`
	Location    string   `form:"location" validate:"max=100"`
	Page        int      `form:"page" validate:"omitempty,min=1"`
	Limit       int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

type JobRequest struct {
	JobTitle         string                `json:"job_title" validate:"required,min=2,max=100"`
	Department       string                `json:"department" validate:"max=50"`
	EmploymentType   models.EmploymentType `json:"employment_type" validate:"omitempty,employment_type"`
	WorkingModel     models.WorkingModel   `json:"working_model" validate:"omitempty,working_model"`
	Location         string                `json:"location" validate:"max=100"`
	SalaryMin        *int                  `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax        *int                  `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency   string                `json:"salary_currency" validate:"omitempty,currency"`
	ExperienceLevel  string                `json:"experience_level" validate:"max=50"`
	Requirements     []string              `json:"requirements"`
	Responsibilities []string              `json:"responsibilities"`
	Benefits         []string              `json:"benefits"`
}

func (r JobRequest) SalaryBounds() (*int, *int) { return r.SalaryMin, r.SalaryMax }

func (r *JobRequest) ToModel(companyID string, active bool) *models.JobPosting {
	employmentType := r.EmploymentType
	if employmentType == "" {
		employmentType = models.EmploymentFullTime
	}
	workingModel := r.WorkingModel
	if workingModel == "" {
		workingModel = models.WorkingModelRemote
	}
	return &models.JobPosting{
		CompanyID:        companyID,
		JobTitle:         strings.TrimSpace(r.JobTitle),
		Department:       r.Department,
		EmploymentType:   employmentType,
		WorkingModel:     workingModel,
		Location:         r.Location,
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
		SalaryCurrency:   Currency(r.SalaryCurrency),
		ExperienceLevel:  r.ExperienceLevel,
		Requirements:     JSONStrings(r.Requirements),
		Responsibilities: JSONStrings(r.Responsibilities),
		Benefits:         JSONStrings(r.Benefits),
		IsActive:         active,
	}
}

type UpdateJobRequest struct {
	JobTitle         *string                `json:"job_title" validate:"omitempty,min=2,max=100"`
	Department       *string                `json:"department" validate:"omitempty,max=50"`
	EmploymentType   *models.EmploymentType `json:"employment_type" validate:"omitempty,employment_type"`
	WorkingModel     *models.WorkingModel   `json:"working_model" validate:"omitempty,working_model"`
	Location         *string                `json:"location" validate:"omitempty,max=100"`
	SalaryMin        *int                   `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax        *int                   `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency   *string                `json:"salary_currency" validate:"omitempty,currency"`
	ExperienceLevel  *string                `json:"experience_level" validate:"omitempty,max=50"`
	Requirements     []string               `json:"requirements"`
	Responsibilities []string               `json:"responsibilities"`
	Benefits         []string               `json:"benefits"`
	IsActive         *bool                  `json:"is_active"`
}

func (r UpdateJobRequest) SalaryBounds() (*int, *int) { return r.SalaryMin, r.SalaryMax }

func (r *UpdateJobRequest) Updates() map[string]interface{} {
	u := make(map[string]interface{})
	if r.JobTitle != nil {
		u["job_title"] = strings.TrimSpace(*r.JobTitle)
	}
	if r.Department != nil {
		u["department"] = *r.Department
	}
	if r.EmploymentType != nil {
		u["employment_type"] = *r.EmploymentType
	}
	if r.WorkingModel != nil {
		u["working_model"] = *r.WorkingModel
	}
	if r.Location != nil {
		u["location"] = *r.Location
	}
	if r.SalaryMin != nil {
		u["salary_min"] = *r.SalaryMin
	}
	if r.SalaryMax != nil {
		u["salary_max"] = *r.SalaryMax
	}
	if r.SalaryCurrency != nil {
		u["salary_currency"] = Currency(*r.SalaryCurrency)
	}
	if r.ExperienceLevel != nil {
		u["experience_level"] = *r.ExperienceLevel
	}
	if r.Requirements != nil {
		u["requirements"] = JSONStrings(r.Requirements)
	}
	if r.Responsibilities != nil {
		u["responsibilities"] = JSONStrings(r.Responsibilities)
	}
	if r.Benefits != nil {
		u["benefits"] = JSONStrings(r.Benefits)
	}
	if r.IsActive != nil {
		u["is_active"] = *r.IsActive
	}
	return u
}
