package dto

import (
	"strings"

	"jobmarket_backend/internal/models"

	"gorm.io/datatypes"
)

type SkillInput struct {
	Name        string                  `json:"name" validate:"required,max=100"`
	Proficiency models.SkillProficiency `json:"proficiency" validate:"required,skill_proficiency"`
}

// CandidateProfileRequest is used both for guest onboarding and for a
// signed-in candidate creating their profile.
type CandidateProfileRequest struct {
	FullName               string              `json:"full_name" validate:"required,min=2,max=100"`
	Location               string              `json:"location" validate:"max=100"`
	HasWorkAuthorization   bool                `json:"has_work_authorization"`
	Languages              []string            `json:"languages"`
	YearsExperience        int                 `json:"years_experience" validate:"min=0,max=50"`
	TargetJobTitles        []string            `json:"target_job_titles"`
	PreferredIndustries    []string            `json:"preferred_industries"`
	WorkingModel           models.WorkingModel `json:"working_model" validate:"omitempty,working_model"`
	SalaryMin              *int                `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax              *int                `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency         string              `json:"salary_currency" validate:"omitempty,currency"`
	IsWillingToRelocate    bool                `json:"is_willing_to_relocate"`
	Skills                 []SkillInput        `json:"skills" validate:"dive"`
	Achievements           string              `json:"achievements" validate:"max=2000"`
	HasConsentedAIAnalysis bool                `json:"has_consented_ai_analysis"`
}

func (r CandidateProfileRequest) SalaryBounds() (*int, *int) { return r.SalaryMin, r.SalaryMax }

// ToModel fills defaults; the caller decides the owner.
func (r *CandidateProfileRequest) ToModel() *models.CandidateProfile {
	workingModel := r.WorkingModel
	if workingModel == "" {
		workingModel = models.WorkingModelRemote
	}
	return &models.CandidateProfile{
		FullName:               strings.TrimSpace(r.FullName),
		Location:               r.Location,
		HasWorkAuthorization:   r.HasWorkAuthorization,
		Languages:              JSONStrings(r.Languages),
		YearsExperience:        r.YearsExperience,
		TargetJobTitles:        JSONStrings(r.TargetJobTitles),
		PreferredIndustries:    JSONStrings(r.PreferredIndustries),
		WorkingModel:           workingModel,
		SalaryMin:              r.SalaryMin,
		SalaryMax:              r.SalaryMax,
		SalaryCurrency:         Currency(r.SalaryCurrency),
		IsWillingToRelocate:    r.IsWillingToRelocate,
		Skills:                 JSONSkills(r.Skills),
		Achievements:           r.Achievements,
		HasConsentedAIAnalysis: r.HasConsentedAIAnalysis,
	}
}

// UpdateCandidateProfileRequest is a partial update; nil fields are left alone.
type UpdateCandidateProfileRequest struct {
	FullName               *string              `json:"full_name" validate:"omitempty,min=2,max=100"`
	Location               *string              `json:"location" validate:"omitempty,max=100"`
	HasWorkAuthorization   *bool                `json:"has_work_authorization"`
	Languages              []string             `json:"languages"`
	YearsExperience        *int                 `json:"years_experience" validate:"omitempty,min=0,max=50"`
	TargetJobTitles        []string             `json:"target_job_titles"`
	PreferredIndustries    []string             `json:"preferred_industries"`
	WorkingModel           *models.WorkingModel `json:"working_model" validate:"omitempty,working_model"`
	SalaryMin              *int                 `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax              *int                 `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency         *string              `json:"salary_currency" validate:"omitempty,currency"`
	IsWillingToRelocate    *bool                `json:"is_willing_to_relocate"`
	Skills                 []SkillInput         `json:"skills" validate:"omitempty,dive"`
	Achievements           *string              `json:"achievements" validate:"omitempty,max=2000"`
	HasConsentedAIAnalysis *bool                `json:"has_consented_ai_analysis"`
	IsProfileComplete      *bool                `json:"is_profile_complete"`
}

func (r UpdateCandidateProfileRequest) SalaryBounds() (*int, *int) { return r.SalaryMin, r.SalaryMax }

// Updates returns the column map for the fields that were sent.
func (r *UpdateCandidateProfileRequest) Updates() map[string]interface{} {
	u := make(map[string]interface{})
	if r.FullName != nil {
		u["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.Location != nil {
		u["location"] = *r.Location
	}
	if r.HasWorkAuthorization != nil {
		u["has_work_authorization"] = *r.HasWorkAuthorization
	}
	if r.Languages != nil {
		u["languages"] = JSONStrings(r.Languages)
	}
	if r.YearsExperience != nil {
		u["years_experience"] = *r.YearsExperience
	}
	if r.TargetJobTitles != nil {
		u["target_job_titles"] = JSONStrings(r.TargetJobTitles)
	}
	if r.PreferredIndustries != nil {
		u["preferred_industries"] = JSONStrings(r.PreferredIndustries)
	}
	if r.WorkingModel != nil {
		u["working_model"] = *r.WorkingModel
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
	if r.IsWillingToRelocate != nil {
		u["is_willing_to_relocate"] = *r.IsWillingToRelocate
	}
	if r.Skills != nil {
		u["skills"] = JSONSkills(r.Skills)
	}
	if r.Achievements != nil {
		u["achievements"] = *r.Achievements
	}
	if r.HasConsentedAIAnalysis != nil {
		u["has_consented_ai_analysis"] = *r.HasConsentedAIAnalysis
	}
	if r.IsProfileComplete != nil {
		u["is_profile_complete"] = *r.IsProfileComplete
	}
	return u
}

// CandidateSearchQuery binds from the query string. List parameters accept
// repeated keys as well as comma separated values.
type CandidateSearchQuery struct {
	Skills        []string `form:"skills"`
	ExperienceMin *int     `form:"experience_min" validate:"omitempty,min=0"`
	ExperienceMax *int     `form:"experience_max" validate:"omitempty,min=0"`
	WorkingModel  string   `form:"working_model" validate:"omitempty,working_model"`
	Location      string   `form:"location" validate:"max=100"`
	SalaryMin     *int     `form:"salary_min" validate:"omitempty,min=0"`
	SalaryMax     *int     `form:"salary_max" validate:"omitempty,min=0"`
	Languages     []string `form:"languages"`
	Industries    []string `form:"industries"`
	Page          int      `form:"page" validate:"omitempty,min=1"`
	Limit         int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

func (q CandidateSearchQuery) SalaryBounds() (*int, *int) { return q.SalaryMin, q.SalaryMax }
func (q CandidateSearchQuery) ExperienceBounds() (*int, *int) {
	return q.ExperienceMin, q.ExperienceMax
}

// SplitList flattens ["a,b", "c"] into ["a", "b", "c"], dropping blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// JSONStrings never returns nil so empty arrays are stored as [] rather than null.
func JSONStrings(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}

func JSONSkills(skills []SkillInput) datatypes.JSONSlice[models.Skill] {
	out := make(datatypes.JSONSlice[models.Skill], 0, len(skills))
	for _, s := range skills {
		out = append(out, models.Skill{Name: strings.TrimSpace(s.Name), Proficiency: s.Proficiency})
	}
	return out
}

// Currency upper-cases the code and defaults to USD.
func Currency(code string) string {
	if code == "" {
		return "USD"
	}
	return strings.ToUpper(code)
}
