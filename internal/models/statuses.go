package models

type UserRole string
type WorkingModel string
type EmploymentType string
type VideoStatus string
type SkillProficiency string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleEmployer  UserRole = "employer"

	WorkingModelRemote WorkingModel = "remote"
	WorkingModelHybrid WorkingModel = "hybrid"
	WorkingModelOnsite WorkingModel = "onsite"

	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"

	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusFailed     VideoStatus = "failed"

	ProficiencyBeginner     SkillProficiency = "beginner"
	ProficiencyIntermediate SkillProficiency = "intermediate"
	ProficiencyAdvanced     SkillProficiency = "advanced"
	ProficiencyExpert       SkillProficiency = "expert"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCandidate, UserRoleEmployer:
		return true
	}
	return false
}

func (w WorkingModel) Valid() bool {
	switch w {
	case WorkingModelRemote, WorkingModelHybrid, WorkingModelOnsite:
		return true
	}
	return false
}

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusPending, VideoStatusProcessing, VideoStatusReady, VideoStatusFailed:
		return true
	}
	return false
}

func (p SkillProficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}
