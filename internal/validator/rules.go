package validator

import (
	"log"
	"reflect"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/services/dto"

	"github.com/go-playground/validator/v10"
)

var customMessages = map[string]string{
	"strong_password":   "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
	"user_role":         "User type must be either candidate or employer",
	"working_model":     "Working model must be remote, hybrid, or onsite",
	"employment_type":   "Employment type must be full-time, part-time, contract, or internship",
	"video_status":      "Status must be one of: pending, ready, processing, failed",
	"skill_proficiency": "Proficiency must be beginner, intermediate, advanced, or expert",
	"currency":          "Currency code must be exactly 3 letters",
	"salary_range":      "Minimum salary cannot be greater than maximum salary",
	"experience_range":  "Minimum experience cannot be greater than maximum experience",
}

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("strong_password", func(fl validator.FieldLevel) bool {
		return auth.IsStrongPassword(fl.Field().String())
	})
	mustRegister("user_role", enumRule(func(s string) bool { return models.UserRole(s).Valid() }))
	mustRegister("working_model", enumRule(func(s string) bool { return models.WorkingModel(s).Valid() }))
	mustRegister("employment_type", enumRule(func(s string) bool { return models.EmploymentType(s).Valid() }))
	mustRegister("video_status", enumRule(func(s string) bool { return models.VideoStatus(s).Valid() }))
	mustRegister("skill_proficiency", enumRule(func(s string) bool { return models.SkillProficiency(s).Valid() }))
	mustRegister("currency", validateCurrency)

	// one struct-level func per type: a later registration replaces an earlier one
	v.RegisterStructValidation(rangeRule,
		dto.CandidateProfileRequest{},
		dto.UpdateCandidateProfileRequest{},
		dto.CandidateSearchQuery{},
		dto.JobRequest{},
		dto.UpdateJobRequest{},
	)
}

// enumRule leaves empty values to 'required'.
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if len(value) != 3 {
		return false
	}
	for _, r := range value {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

type salaryBounded interface {
	SalaryBounds() (min, max *int)
}

type experienceBounded interface {
	ExperienceBounds() (min, max *int)
}

func rangeRule(sl validator.StructLevel) {
	value := structValue(sl)
	if b, ok := value.(salaryBounded); ok {
		if lo, hi := b.SalaryBounds(); lo != nil && hi != nil && *lo > *hi {
			sl.ReportError(*hi, "salary_max", "SalaryMax", "salary_range", "")
		}
	}
	if b, ok := value.(experienceBounded); ok {
		if lo, hi := b.ExperienceBounds(); lo != nil && hi != nil && *lo > *hi {
			sl.ReportError(*hi, "experience_max", "ExperienceMax", "experience_range", "")
		}
	}
}

func structValue(sl validator.StructLevel) interface{} {
	cur := sl.Current()
	if cur.Kind() == reflect.Ptr {
		cur = cur.Elem()
	}
	return cur.Interface()
}
