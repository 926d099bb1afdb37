package integration_test

import (
	"net/http"
	"testing"

	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim_GuestCandidateProfile(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/candidates/guest-profile", "", map[string]interface{}{
		"full_name":         "Guest Applicant",
		"location":          "Berlin",
		"target_job_titles": []string{"Customer Support"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, env.Message)
	var guest models.CandidateProfile
	env.DataInto(t, &guest)
	require.NotEmpty(t, guest.ID)
	assert.Nil(t, guest.UserID)

	claimPath := "/api/v1/candidates/profile/" + guest.ID + "/claim"
	res, env = ts.SendRequest(t, http.MethodPost, claimPath, "", map[string]string{
		"email":     "bob@x.com",
		"password":  "P@ssw0rd1",
		"full_name": "Bob",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	assert.Equal(t, "Profile claimed and account created successfully", env.Message)

	var claimed dto.ClaimCandidateResponse
	env.DataInto(t, &claimed)
	assert.Equal(t, "bob@x.com", claimed.User.Email)
	assert.Equal(t, models.UserRoleCandidate, claimed.User.Role)
	require.NotNil(t, claimed.Profile)
	require.NotNil(t, claimed.Profile.UserID)
	assert.Equal(t, claimed.User.ID, *claimed.Profile.UserID)
	assert.Equal(t, "Bob", claimed.Profile.FullName)
	assert.Equal(t, "Berlin", claimed.Profile.Location)

	res, env = ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/profile/me", claimed.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	var mine models.CandidateProfile
	env.DataInto(t, &mine)
	assert.Equal(t, guest.ID, mine.ID)

	// a claimed profile cannot be claimed again
	res, _ = ts.SendRequest(t, http.MethodPost, claimPath, "", map[string]string{
		"email":     "mallory@x.com",
		"password":  "P@ssw0rd1",
		"full_name": "Mallory",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// nor edited as a guest
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/candidates/profile/"+guest.ID, "", map[string]string{
		"location": "Paris",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = login(t, ts, "bob@x.com", "P@ssw0rd1", "candidate")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, linkFromMail(t, ts, "bob@x.com", "/verify-email").Query().Get("userId"))
}

func TestClaim_EmailTakenLeavesProfileUnclaimed(t *testing.T) {
	ts := helpers.NewTestServer(t)
	register(t, ts, "bob@x.com", "employer")
	guest := helpers.CreateGuestCandidate(t, ts.DB, "Guest")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/candidates/profile/"+guest.ID+"/claim", "", map[string]string{
		"email":     "bob@x.com",
		"password":  "P@ssw0rd1",
		"full_name": "Bob",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var reloaded models.CandidateProfile
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", guest.ID).Error)
	assert.Nil(t, reloaded.UserID)
}

func TestClaim_UnknownProfile(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/candidates/profile/does-not-exist/claim", "", map[string]string{
		"email":     "bob@x.com",
		"password":  "P@ssw0rd1",
		"full_name": "Bob",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.False(t, env.Success)

	var users int64
	require.NoError(t, ts.DB.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestClaim_GuestCompanyWithJobs(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/employers/profile", "", map[string]interface{}{
		"company_name": "Acme Corp",
		"industry":     "Retail",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, env.Message)
	var company models.Company
	env.DataInto(t, &company)

	res, env = ts.SendRequest(t, http.MethodPost, "/api/v1/employers/profile/"+company.ID+"/job", "", map[string]interface{}{
		"job_title":       "Sales Representative",
		"employment_type": "full-time",
		"working_model":   "hybrid",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, env.Message)

	res, env = ts.SendRequest(t, http.MethodPut, "/api/v1/employers/profile/"+company.ID+"/publish", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)

	res, env = ts.SendRequest(t, http.MethodPost, "/api/v1/employers/profile/"+company.ID+"/claim", "", map[string]string{
		"email":     "owner@acme.com",
		"password":  "P@ssw0rd1",
		"full_name": "Olivia Owner",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	var claimed dto.ClaimCompanyResponse
	env.DataInto(t, &claimed)
	assert.Equal(t, models.UserRoleEmployer, claimed.User.Role)
	require.NotNil(t, claimed.Company.UserID)
	assert.Equal(t, claimed.User.ID, *claimed.Company.UserID)
	assert.Equal(t, "Acme Corp", claimed.Company.CompanyName)

	res, env = ts.SendRequest(t, http.MethodGet, "/api/v1/employers/jobs", claimed.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	var jobs []models.JobPosting
	env.DataInto(t, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Sales Representative", jobs[0].JobTitle)
	assert.True(t, jobs[0].IsActive)

	// once claimed the guest routes are closed
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/employers/profile/"+company.ID+"/job", "", map[string]interface{}{
		"job_title": "Another",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
