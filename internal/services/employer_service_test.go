package services_test

import (
	"testing"

	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployer(t *testing.T, f *fixture, email string, req dto.CompanyRequest) (string, *models.Company) {
	t.Helper()
	user := register(t, f, email, models.UserRoleEmployer)
	company, err := f.svc.EmployerService.CreateMyCompany(f.ctx, f.db, user.User.ID, &req)
	require.NoError(t, err)
	return user.User.ID, company
}

func TestEmployer_GuestOnboardingAndPublish(t *testing.T) {
	f := newFixture(t)

	company, err := f.svc.EmployerService.CreateGuestCompany(f.ctx, f.db, &dto.CompanyRequest{
		CompanyName:   "Acme",
		CompanyValues: []string{"Ownership"},
	})
	require.NoError(t, err)
	assert.False(t, company.IsClaimed())

	updated, err := f.svc.EmployerService.UpdateGuestCompany(f.ctx, f.db, company.ID, &dto.UpdateCompanyRequest{
		Industry: strPtr("SaaS"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SaaS", updated.Industry)

	job, err := f.svc.EmployerService.AddGuestJob(f.ctx, f.db, company.ID, &dto.JobRequest{JobTitle: "Account Manager"})
	require.NoError(t, err)
	assert.False(t, job.IsActive)
	assert.Equal(t, models.EmploymentFullTime, job.EmploymentType)
	assert.Equal(t, models.WorkingModelRemote, job.WorkingModel)

	require.NoError(t, f.svc.EmployerService.PublishGuestCompany(f.ctx, f.db, company.ID))

	var stored models.JobPosting
	require.NoError(t, f.db.First(&stored, "id = ?", job.ID).Error)
	assert.True(t, stored.IsActive)

	claim, err := f.svc.ClaimService.ClaimCompany(f.ctx, f.db, company.ID, claimReq("o@acme.com", "Olive"))
	require.NoError(t, err)

	// a claimed company is no longer open to guest edits
	_, err = f.svc.EmployerService.UpdateGuestCompany(f.ctx, f.db, company.ID, &dto.UpdateCompanyRequest{Industry: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrCompanyAlreadyClaimed)
	_, err = f.svc.EmployerService.AddGuestJob(f.ctx, f.db, company.ID, &dto.JobRequest{JobTitle: "Late"})
	assert.ErrorIs(t, err, apperrors.ErrCompanyAlreadyClaimed)
	assert.ErrorIs(t, f.svc.EmployerService.PublishGuestCompany(f.ctx, f.db, company.ID), apperrors.ErrCompanyAlreadyClaimed)

	jobs, err := f.svc.JobService.ListMyJobs(f.ctx, f.db, claim.User.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)
}

func TestEmployer_PublishUnknownCompany(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.EmployerService.PublishGuestCompany(f.ctx, f.db, "missing"), apperrors.ErrCompanyAlreadyClaimed)
}

func TestEmployer_MyCompany(t *testing.T) {
	f := newFixture(t)
	userID, company := newEmployer(t, f, "boss@x.com", dto.CompanyRequest{CompanyName: "Boss Inc"})

	_, err := f.svc.EmployerService.CreateMyCompany(f.ctx, f.db, userID, &dto.CompanyRequest{CompanyName: "Second"})
	assert.ErrorIs(t, err, apperrors.ErrCompanyProfileExists)

	mine, err := f.svc.EmployerService.GetMyCompany(f.ctx, f.db, userID)
	require.NoError(t, err)
	assert.Equal(t, company.ID, mine.ID)

	_, err = f.svc.EmployerService.UpdateMyCompany(f.ctx, f.db, userID, &dto.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)

	updated, err := f.svc.EmployerService.UpdateMyCompany(f.ctx, f.db, userID, &dto.UpdateCompanyRequest{
		Location:      strPtr("Almaty"),
		CompanyValues: []string{"Speed"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Almaty", updated.Location)
	assert.Equal(t, []string{"Speed"}, []string(updated.CompanyValues))

	public, err := f.svc.EmployerService.GetCompany(f.ctx, f.db, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Almaty", public.Location)

	_, err = f.svc.JobService.CreateJob(f.ctx, f.db, userID, &dto.JobRequest{JobTitle: "Sales Representative"})
	require.NoError(t, err)

	require.NoError(t, f.svc.EmployerService.DeleteMyCompany(f.ctx, f.db, userID))
	_, err = f.svc.EmployerService.GetCompany(f.ctx, f.db, company.ID)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)

	var jobs int64
	require.NoError(t, f.db.Model(&models.JobPosting{}).Count(&jobs).Error)
	assert.Zero(t, jobs)
}

func TestEmployer_Search(t *testing.T) {
	f := newFixture(t)
	newEmployer(t, f, "a@x.com", dto.CompanyRequest{CompanyName: "Alpha", Industry: "Fintech", CompanySize: "11-50", Location: "Almaty"})
	newEmployer(t, f, "b@x.com", dto.CompanyRequest{CompanyName: "Beta", Industry: "Retail", CompanySize: "51-200", Location: "Berlin"})
	_, err := f.svc.EmployerService.CreateGuestCompany(f.ctx, f.db, &dto.CompanyRequest{CompanyName: "Guest", Industry: "Fintech"})
	require.NoError(t, err)

	search := func(q dto.CompanySearchQuery) []string {
		t.Helper()
		res, err := f.svc.EmployerService.Search(f.ctx, f.db, &q)
		require.NoError(t, err)
		var names []string
		for _, c := range res.Items.([]models.Company) {
			names = append(names, c.CompanyName)
		}
		return names
	}

	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, search(dto.CompanySearchQuery{}))
	assert.Equal(t, []string{"Alpha"}, search(dto.CompanySearchQuery{Industries: []string{"Fintech,Gaming"}}))
	assert.Equal(t, []string{"Beta"}, search(dto.CompanySearchQuery{CompanySize: "51-200"}))
	assert.Equal(t, []string{"Beta"}, search(dto.CompanySearchQuery{Location: "BERLIN"}))
}

func TestJobs_OwnershipAndCompanyRequired(t *testing.T) {
	f := newFixture(t)

	loner := register(t, f, "loner@x.com", models.UserRoleEmployer).User.ID
	_, err := f.svc.JobService.CreateJob(f.ctx, f.db, loner, &dto.JobRequest{JobTitle: "Nope"})
	assert.ErrorIs(t, err, apperrors.ErrCompanyRequired)
	_, err = f.svc.JobService.ListMyJobs(f.ctx, f.db, loner)
	assert.ErrorIs(t, err, apperrors.ErrCompanyRequired)

	owner, _ := newEmployer(t, f, "owner@x.com", dto.CompanyRequest{CompanyName: "Owner Co"})
	rival, _ := newEmployer(t, f, "rival@x.com", dto.CompanyRequest{CompanyName: "Rival Co"})

	job, err := f.svc.JobService.CreateJob(f.ctx, f.db, owner, &dto.JobRequest{
		JobTitle:       "Customer Support",
		EmploymentType: models.EmploymentContract,
		Requirements:   []string{"Patience"},
	})
	require.NoError(t, err)
	assert.True(t, job.IsActive)
	assert.Equal(t, models.EmploymentContract, job.EmploymentType)

	_, err = f.svc.JobService.UpdateJob(f.ctx, f.db, rival, job.ID, &dto.UpdateJobRequest{JobTitle: strPtr("Hijacked")})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	assert.ErrorIs(t, f.svc.JobService.DeleteJob(f.ctx, f.db, rival, job.ID), apperrors.ErrAccessDenied)

	_, err = f.svc.JobService.UpdateJob(f.ctx, f.db, owner, job.ID, &dto.UpdateJobRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)

	updated, err := f.svc.JobService.UpdateJob(f.ctx, f.db, owner, job.ID, &dto.UpdateJobRequest{
		JobTitle: strPtr("Senior Customer Support"),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Customer Support", updated.JobTitle)
	assert.False(t, updated.IsActive)

	require.NoError(t, f.svc.JobService.DeleteJob(f.ctx, f.db, owner, job.ID))
	assert.ErrorIs(t, f.svc.JobService.DeleteJob(f.ctx, f.db, owner, job.ID), apperrors.ErrJobNotFound)

	jobs, err := f.svc.JobService.ListMyJobs(f.ctx, f.db, owner)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NotNil(t, jobs)
}
