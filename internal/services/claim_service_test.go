package services_test

import (
	"fmt"
	"sync"
	"testing"

	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"
	"jobmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimReq(email, name string) *dto.ClaimRequest {
	return &dto.ClaimRequest{Email: email, Password: strongPassword, FullName: name}
}

func TestClaimCandidateProfile(t *testing.T) {
	f := newFixture(t)

	guest, err := f.svc.CandidateService.CreateGuestProfile(f.ctx, f.db, &dto.CandidateProfileRequest{
		FullName:        "Guest Name",
		YearsExperience: 3,
	})
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)

	resp, err := f.svc.ClaimService.ClaimCandidateProfile(f.ctx, f.db, guest.ID, claimReq("bob@x.com", "Bob"))
	require.NoError(t, err)

	assert.Equal(t, "bob@x.com", resp.User.Email)
	assert.Equal(t, models.UserRoleCandidate, resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	require.NotNil(t, resp.Profile.UserID)
	assert.Equal(t, resp.User.ID, *resp.Profile.UserID)
	assert.Equal(t, "Bob", resp.Profile.FullName)
	assert.Equal(t, 3, resp.Profile.YearsExperience)

	stored, err := f.svc.CandidateService.GetProfile(f.ctx, f.db, guest.ID)
	require.NoError(t, err)
	assert.True(t, stored.OwnedBy(resp.User.ID))
	assert.Equal(t, "Bob", stored.FullName)

	assert.Len(t, f.sentTo("bob@x.com"), 1)

	// the new account can log in and refresh
	_, err = f.svc.AuthService.RefreshToken(f.ctx, f.db, resp.Tokens.RefreshToken)
	assert.NoError(t, err)
}

func TestClaimCandidateProfile_Twice(t *testing.T) {
	f := newFixture(t)
	guest := helpers.CreateGuestCandidate(t, f.db, "Guest")

	_, err := f.svc.ClaimService.ClaimCandidateProfile(f.ctx, f.db, guest.ID, claimReq("first@x.com", "First"))
	require.NoError(t, err)

	_, err = f.svc.ClaimService.ClaimCandidateProfile(f.ctx, f.db, guest.ID, claimReq("second@x.com", "Second"))
	assert.ErrorIs(t, err, apperrors.ErrCandidateAlreadyClaimed)

	// the failed claim left no account behind
	var users int64
	require.NoError(t, f.db.Model(&models.User{}).Where("email = ?", "second@x.com").Count(&users).Error)
	assert.Zero(t, users)
}

func TestClaimCandidateProfile_Concurrent(t *testing.T) {
	f := newFixture(t)
	guest := helpers.CreateGuestCandidate(t, f.db, "Guest")

	const attempts = 5
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.ClaimService.ClaimCandidateProfile(f.ctx, f.db, guest.ID,
				claimReq(fmt.Sprintf("racer%d@x.com", i), "Racer"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else {
				errs = append(errs, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	for _, err := range errs {
		assert.ErrorIs(t, err, apperrors.ErrCandidateAlreadyClaimed)
	}

	var users int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestClaimCandidateProfile_EmailTaken(t *testing.T) {
	f := newFixture(t)
	register(t, f, "taken@x.com", models.UserRoleEmployer)
	guest := helpers.CreateGuestCandidate(t, f.db, "Guest")

	_, err := f.svc.ClaimService.ClaimCandidateProfile(f.ctx, f.db, guest.ID, claimReq("taken@x.com", "Taken"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	stored, err := f.svc.CandidateService.GetProfile(f.ctx, f.db, guest.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsClaimed())
}

func TestClaimCandidateProfile_Unknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ClaimService.ClaimCandidateProfile(f.ctx, f.db, "missing", claimReq("a@x.com", "A"))
	assert.ErrorIs(t, err, apperrors.ErrCandidateAlreadyClaimed)
}

func TestClaimCompany(t *testing.T) {
	f := newFixture(t)
	company := helpers.CreateGuestCompany(t, f.db, "Acme")

	resp, err := f.svc.ClaimService.ClaimCompany(f.ctx, f.db, company.ID, claimReq("owner@acme.com", "Olive Owner"))
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleEmployer, resp.User.Role)
	require.NotNil(t, resp.Company.UserID)
	assert.Equal(t, resp.User.ID, *resp.Company.UserID)
	assert.Equal(t, "Acme", resp.Company.CompanyName)

	mine, err := f.svc.EmployerService.GetMyCompany(f.ctx, f.db, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, company.ID, mine.ID)

	_, err = f.svc.ClaimService.ClaimCompany(f.ctx, f.db, company.ID, claimReq("late@acme.com", "Late"))
	assert.ErrorIs(t, err, apperrors.ErrCompanyAlreadyClaimed)
}
