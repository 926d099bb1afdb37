package auth

import (
	"testing"
	"time"

	"jobmarket_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTokenService(clock Clock) *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}, clock)
}

var alice = TokenPayload{UserID: "u-1", Email: "alice@example.com", Role: models.UserRoleCandidate}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestTokenService(&fakeClock{now: time.Now()})

	pair, err := svc.IssueTokenPair(alice)
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.UserRoleCandidate, claims.Role)

	claims, err = svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(nil)
	pair, err := svc.IssueTokenPair(alice)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	verification, err := svc.IssueVerificationToken("u-1")
	require.NoError(t, err)
	_, err = svc.VerifyAccess(verification)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPairsIssuedInSameSecondDiffer(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(clock)

	first, err := svc.IssueTokenPair(alice)
	require.NoError(t, err)
	second, err := svc.IssueTokenPair(alice)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, HashToken(first.RefreshToken), HashToken(second.RefreshToken))
}

func TestExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(clock)
	pair, err := svc.IssueTokenPair(alice)
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)

	clock.Advance(7 * 24 * time.Hour)
	_, err = svc.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc := newTestTokenService(nil)
	other := NewTokenService(TokenConfig{
		AccessSecret: "other", RefreshSecret: "other-refresh",
		AccessTTL: time.Minute, RefreshTTL: time.Hour,
	}, nil)

	pair, err := other.IssueTokenPair(alice)
	require.NoError(t, err)
	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// alg=none must never verify
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u-1", Role: models.UserRoleCandidate, Purpose: purposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.VerifyAccess(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerificationToken(t *testing.T) {
	svc := newTestTokenService(nil)
	tok, err := svc.IssueVerificationToken("u-1")
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyVerificationToken(tok, "u-1"))
	assert.ErrorIs(t, svc.VerifyVerificationToken(tok, "u-2"), ErrInvalidToken)
}

func TestHashTokenIsStableHex(t *testing.T) {
	h := HashToken("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("abc"))
	assert.NotEqual(t, h, HashToken("abd"))
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	require.NoError(t, err)
	b, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("P@ssw0rd1")
	require.NoError(t, err)

	assert.True(t, h.Compare(hash, "P@ssw0rd1"))
	assert.False(t, h.Compare(hash, "P@ssw0rd2"))
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).cost)
}

func TestIsStrongPassword(t *testing.T) {
	for pw, want := range map[string]bool{
		"P@ssw0rd1":  true,
		"Aa1!aaaa":   true,
		"Aa1@":       false,
		"password1":  false,
		"PASSWORD1@": false,
		"Password@":  false,
		"Password1":  false,
	} {
		assert.Equal(t, want, IsStrongPassword(pw), pw)
	}
}

func TestRoleHelpers(t *testing.T) {
	owner := "u-1"
	assert.True(t, HasRole(models.UserRoleEmployer, models.UserRoleCandidate, models.UserRoleEmployer))
	assert.False(t, HasRole(models.UserRoleEmployer, models.UserRoleCandidate))
	assert.True(t, OwnsResource(&owner, "u-1"))
	assert.False(t, OwnsResource(&owner, "u-2"))
	assert.False(t, OwnsResource(nil, "u-1"))
}
