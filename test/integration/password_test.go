package integration_test

import (
	"net/http"
	"strings"
	"testing"

	"jobmarket_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bcrypt accepts at most 72 bytes.
var overlongPassword = testPassword + strings.Repeat("a", 70)

func requirePasswordRejected(t *testing.T, res *http.Response, env *helpers.Envelope) {
	t.Helper()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, env.Message)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Contains(t, string(env.Error.Details), "password")
}

func TestPassword_OverlongRejectedOnEveryRoute(t *testing.T) {
	ts := helpers.NewTestServer(t)

	t.Run("register", func(t *testing.T) {
		res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":    "long@example.com",
			"password": overlongPassword,
			"role":     "candidate",
		})
		requirePasswordRejected(t, res, env)
	})

	t.Run("claim candidate profile", func(t *testing.T) {
		guest := helpers.CreateGuestCandidate(t, ts.DB, "Guest")
		res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/candidates/profile/"+guest.ID+"/claim", "", map[string]string{
			"email":     "cand-long@example.com",
			"password":  overlongPassword,
			"full_name": "Guest",
		})
		requirePasswordRejected(t, res, env)
	})

	t.Run("claim company", func(t *testing.T) {
		company := helpers.CreateGuestCompany(t, ts.DB, "Acme")
		res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/employers/profile/"+company.ID+"/claim", "", map[string]string{
			"email":     "emp-long@example.com",
			"password":  overlongPassword,
			"full_name": "Owner",
		})
		requirePasswordRejected(t, res, env)
	})

	t.Run("reset password", func(t *testing.T) {
		register(t, ts, "reset-long@example.com", "candidate")
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/request-password-reset", "",
			map[string]string{"email": "reset-long@example.com"})
		require.Equal(t, http.StatusOK, res.StatusCode)
		token := linkFromMail(t, ts, "reset-long@example.com", "/reset-password").Query().Get("token")
		require.NotEmpty(t, token)

		res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "",
			map[string]string{"token": token, "password": overlongPassword})
		requirePasswordRejected(t, res, env)

		// the token survives a rejected password
		res, env = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "",
			map[string]string{"token": token, "password": "N3w!Passw0rd"})
		assert.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	})
}
