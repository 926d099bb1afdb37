package integration_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

const testPassword = "P@ssw0rd1"

func register(t *testing.T, ts *helpers.TestServer, email, role string) dto.AuthResponse {
	t.Helper()

	res, env := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": testPassword,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, env.Message)

	var out dto.AuthResponse
	env.DataInto(t, &out)
	return out
}

func login(t *testing.T, ts *helpers.TestServer, email, password, role string) (*http.Response, *helpers.Envelope) {
	t.Helper()
	return ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
}

func tokensOf(t *testing.T, env *helpers.Envelope) auth.TokenPair {
	t.Helper()
	var out dto.TokensResponse
	env.DataInto(t, &out)
	require.NotEmpty(t, out.Tokens.AccessToken)
	require.NotEmpty(t, out.Tokens.RefreshToken)
	return out.Tokens
}

// linkFromMail returns the most recent link with the given path mailed to
// addr. Emails go out asynchronously, so order between kinds is not fixed.
func linkFromMail(t *testing.T, ts *helpers.TestServer, addr, path string) *url.URL {
	t.Helper()

	sent := ts.WaitForMail()
	for i := len(sent) - 1; i >= 0; i-- {
		if len(sent[i].To) == 0 || sent[i].To[0] != addr {
			continue
		}
		lines := strings.Split(strings.TrimSpace(sent[i].TextBody), "\n")
		link, err := url.Parse(lines[len(lines)-1])
		require.NoError(t, err)
		if link.Path == path {
			return link
		}
	}
	t.Fatalf("no %s link sent to %s", path, addr)
	return nil
}
