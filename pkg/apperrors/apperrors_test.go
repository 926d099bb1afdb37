package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, CodeNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, CodeAlreadyExists},
		{"gorm fk", gorm.ErrForeignKeyViolated, http.StatusBadRequest, CodeValidationFailed},
		{"pg unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, CodeAlreadyExists},
		{"pg fk wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), http.StatusBadRequest, CodeValidationFailed},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, CodeDatabaseError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr, ok := AsAppError(FromDB(tc.err, "test"))
			require.True(t, ok)
			assert.Equal(t, tc.wantHTTP, appErr.HTTPCode)
			assert.Equal(t, tc.wantCode, appErr.Code)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}

func TestFromDB_PassesThroughAppError(t *testing.T) {
	assert.Same(t, ErrJobNotFound, FromDB(ErrJobNotFound, "job"))
	assert.NoError(t, FromDB(nil, "job"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrNoFieldsToUpdate.WithDetails(map[string]string{"a": "b"})

	assert.Nil(t, ErrNoFieldsToUpdate.Details)
	assert.NotNil(t, withDetails.Details)
	assert.ErrorIs(t, withDetails, ErrNoFieldsToUpdate)
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	render := func(debug bool, err error) (int, map[string]any) {
		Configure(debug)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		HandleError(c, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}
	t.Cleanup(func() { Configure(false) })

	code, body := render(false, ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["message"])
	assert.Equal(t, "INVALID_CREDENTIALS", body["error"].(map[string]any)["code"])

	code, body = render(false, errors.New("secret driver detail"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "stack")

	_, body = render(true, errors.New("secret driver detail"))
	assert.Equal(t, "secret driver detail", body["stack"])
}
