package middleware

import (
	"errors"
	"net/http"
	"strings"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/pkg/apperrors"
	"jobmarket_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

var (
	errTokenRequired = apperrors.NewUnauthorizedError("Access token required")
	errInvalidToken  = apperrors.NewUnauthorizedError("Invalid token")
	errTokenExpired  = apperrors.New(apperrors.CodeTokenExpired, "auth", "Token expired", http.StatusUnauthorized)
	errUserGone      = apperrors.NewUnauthorizedError("Invalid token - user not found")
	errAuthRequired  = apperrors.NewUnauthorizedError("Authentication required")
)

// Authenticator checks bearer tokens and loads the caller from the database.
type Authenticator struct {
	tokens   *auth.TokenService
	userRepo repositories.UserRepository
}

func NewAuthenticator(tokens *auth.TokenService, userRepo repositories.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, userRepo: userRepo}
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// Authenticate resolves token to a live user. Errors are ready for HandleError.
func (a *Authenticator) Authenticate(c *gin.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errTokenRequired
	}

	claims, err := a.tokens.VerifyAccess(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, errTokenExpired
		}
		return nil, errInvalidToken
	}

	user, err := a.userRepo.FindByID(GetDB(c).WithContext(c.Request.Context()), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errUserGone
		}
		return nil, apperrors.FromDB(err, "auth")
	}
	return user, nil
}

// RequireAuth rejects the request with 401 unless it carries a valid access
// token of an existing user.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c, BearerToken(c))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(contextkeys.UserIDKey, user.ID)
		c.Set(contextkeys.RoleKey, user.Role)
		c.Set(contextkeys.UserKey, user)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	denied := apperrors.NewForbiddenError("Access denied. " + strings.Join(names, " or ") + " role required")

	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apperrors.HandleError(c, errAuthRequired)
			return
		}
		if !auth.HasRole(role, roles...) {
			logger.CtxWarn(c.Request.Context(), "Role check failed",
				"role", role,
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, denied)
			return
		}
		c.Next()
	}
}

// GetUserID returns "" outside RequireAuth.
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func GetRole(c *gin.Context) (models.UserRole, bool) {
	val, ok := c.Get(contextkeys.RoleKey)
	if !ok {
		return "", false
	}
	role, ok := val.(models.UserRole)
	return role, ok
}

func GetUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(contextkeys.UserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok && user != nil
}
