package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the failure half of the response envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   *AppError `json:"error"`
	Stack   string    `json:"stack,omitempty"`
}

// GinErrorHandler renders errors into the envelope. Debug exposes the wrapped
// cause chain and must be off in production.
type GinErrorHandler struct {
	Debug bool
}

var defaultHandler = &GinErrorHandler{Debug: false}

// Configure sets whether HandleError exposes internal details.
func Configure(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error",
			"code", appErr.Code,
			"path", c.Request.URL.Path,
			"error", appErr.Error(),
		)
	}

	resp := ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Error:   appErr,
	}
	if h.Debug && appErr.Err != nil {
		resp.Stack = appErr.Err.Error()
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

// HandleError renders err with the package-level handler set by Configure.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError unwraps err until it finds an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
