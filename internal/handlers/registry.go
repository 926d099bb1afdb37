package handlers

import "github.com/gin-gonic/gin"

// Guards are the middleware chains handlers attach to their routes.
type Guards struct {
	// Auth is RequireAuth.
	Auth gin.HandlerFunc
	// Candidate and Employer are RequireAuth followed by the role check.
	Candidate []gin.HandlerFunc
	Employer  []gin.HandlerFunc
	// AuthLimiter protects endpoints that take credentials. May be empty.
	AuthLimiter []gin.HandlerFunc
}

type AppHandlers struct {
	AuthHandler      *AuthHandler
	CandidateHandler *CandidateHandler
	EmployerHandler  *EmployerHandler
	VideoHandler     *VideoHandler
	QuestionHandler  *QuestionHandler
}

// chain copies mw before appending so shared guard slices are never written to.
func chain(mw []gin.HandlerFunc, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+len(handlers))
	out = append(out, mw...)
	return append(out, handlers...)
}
