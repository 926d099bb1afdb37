package handlers

import (
	"jobmarket_backend/internal/services"
	"jobmarket_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	claimService     services.ClaimService
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService, claimService services.ClaimService) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		claimService:     claimService,
	}
}

func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	candidates := rg.Group("/candidates")
	{
		// Public
		candidates.GET("/search", h.Search)
		candidates.GET("/:id", h.GetProfile)

		// Guest onboarding
		candidates.POST("/guest-profile", h.CreateGuestProfile)
		candidates.PUT("/profile/:id", h.UpdateGuestProfile)
		candidates.POST("/profile/:id/claim", chain(g.AuthLimiter, h.ClaimProfile)...)
	}

	own := candidates.Group("", g.Candidate...)
	{
		own.POST("/profile", h.CreateProfile)
		own.GET("/profile/me", h.GetMyProfile)
		own.PUT("/profile", h.UpdateMyProfile)
		own.DELETE("/profile", h.DeleteMyProfile)
		own.PUT("/profile/:id/complete", h.MarkComplete)
	}
}

// Search
// @Summary Search claimed, complete candidate profiles
// @Tags candidates
// @Produce json
// @Param skills query []string false "Skills (repeat or comma separated)"
// @Param experience_min query int false "Minimum years of experience"
// @Param experience_max query int false "Maximum years of experience"
// @Param working_model query string false "remote, hybrid or onsite"
// @Param location query string false "Location substring"
// @Param salary_min query int false "Salary range start"
// @Param salary_max query int false "Salary range end"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} Response{data=dto.PaginatedResponse}
// @Router /candidates/search [get]
func (h *CandidateHandler) Search(c *gin.Context) {
	var query dto.CandidateSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.candidateService.Search(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, result, "Profiles retrieved successfully")
}

func (h *CandidateHandler) GetProfile(c *gin.Context) {
	profile, err := h.candidateService.GetProfile(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, profile, "Profile retrieved successfully")
}

func (h *CandidateHandler) CreateGuestProfile(c *gin.Context) {
	var req dto.CandidateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.candidateService.CreateGuestProfile(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, profile, "Candidate profile created successfully")
}

func (h *CandidateHandler) UpdateGuestProfile(c *gin.Context) {
	var req dto.UpdateCandidateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.candidateService.UpdateGuestProfile(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, profile, "Profile updated successfully")
}

// ClaimProfile
// @Summary Create an account and take over a guest candidate profile
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body dto.ClaimRequest true "Account"
// @Success 200 {object} Response{data=dto.ClaimCandidateResponse}
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /candidates/profile/{id}/claim [post]
func (h *CandidateHandler) ClaimProfile(c *gin.Context) {
	var req dto.ClaimRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.claimService.ClaimCandidateProfile(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, result, "Profile claimed and account created successfully")
}

func (h *CandidateHandler) CreateProfile(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.CandidateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.candidateService.CreateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, profile, "Candidate profile created successfully")
}

func (h *CandidateHandler) GetMyProfile(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	profile, err := h.candidateService.GetMyProfile(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, profile, "Profile retrieved successfully")
}

func (h *CandidateHandler) UpdateMyProfile(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.UpdateCandidateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.candidateService.UpdateMyProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, profile, "Profile updated successfully")
}

func (h *CandidateHandler) DeleteMyProfile(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.candidateService.DeleteMyProfile(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondMessage(c, "Profile deleted successfully")
}

func (h *CandidateHandler) MarkComplete(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	profile, err := h.candidateService.MarkComplete(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, profile, "Profile marked as complete")
}
