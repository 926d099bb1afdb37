package handlers

import (
	"jobmarket_backend/internal/services"
	"jobmarket_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// EmployerHandler serves companies, guest onboarding and the employer's jobs.
type EmployerHandler struct {
	*BaseHandler
	employerService services.EmployerService
	jobService      services.JobService
	claimService    services.ClaimService
}

func NewEmployerHandler(
	base *BaseHandler,
	employerService services.EmployerService,
	jobService services.JobService,
	claimService services.ClaimService,
) *EmployerHandler {
	return &EmployerHandler{
		BaseHandler:     base,
		employerService: employerService,
		jobService:      jobService,
		claimService:    claimService,
	}
}

func (h *EmployerHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	employers := rg.Group("/employers")
	{
		employers.GET("/search", h.Search)
		employers.GET("/:id", h.GetCompany)

		// Guest onboarding
		employers.POST("/profile", h.CreateGuestCompany)
		employers.PUT("/profile/:id", h.UpdateGuestCompany)
		employers.POST("/profile/:id/job", h.AddGuestJob)
		employers.PUT("/profile/:id/publish", h.PublishGuestCompany)
		employers.POST("/profile/:id/claim", chain(g.AuthLimiter, h.ClaimCompany)...)
	}

	own := employers.Group("", g.Employer...)
	{
		own.POST("/profile/me", h.CreateMyCompany)
		own.GET("/profile/me", h.GetMyCompany)
		own.PUT("/profile/me", h.UpdateMyCompany)
		own.DELETE("/profile", h.DeleteMyCompany)

		own.GET("/jobs", h.ListJobs)
		own.POST("/jobs", h.CreateJob)
		own.PUT("/jobs/:id", h.UpdateJob)
		own.DELETE("/jobs/:id", h.DeleteJob)
	}
}

// --- Public ---

func (h *EmployerHandler) Search(c *gin.Context) {
	var query dto.CompanySearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.employerService.Search(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, result, "Companies retrieved successfully")
}

func (h *EmployerHandler) GetCompany(c *gin.Context) {
	company, err := h.employerService.GetCompany(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, company, "Company retrieved successfully")
}

// --- Guest onboarding ---

func (h *EmployerHandler) CreateGuestCompany(c *gin.Context) {
	var req dto.CompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.employerService.CreateGuestCompany(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, company, "Company profile created successfully")
}

func (h *EmployerHandler) UpdateGuestCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.employerService.UpdateGuestCompany(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, company, "Company profile updated successfully")
}

func (h *EmployerHandler) AddGuestJob(c *gin.Context) {
	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.employerService.AddGuestJob(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, job, "Job posting created successfully")
}

func (h *EmployerHandler) PublishGuestCompany(c *gin.Context) {
	if err := h.employerService.PublishGuestCompany(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondMessage(c, "Company profile and job postings published successfully")
}

// ClaimCompany
// @Summary Create an account and take over a guest company
// @Tags employers
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param request body dto.ClaimRequest true "Account"
// @Success 200 {object} Response{data=dto.ClaimCompanyResponse}
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /employers/profile/{id}/claim [post]
func (h *EmployerHandler) ClaimCompany(c *gin.Context) {
	var req dto.ClaimRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.claimService.ClaimCompany(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, result, "Company profile claimed and account created successfully")
}

// --- Signed-in employer ---

func (h *EmployerHandler) CreateMyCompany(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.CompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.employerService.CreateMyCompany(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, company, "Company profile created successfully")
}

func (h *EmployerHandler) GetMyCompany(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	company, err := h.employerService.GetMyCompany(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, company, "Company retrieved successfully")
}

func (h *EmployerHandler) UpdateMyCompany(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.employerService.UpdateMyCompany(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, company, "Company updated successfully")
}

func (h *EmployerHandler) DeleteMyCompany(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.employerService.DeleteMyCompany(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondMessage(c, "Company deleted successfully")
}

func (h *EmployerHandler) ListJobs(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMyJobs(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, jobs, "Jobs retrieved successfully")
}

func (h *EmployerHandler) CreateJob(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, job, "Job created successfully")
}

func (h *EmployerHandler) UpdateJob(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, job, "Job updated successfully")
}

func (h *EmployerHandler) DeleteJob(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondMessage(c, "Job deleted successfully")
}
