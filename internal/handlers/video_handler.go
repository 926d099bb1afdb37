package handlers

import (
	"jobmarket_backend/internal/services"
	"jobmarket_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	*BaseHandler
	videoService services.VideoService
}

func NewVideoHandler(base *BaseHandler, videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		BaseHandler:  base,
		videoService: videoService,
	}
}

func (h *VideoHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	videos := rg.Group("/videos", g.Auth)
	{
		videos.GET("/candidate/:candidateProfileId", h.ListByCandidate)
	}

	own := rg.Group("/videos", g.Candidate...)
	{
		own.POST("/upload", h.Upload)
		own.PUT("/:id/status", h.UpdateStatus)
		own.DELETE("/:id", h.Delete)
	}
}

// Upload
// @Summary Upload a recorded interview answer
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UploadVideoRequest true "Base64 encoded webm"
// @Success 201 {object} Response{data=models.VideoResponse}
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /videos/upload [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.UploadVideoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	video, err := h.videoService.Upload(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondCreated(c, video, "Video uploaded successfully")
}

func (h *VideoHandler) ListByCandidate(c *gin.Context) {
	userID, role, ok := h.Caller(c)
	if !ok {
		return
	}

	videos, err := h.videoService.ListByCandidate(c.Request.Context(), h.GetDB(c), userID, role, c.Param("candidateProfileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, videos, "Videos retrieved successfully")
}

func (h *VideoHandler) UpdateStatus(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.UpdateVideoStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	video, err := h.videoService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondOK(c, video, "Video status updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	userID, _, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	respondMessage(c, "Video deleted successfully")
}
