package generate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/server/respond"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate/summary", h.Summary)
	rg.POST("/generate/work-experience", h.WorkExperience)
	rg.POST("/generate/project", h.Project)
}

func (h *Handler) Summary(c *gin.Context) {
	var doc resumes.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a resume document", err.Error())
		return
	}
	summary, err := h.Service.Summary(c.Request.Context(), doc)
	if err != nil {
		writeGenerateError(c, err)
		return
	}
	respond.OK(c, gin.H{"summary": summary})
}

type descriptionRequest struct {
	Description string `json:"description"`
}

func (h *Handler) WorkExperience(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must carry a description", err.Error())
		return
	}
	entry, err := h.Service.WorkExperience(c.Request.Context(), req.Description)
	if err != nil {
		writeGenerateError(c, err)
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) Project(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must carry a description", err.Error())
		return
	}
	entry, err := h.Service.Project(c.Request.Context(), req.Description)
	if err != nil {
		writeGenerateError(c, err)
		return
	}
	respond.OK(c, entry)
}

func writeGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyDescription):
		respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "generation_unavailable", "generation is not configured", nil)
	case errors.Is(err, ErrProvider):
		respond.Error(c, http.StatusBadGateway, "generation_failed", "generation provider failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
