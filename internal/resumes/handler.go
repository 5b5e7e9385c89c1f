package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/shared/server/middleware"
	"smartcv-backend/internal/shared/server/respond"
)

// Handler exposes the resume CRUD surface.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.List)
	rg.PUT("/resumes", h.Upsert)
	rg.GET("/resumes/:id", h.Get)
	rg.PUT("/resumes/:id", h.UpsertByID)
	rg.DELETE("/resumes/:id", h.Delete)
}

// Upsert saves a draft wholesale. A missing id creates; a present id updates.
func (h *Handler) Upsert(c *gin.Context) {
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a resume document", err.Error())
		return
	}
	h.save(c, doc)
}

// UpsertByID saves a draft against the id in the path; a mismatched body id
// is rejected rather than silently overridden.
func (h *Handler) UpsertByID(c *gin.Context) {
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a resume document", err.Error())
		return
	}
	id := c.Param("id")
	if doc.ID != "" && doc.ID != id {
		respond.Error(c, http.StatusBadRequest, "id_mismatch", "body id does not match path id", nil)
		return
	}
	doc.ID = id
	h.save(c, doc)
}

func (h *Handler) save(c *gin.Context, doc Document) {
	userID := middleware.UserIDFromContext(c)
	res, err := h.Service.Upsert(c.Request.Context(), userID, doc)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, NewResumeResponse(res))
}

func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	list, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		WriteError(c, err)
		return
	}
	out := make([]ResumeResponse, 0, len(list))
	for _, res := range list {
		out = append(out, NewResumeResponse(res))
	}
	respond.OK(c, gin.H{"resumes": out})
}

func (h *Handler) Get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	res, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, NewResumeResponse(res))
}

func (h *Handler) Delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

// WriteError maps domain errors onto the shared error envelope.
func WriteError(c *gin.Context, err error) {
	if fve, ok := AsFieldValidationError(err); ok {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "resume document failed validation",
			gin.H{"field": fve.Field, "reason": fve.Reason})
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

