package autosave

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/server/middleware"
	"smartcv-backend/internal/shared/server/respond"
	"smartcv-backend/internal/shared/util"
)

// Handler exposes the editing session surface the browser editor drives.
type Handler struct {
	Engine        *Engine
	Resumes       *resumes.Service
	MaxPhotoBytes int64
}

func NewHandler(engine *Engine, service *resumes.Service, maxPhotoBytes int64) *Handler {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = resumes.MaxPhotoBytes
	}
	return &Handler{Engine: engine, Resumes: service, MaxPhotoBytes: maxPhotoBytes}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/editor/sessions", h.Open)
	rg.GET("/editor/sessions/:sid", h.Get)
	rg.DELETE("/editor/sessions/:sid", h.Close)
	rg.GET("/editor/sessions/:sid/status", h.Status)
	rg.PUT("/editor/sessions/:sid/document", h.UpdateDocument)
	rg.PUT("/editor/sessions/:sid/photo", h.SetPhoto)
	rg.DELETE("/editor/sessions/:sid/photo", h.ClearPhoto)
	rg.PATCH("/editor/sessions/:sid/reorder", h.Reorder)
	rg.POST("/editor/sessions/:sid/retry", h.Retry)
}

type openRequest struct {
	ResumeID string `json:"resumeId"`
	Template string `json:"template"`
}

// Open starts a session, either over a stored resume or over a blank draft.
// The template field seeds brand-new drafts only; when resumeId is set the
// stored resume's template wins and the field is ignored.
func (h *Handler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be an open request", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(c)
	var doc resumes.Document
	if req.ResumeID != "" {
		res, err := h.Resumes.Get(c.Request.Context(), userID, req.ResumeID)
		if err != nil {
			resumes.WriteError(c, err)
			return
		}
		doc = resumes.DocumentFromResume(res)
	}
	if req.ResumeID == "" && req.Template != "" {
		doc.Template = resumes.Template(req.Template)
	}

	s := h.Engine.Open(userID, doc)
	status, err := s.Status()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"sessionId": s.ID,
		"document":  doc,
		"status":    status,
	})
}

func (h *Handler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	doc, err := s.Document()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	status, err := s.Status()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, gin.H{"sessionId": s.ID, "document": doc, "status": status})
}

func (h *Handler) Close(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Engine.Close(userID, c.Param("sid")); err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, gin.H{"closed": true})
}

// Status backs the editor's save indicator and unsaved-changes guard.
func (h *Handler) Status(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	status, err := s.Status()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, status)
}

// UpdateDocument replaces the session draft and arms the debounce.
func (h *Handler) UpdateDocument(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var doc resumes.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a resume document", err.Error())
		return
	}
	status, err := s.UpdateDocument(doc)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, status)
}

// SetPhoto attaches an image from a multipart form to the draft.
func (h *Handler) SetPhoto(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxPhotoBytes+4096)
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_photo", "request must carry a photo form file", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxPhotoBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_photo", "could not read photo", err.Error())
		return
	}
	if int64(len(data)) > h.MaxPhotoBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "photo_too_large", "photo exceeds the size limit", nil)
		return
	}

	name, err := util.SanitizeFileName(header.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_photo", "photo file name is not allowed", err.Error())
		return
	}

	blob := resumes.PhotoBlob{
		Name:         name,
		Size:         int64(len(data)),
		MimeType:     header.Header.Get("Content-Type"),
		LastModified: time.Now().UnixMilli(),
		Data:         data,
	}
	status, err := s.SetPhoto(blob)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, status)
}

// ClearPhoto marks the stored photo for deletion on the next save.
func (h *Handler) ClearPhoto(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	status, err := s.ClearPhoto()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, status)
}

type reorderRequest struct {
	Section string `json:"section"`
	From    *int   `json:"from"`
	To      *int   `json:"to"`
}

// Reorder moves one entry within a child collection of the draft.
func (h *Handler) Reorder(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a reorder request", err.Error())
		return
	}
	if req.Section == "" || req.From == nil || req.To == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "section, from and to are required", nil)
		return
	}
	status, err := s.Reorder(req.Section, *req.From, *req.To)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	doc, err := s.Document()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, gin.H{"status": status, "document": doc})
}

// Retry kicks off an immediate save after a failure.
func (h *Handler) Retry(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	status, err := s.Retry()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	respond.OK(c, status)
}

func (h *Handler) session(c *gin.Context) (*Session, bool) {
	userID := middleware.UserIDFromContext(c)
	s, err := h.Engine.Get(userID, c.Param("sid"))
	if err != nil {
		h.writeSessionError(c, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionClosed):
		respond.Error(c, http.StatusNotFound, "session_not_found", "editor session not found", nil)
	default:
		resumes.WriteError(c, err)
	}
}
