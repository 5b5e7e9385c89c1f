package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/server/middleware"
	"smartcv-backend/internal/shared/server/respond"
)

// Handler exposes the render tree, the HTML export and the public preview.
type Handler struct {
	Service *resumes.Service
}

func NewHandler(service *resumes.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/render", h.Render)
	rg.GET("/resumes/:id/export", h.Export)
	rg.GET("/preview/:id", h.Preview)
}

// Render returns the resolved layout tree for the owner's resume.
func (h *Handler) Render(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	res, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		resumes.WriteError(c, err)
		return
	}
	doc := resumes.DocumentFromResume(res)
	if override := c.Query("template"); override != "" {
		doc.Template = resumes.Template(override)
	}
	respond.OK(c, Render(doc))
}

// Export returns the resume as a standalone HTML page.
func (h *Handler) Export(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	res, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		resumes.WriteError(c, err)
		return
	}
	h.writeHTML(c, res)
}

// Preview serves the shared read-only surface. It is reachable without
// credentials; anyone holding the link can view it. The default is the HTML
// page; ?format=tree returns the layout tree instead.
func (h *Handler) Preview(c *gin.Context) {
	res, err := h.Service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		resumes.WriteError(c, err)
		return
	}
	if c.Query("format") == "tree" {
		respond.OK(c, Render(resumes.DocumentFromResume(res)))
		return
	}
	h.writeHTML(c, res)
}

func (h *Handler) writeHTML(c *gin.Context, res resumes.Resume) {
	doc := resumes.DocumentFromResume(res)
	if override := c.Query("template"); override != "" {
		doc.Template = resumes.Template(override)
	}
	html, err := ExportHTML(doc)
	if err != nil {
		resumes.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
