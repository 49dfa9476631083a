package projects

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches project routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/", h.list)
	rg.POST("/projects/", h.create)
	rg.GET("/projects/:id/", h.retrieve)
	rg.PUT("/projects/:id/", h.update)
	rg.PATCH("/projects/:id/", h.partialUpdate)
	rg.DELETE("/projects/:id/", h.remove)
}

// projectPayload covers create and update bodies. Pointer fields distinguish
// absent keys for partial updates.
type projectPayload struct {
	Resume       *string   `json:"resume" form:"resume"`
	Name         *string   `json:"name" form:"name"`
	Description  *string   `json:"description" form:"description"`
	Technologies *[]string `json:"technologies" form:"technologies"`
	URL          *string   `json:"url" form:"url"`
	StartDate    *string   `json:"start_date" form:"start_date"`
	EndDate      *string   `json:"end_date" form:"end_date"`
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list projects", nil)
		return
	}
	out := make([]ProjectResponse, 0, len(all))
	for _, p := range all {
		out = append(out, toResponse(p))
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var payload projectPayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if fields := validatePayload(payload, true); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}

	proj := Project{}
	applyPayload(&proj, payload, true)

	created, err := h.Svc.Create(c.Request.Context(), proj)
	if err != nil {
		h.writeError(c, err, "failed to create project")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) retrieve(c *gin.Context) {
	proj, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch project")
		return
	}
	respond.OK(c, toResponse(proj))
}

func (h *Handler) update(c *gin.Context) {
	h.applyUpdate(c, true)
}

func (h *Handler) partialUpdate(c *gin.Context) {
	h.applyUpdate(c, false)
}

func (h *Handler) applyUpdate(c *gin.Context, replaceAll bool) {
	existing, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch project")
		return
	}

	var payload projectPayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if fields := validatePayload(payload, replaceAll); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}
	applyPayload(&existing, payload, replaceAll)

	updated, err := h.Svc.Update(c.Request.Context(), existing)
	if err != nil {
		h.writeError(c, err, "failed to update project")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
	case errors.Is(err, ErrParentNotFound):
		respond.FieldError(c, "resume", "resume with the given id does not exist.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

// validatePayload collects required-field errors when replaceAll is set, and
// format errors on the url field always.
func validatePayload(p projectPayload, replaceAll bool) respond.FieldErrors {
	fields := respond.FieldErrors{}
	if replaceAll {
		if p.Resume == nil || strings.TrimSpace(*p.Resume) == "" {
			fields["resume"] = append(fields["resume"], "This field is required.")
		}
		if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
			fields["name"] = append(fields["name"], "This field is required.")
		}
		if p.Description == nil || strings.TrimSpace(*p.Description) == "" {
			fields["description"] = append(fields["description"], "This field is required.")
		}
	}
	if p.URL != nil && *p.URL != "" && !validURL(*p.URL) {
		fields["url"] = append(fields["url"], "Enter a valid URL.")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func validURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func applyPayload(proj *Project, p projectPayload, replaceAll bool) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		} else if replaceAll {
			*dst = ""
		}
	}
	if p.Resume != nil {
		proj.ResumeID = *p.Resume
	}
	apply(&proj.Name, p.Name)
	apply(&proj.Description, p.Description)
	apply(&proj.URL, p.URL)
	apply(&proj.StartDate, p.StartDate)
	apply(&proj.EndDate, p.EndDate)
	if p.Technologies != nil {
		proj.Technologies = *p.Technologies
	} else if replaceAll {
		proj.Technologies = nil
	}
}
