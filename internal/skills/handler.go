package skills

import (
	"errors"
	"net/http"
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

// RegisterRoutes attaches skill routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/skills/", h.list)
	rg.POST("/skills/", h.create)
	rg.GET("/skills/:id/", h.retrieve)
	rg.PUT("/skills/:id/", h.update)
	rg.PATCH("/skills/:id/", h.partialUpdate)
	rg.DELETE("/skills/:id/", h.remove)
}

type skillPayload struct {
	Resume      *string `json:"resume" form:"resume"`
	Name        *string `json:"name" form:"name"`
	Proficiency *string `json:"proficiency" form:"proficiency"`
	Category    *string `json:"category" form:"category"`
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list skills", nil)
		return
	}
	out := make([]SkillResponse, 0, len(all))
	for _, s := range all {
		out = append(out, toResponse(s))
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var payload skillPayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if fields := requireFields(payload); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}

	skill := Skill{}
	applyPayload(&skill, payload, true)

	created, err := h.Svc.Create(c.Request.Context(), skill)
	if err != nil {
		h.writeError(c, err, "failed to create skill")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) retrieve(c *gin.Context) {
	skill, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch skill")
		return
	}
	respond.OK(c, toResponse(skill))
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
		h.writeError(c, err, "failed to fetch skill")
		return
	}

	var payload skillPayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if replaceAll {
		if fields := requireFields(payload); len(fields) > 0 {
			respond.Validation(c, fields)
			return
		}
	}
	applyPayload(&existing, payload, replaceAll)

	updated, err := h.Svc.Update(c.Request.Context(), existing)
	if err != nil {
		h.writeError(c, err, "failed to update skill")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete skill")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "skill not found", nil)
	case errors.Is(err, ErrParentNotFound):
		respond.FieldError(c, "resume", "resume with the given id does not exist.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func requireFields(p skillPayload) respond.FieldErrors {
	fields := respond.FieldErrors{}
	if p.Resume == nil || strings.TrimSpace(*p.Resume) == "" {
		fields["resume"] = append(fields["resume"], "This field is required.")
	}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		fields["name"] = append(fields["name"], "This field is required.")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func applyPayload(skill *Skill, p skillPayload, replaceAll bool) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		} else if replaceAll {
			*dst = ""
		}
	}
	if p.Resume != nil {
		skill.ResumeID = *p.Resume
	}
	apply(&skill.Name, p.Name)
	apply(&skill.Proficiency, p.Proficiency)
	apply(&skill.Category, p.Category)
}
