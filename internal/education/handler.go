package education

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

// RegisterRoutes attaches education routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/education/", h.list)
	rg.POST("/education/", h.create)
	rg.GET("/education/:id/", h.retrieve)
	rg.PUT("/education/:id/", h.update)
	rg.PATCH("/education/:id/", h.partialUpdate)
	rg.DELETE("/education/:id/", h.remove)
}

type educationPayload struct {
	Resume      *string `json:"resume" form:"resume"`
	Institution *string `json:"institution" form:"institution"`
	Degree      *string `json:"degree" form:"degree"`
	StartDate   *string `json:"start_date" form:"start_date"`
	EndDate     *string `json:"end_date" form:"end_date"`
	GPA         *string `json:"gpa" form:"gpa"`
	Description *string `json:"description" form:"description"`
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list education entries", nil)
		return
	}
	out := make([]EducationResponse, 0, len(all))
	for _, edu := range all {
		out = append(out, toResponse(edu))
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var payload educationPayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if fields := requireFields(payload); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}

	edu := Education{}
	applyPayload(&edu, payload, true)

	created, err := h.Svc.Create(c.Request.Context(), edu)
	if err != nil {
		h.writeError(c, err, "failed to create education entry")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) retrieve(c *gin.Context) {
	edu, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch education entry")
		return
	}
	respond.OK(c, toResponse(edu))
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
		h.writeError(c, err, "failed to fetch education entry")
		return
	}

	var payload educationPayload
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
		h.writeError(c, err, "failed to update education entry")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete education entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "education entry not found", nil)
	case errors.Is(err, ErrParentNotFound):
		respond.FieldError(c, "resume", "resume with the given id does not exist.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func requireFields(p educationPayload) respond.FieldErrors {
	fields := respond.FieldErrors{}
	if p.Resume == nil || strings.TrimSpace(*p.Resume) == "" {
		fields["resume"] = append(fields["resume"], "This field is required.")
	}
	if p.Institution == nil || strings.TrimSpace(*p.Institution) == "" {
		fields["institution"] = append(fields["institution"], "This field is required.")
	}
	if p.Degree == nil || strings.TrimSpace(*p.Degree) == "" {
		fields["degree"] = append(fields["degree"], "This field is required.")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func applyPayload(edu *Education, p educationPayload, replaceAll bool) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		} else if replaceAll {
			*dst = ""
		}
	}
	if p.Resume != nil {
		edu.ResumeID = *p.Resume
	}
	apply(&edu.Institution, p.Institution)
	apply(&edu.Degree, p.Degree)
	apply(&edu.StartDate, p.StartDate)
	apply(&edu.EndDate, p.EndDate)
	apply(&edu.GPA, p.GPA)
	apply(&edu.Description, p.Description)
}
