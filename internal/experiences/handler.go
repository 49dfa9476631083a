package experiences

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

// RegisterRoutes attaches experience routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/experiences/", h.list)
	rg.POST("/experiences/", h.create)
	rg.GET("/experiences/:id/", h.retrieve)
	rg.PUT("/experiences/:id/", h.update)
	rg.PATCH("/experiences/:id/", h.partialUpdate)
	rg.DELETE("/experiences/:id/", h.remove)
}

// experiencePayload covers create and update bodies. Pointer fields
// distinguish absent keys for partial updates.
type experiencePayload struct {
	Resume      *string   `json:"resume" form:"resume"`
	Company     *string   `json:"company" form:"company"`
	Title       *string   `json:"title" form:"title"`
	StartDate   *string   `json:"start_date" form:"start_date"`
	EndDate     *string   `json:"end_date" form:"end_date"`
	Description *string   `json:"description" form:"description"`
	SkillsUsed  *[]string `json:"skills_used" form:"skills_used"`
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list experiences", nil)
		return
	}
	out := make([]ExperienceResponse, 0, len(all))
	for _, exp := range all {
		out = append(out, toResponse(exp))
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var payload experiencePayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if fields := requireFields(payload); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}

	exp := Experience{}
	applyPayload(&exp, payload, true)

	created, err := h.Svc.Create(c.Request.Context(), exp)
	if err != nil {
		h.writeError(c, err, "failed to create experience")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) retrieve(c *gin.Context) {
	exp, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch experience")
		return
	}
	respond.OK(c, toResponse(exp))
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
		h.writeError(c, err, "failed to fetch experience")
		return
	}

	var payload experiencePayload
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
		h.writeError(c, err, "failed to update experience")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete experience")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "experience not found", nil)
	case errors.Is(err, ErrParentNotFound):
		respond.FieldError(c, "resume", "resume with the given id does not exist.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func requireFields(p experiencePayload) respond.FieldErrors {
	fields := respond.FieldErrors{}
	if p.Resume == nil || strings.TrimSpace(*p.Resume) == "" {
		fields["resume"] = append(fields["resume"], "This field is required.")
	}
	if p.Company == nil || strings.TrimSpace(*p.Company) == "" {
		fields["company"] = append(fields["company"], "This field is required.")
	}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		fields["title"] = append(fields["title"], "This field is required.")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func applyPayload(exp *Experience, p experiencePayload, replaceAll bool) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		} else if replaceAll {
			*dst = ""
		}
	}
	if p.Resume != nil {
		exp.ResumeID = *p.Resume
	}
	apply(&exp.Company, p.Company)
	apply(&exp.Title, p.Title)
	apply(&exp.StartDate, p.StartDate)
	apply(&exp.EndDate, p.EndDate)
	apply(&exp.Description, p.Description)
	if p.SkillsUsed != nil {
		exp.SkillsUsed = *p.SkillsUsed
	} else if replaceAll {
		exp.SkillsUsed = nil
	}
}
