package certifications

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

// RegisterRoutes attaches certification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/certifications/", h.list)
	rg.POST("/certifications/", h.create)
	rg.GET("/certifications/:id/", h.retrieve)
	rg.PUT("/certifications/:id/", h.update)
	rg.PATCH("/certifications/:id/", h.partialUpdate)
	rg.DELETE("/certifications/:id/", h.remove)
}

type certificationPayload struct {
	Resume        *string `json:"resume" form:"resume"`
	Name          *string `json:"name" form:"name"`
	Issuer        *string `json:"issuer" form:"issuer"`
	IssueDate     *string `json:"issue_date" form:"issue_date"`
	ExpiryDate    *string `json:"expiry_date" form:"expiry_date"`
	CredentialID  *string `json:"credential_id" form:"credential_id"`
	CredentialURL *string `json:"credential_url" form:"credential_url"`
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list certifications", nil)
		return
	}
	out := make([]CertificationResponse, 0, len(all))
	for _, cert := range all {
		out = append(out, toResponse(cert))
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var payload certificationPayload
	if err := c.ShouldBind(&payload); err != nil {
		respond.FieldError(c, "non_field_errors", "Invalid request body.")
		return
	}
	if fields := validatePayload(payload, true); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}

	cert := Certification{}
	applyPayload(&cert, payload, true)

	created, err := h.Svc.Create(c.Request.Context(), cert)
	if err != nil {
		h.writeError(c, err, "failed to create certification")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) retrieve(c *gin.Context) {
	cert, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch certification")
		return
	}
	respond.OK(c, toResponse(cert))
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
		h.writeError(c, err, "failed to fetch certification")
		return
	}

	var payload certificationPayload
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
		h.writeError(c, err, "failed to update certification")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete certification")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "certification not found", nil)
	case errors.Is(err, ErrParentNotFound):
		respond.FieldError(c, "resume", "resume with the given id does not exist.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func validatePayload(p certificationPayload, replaceAll bool) respond.FieldErrors {
	fields := respond.FieldErrors{}
	if replaceAll {
		if p.Resume == nil || strings.TrimSpace(*p.Resume) == "" {
			fields["resume"] = append(fields["resume"], "This field is required.")
		}
		if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
			fields["name"] = append(fields["name"], "This field is required.")
		}
		if p.Issuer == nil || strings.TrimSpace(*p.Issuer) == "" {
			fields["issuer"] = append(fields["issuer"], "This field is required.")
		}
	}
	if p.CredentialURL != nil && *p.CredentialURL != "" && !validURL(*p.CredentialURL) {
		fields["credential_url"] = append(fields["credential_url"], "Enter a valid URL.")
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

func applyPayload(cert *Certification, p certificationPayload, replaceAll bool) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		} else if replaceAll {
			*dst = ""
		}
	}
	if p.Resume != nil {
		cert.ResumeID = *p.Resume
	}
	apply(&cert.Name, p.Name)
	apply(&cert.Issuer, p.Issuer)
	apply(&cert.IssueDate, p.IssueDate)
	apply(&cert.ExpiryDate, p.ExpiryDate)
	apply(&cert.CredentialID, p.CredentialID)
	apply(&cert.CredentialURL, p.CredentialURL)
}
