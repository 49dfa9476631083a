package resumes

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/mail"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/shared/metrics"
	"candidate-backend/internal/shared/server/respond"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
}

// Identity documents may also be submitted as scans.
var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates/upload/", h.upload)
	rg.POST("/candidates/:id/submit-documents/", h.submitDocuments)
	rg.GET("/resumes/", h.list)
	rg.POST("/resumes/", h.create)
	rg.GET("/resumes/by_status/", h.byStatus)
	rg.GET("/resumes/:id/", h.retrieve)
	rg.PUT("/resumes/:id/", h.update)
	rg.PATCH("/resumes/:id/", h.partialUpdate)
	rg.DELETE("/resumes/:id/", h.remove)
	rg.POST("/resumes/:id/update_status/", h.updateStatus)
	rg.GET("/resumes/:id/download/", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	metrics.IncUploadStarted()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		metrics.IncUploadFailed()
		if rejectOversized(c, "resume_file", err) {
			return
		}
		respond.FieldError(c, "resume_file", "No file was submitted.")
		return
	}
	if msg, ok := checkExtension(fileHeader.Filename); !ok {
		metrics.IncUploadFailed()
		respond.FieldError(c, "resume_file", msg)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.IncUploadFailed()
		respond.FieldError(c, "resume_file", "Unable to read the submitted file.")
		return
	}
	defer file.Close()

	res, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		metrics.IncUploadFailed()
		switch {
		case errors.Is(err, ErrInvalidFile):
			respond.FieldError(c, "resume_file", "The submitted file is not a valid PDF.")
		case errors.Is(err, ErrInvalidInput):
			respond.FieldError(c, "resume_file", "Invalid file name.")
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to store resume", nil)
		}
		return
	}

	metrics.IncUploadCompleted()
	c.Set("resumeId", res.ID)
	respond.JSON(c, http.StatusCreated, UploadResponse{
		ID:         res.ID,
		ResumeFile: h.Svc.FileURL(res),
		CreatedAt:  res.CreatedAt,
		Message:    "Resume uploaded successfully",
	})
}

// submitDocuments accepts aadhar and pan identity documents as multipart
// parts. At least one part must be present.
func (h *Handler) submitDocuments(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	res, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}

	aadhar, cleanupAadhar, ok := h.openDocument(c, "aadhar_document")
	if !ok {
		return
	}
	defer cleanupAadhar()
	pan, cleanupPan, ok := h.openDocument(c, "pan_document")
	if !ok {
		return
	}
	defer cleanupPan()

	if aadhar == nil && pan == nil {
		respond.FieldError(c, "non_field_errors", "No file was submitted.")
		return
	}

	updated, err := h.Svc.SubmitDocuments(c.Request.Context(), res.ID, aadhar, pan)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to store documents", nil)
		return
	}
	c.Set("resumeId", updated.ID)
	h.respondDetail(c, http.StatusOK, updated)
}

// download streams the stored resume file back to the caller.
func (h *Handler) download(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}

	file, err := h.Svc.OpenFile(c.Request.Context(), res)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume has no stored file", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to open stored file", nil)
		return
	}
	defer file.Close()

	name := res.OriginalFilename
	if name == "" {
		name = "resume"
	}
	c.DataFromReader(http.StatusOK, res.SizeBytes, "application/octet-stream", file, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
	})
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	out, err := h.toResponses(c, all)
	if err != nil {
		return
	}
	respond.OK(c, out)
}

func (h *Handler) byStatus(c *gin.Context) {
	raw, present := c.GetQuery("status")
	if !present || strings.TrimSpace(raw) == "" {
		respond.FieldError(c, "status", "This field is required.")
		return
	}
	status, ok := ParseStatus(raw)
	if !ok {
		respond.FieldError(c, "status", fmt.Sprintf("%q is not a valid choice.", raw))
		return
	}

	matched, err := h.Svc.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to filter resumes", nil)
		return
	}
	out, err := h.toResponses(c, matched)
	if err != nil {
		return
	}
	respond.OK(c, out)
}

func (h *Handler) retrieve(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}
	h.respondDetail(c, http.StatusOK, res)
}

// resumePayload covers create and update bodies, JSON or multipart form.
// Pointer fields distinguish absent keys for partial updates.
type resumePayload struct {
	FullName    *string `json:"full_name" form:"full_name"`
	Email       *string `json:"email" form:"email"`
	Phone       *string `json:"phone" form:"phone"`
	Location    *string `json:"location" form:"location"`
	LinkedInURL *string `json:"linkedin_url" form:"linkedin_url"`
	GitHubURL   *string `json:"github_url" form:"github_url"`
	Summary     *string `json:"summary" form:"summary"`
}

func (h *Handler) create(c *gin.Context) {
	payload, fileHeader, ok := h.bindPayload(c)
	if !ok {
		return
	}
	if fields := validatePayload(payload); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}

	res := Resume{}
	applyPayload(&res, payload, true)

	fileName, file, cleanup, ok := h.openAttachment(c, fileHeader)
	if !ok {
		return
	}
	defer cleanup()

	created, err := h.Svc.Create(c.Request.Context(), res, fileName, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidFile):
			respond.FieldError(c, "resume_file", "The submitted file is not a valid PDF.")
		case errors.Is(err, ErrInvalidInput):
			respond.FieldError(c, "resume_file", "Invalid file name.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume", nil)
		}
		return
	}
	c.Set("resumeId", created.ID)
	h.respondDetail(c, http.StatusCreated, created)
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
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}

	payload, fileHeader, ok := h.bindPayload(c)
	if !ok {
		return
	}
	if fields := validatePayload(payload); len(fields) > 0 {
		respond.Validation(c, fields)
		return
	}
	applyPayload(&existing, payload, replaceAll)

	fileName, file, cleanup, ok := h.openAttachment(c, fileHeader)
	if !ok {
		return
	}
	defer cleanup()

	updated, err := h.Svc.Update(c.Request.Context(), existing, fileName, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidFile):
			respond.FieldError(c, "resume_file", "The submitted file is not a valid PDF.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		}
		return
	}
	c.Set("resumeId", updated.ID)
	h.respondDetail(c, http.StatusOK, updated)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		return
	}
	c.Set("resumeId", id)
	c.Status(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status string `json:"status" form:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.FieldError(c, "status", "This field is required.")
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		respond.FieldError(c, "status", "This field is required.")
		return
	}
	status, ok := ParseStatus(req.Status)
	if !ok {
		respond.FieldError(c, "status", fmt.Sprintf("%q is not a valid choice.", req.Status))
		return
	}

	updated, previous, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		return
	}

	c.Set("resumeId", updated.ID)
	c.Set("statusTransition", string(previous)+"->"+string(updated.Status))
	h.respondDetail(c, http.StatusOK, updated)
}

func (h *Handler) bindPayload(c *gin.Context) (resumePayload, *multipart.FileHeader, bool) {
	var payload resumePayload
	var fileHeader *multipart.FileHeader

	if c.ContentType() == "multipart/form-data" {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
		if err := c.ShouldBind(&payload); err != nil {
			if rejectOversized(c, "resume_file", err) {
				return resumePayload{}, nil, false
			}
			respond.FieldError(c, "non_field_errors", "Invalid request body.")
			return resumePayload{}, nil, false
		}
		if fh, err := c.FormFile("resume_file"); err == nil {
			fileHeader = fh
		}
	} else if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respond.FieldError(c, "non_field_errors", "Invalid request body.")
			return resumePayload{}, nil, false
		}
	}
	return payload, fileHeader, true
}

// openAttachment validates and opens an optional multipart file part. The
// returned cleanup is always safe to defer.
func (h *Handler) openAttachment(c *gin.Context, fileHeader *multipart.FileHeader) (string, io.Reader, func(), bool) {
	noop := func() {}
	if fileHeader == nil {
		return "", nil, noop, true
	}
	if msg, ok := checkExtension(fileHeader.Filename); !ok {
		respond.FieldError(c, "resume_file", msg)
		return "", nil, noop, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.FieldError(c, "resume_file", "Unable to read the submitted file.")
		return "", nil, noop, false
	}
	return fileHeader.Filename, file, func() { _ = file.Close() }, true
}

// openDocument opens an optional identity document part. A missing part is
// not an error; the caller decides whether at least one is required.
func (h *Handler) openDocument(c *gin.Context, field string) (*Attachment, func(), bool) {
	noop := func() {}
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if rejectOversized(c, field, err) {
			return nil, noop, false
		}
		return nil, noop, true
	}
	if msg, ok := checkDocumentExtension(fileHeader.Filename); !ok {
		respond.FieldError(c, field, msg)
		return nil, noop, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.FieldError(c, field, "Unable to read the submitted file.")
		return nil, noop, false
	}
	return &Attachment{FileName: fileHeader.Filename, File: file}, func() { _ = file.Close() }, true
}

func (h *Handler) respondDetail(c *gin.Context, status int, res Resume) {
	children, err := h.Svc.ChildrenOf(c.Request.Context(), res.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch related records", nil)
		return
	}
	aadharURL, panURL := h.Svc.DocumentURLs(res)
	respond.JSON(c, status, toResponse(res, h.Svc.FileURL(res), aadharURL, panURL, children))
}

func (h *Handler) toResponses(c *gin.Context, all []Resume) ([]ResumeResponse, error) {
	out := make([]ResumeResponse, 0, len(all))
	for _, res := range all {
		children, err := h.Svc.ChildrenOf(c.Request.Context(), res.ID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch related records", nil)
			return nil, err
		}
		aadharURL, panURL := h.Svc.DocumentURLs(res)
		out = append(out, toResponse(res, h.Svc.FileURL(res), aadharURL, panURL, children))
	}
	return out, nil
}

func applyPayload(res *Resume, p resumePayload, replaceAll bool) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		} else if replaceAll {
			*dst = ""
		}
	}
	apply(&res.FullName, p.FullName)
	apply(&res.Email, p.Email)
	apply(&res.Phone, p.Phone)
	apply(&res.Location, p.Location)
	apply(&res.LinkedInURL, p.LinkedInURL)
	apply(&res.GitHubURL, p.GitHubURL)
	apply(&res.Summary, p.Summary)
}

func validatePayload(p resumePayload) respond.FieldErrors {
	fields := respond.FieldErrors{}
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			fields["email"] = append(fields["email"], "Enter a valid email address.")
		}
	}
	if msg, ok := validateURLField(p.LinkedInURL); !ok {
		fields["linkedin_url"] = append(fields["linkedin_url"], msg)
	}
	if msg, ok := validateURLField(p.GitHubURL); !ok {
		fields["github_url"] = append(fields["github_url"], msg)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func validateURLField(raw *string) (string, bool) {
	if raw == nil || *raw == "" {
		return "", true
	}
	parsed, err := url.Parse(*raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "Enter a valid URL.", false
	}
	return "", true
}

func checkExtension(fileName string) (string, bool) {
	ext := strings.ToLower(path.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Sprintf("File extension %q is not allowed. Allowed extensions are: pdf, docx.", strings.TrimPrefix(ext, ".")), false
	}
	return "", true
}

func checkDocumentExtension(fileName string) (string, bool) {
	ext := strings.ToLower(path.Ext(fileName))
	if _, ok := documentExtensions[ext]; !ok {
		return fmt.Sprintf("File extension %q is not allowed. Allowed extensions are: pdf, jpg, jpeg, png.", strings.TrimPrefix(ext, ".")), false
	}
	return "", true
}

// rejectOversized reports whether err came from the request body cap, writing
// a size-specific field error when it did.
func rejectOversized(c *gin.Context, field string, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	respond.FieldError(c, field, fmt.Sprintf("The submitted file exceeds the maximum allowed size of %d bytes.", maxErr.Limit))
	return true
}
