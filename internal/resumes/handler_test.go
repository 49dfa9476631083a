package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	localstore "candidate-backend/internal/shared/storage/object/local"
)

type stubExperiences struct{ deleted []string }

func (s *stubExperiences) ListByResume(ctx context.Context, resumeID string) ([]ExperienceRecord, error) {
	return nil, nil
}

func (s *stubExperiences) DeleteByResume(ctx context.Context, resumeID string) error {
	s.deleted = append(s.deleted, resumeID)
	return nil
}

type stubEducation struct{}

func (stubEducation) ListByResume(ctx context.Context, resumeID string) ([]EducationRecord, error) {
	return nil, nil
}

func (stubEducation) DeleteByResume(ctx context.Context, resumeID string) error { return nil }

type stubSkills struct{}

func (stubSkills) ListByResume(ctx context.Context, resumeID string) ([]SkillRecord, error) {
	return nil, nil
}

func (stubSkills) DeleteByResume(ctx context.Context, resumeID string) error { return nil }

type stubProjects struct{}

func (stubProjects) ListByResume(ctx context.Context, resumeID string) ([]ProjectRecord, error) {
	return nil, nil
}

func (stubProjects) DeleteByResume(ctx context.Context, resumeID string) error { return nil }

type stubCertifications struct{}

func (stubCertifications) ListByResume(ctx context.Context, resumeID string) ([]CertificationRecord, error) {
	return nil, nil
}

func (stubCertifications) DeleteByResume(ctx context.Context, resumeID string) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	return newTestRouterWithLimit(t, 10<<20)
}

func newTestRouterWithLimit(t *testing.T, maxUploadBytes int64) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Repo:           NewMemoryRepo(),
		Store:          localstore.New(t.TempDir(), "http://localhost:8080"),
		Experiences:    &stubExperiences{},
		Education:      stubEducation{},
		Skills:         stubSkills{},
		Projects:       stubProjects{},
		Certifications: stubCertifications{},
	}
	handler := NewHandler(svc, maxUploadBytes)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router, svc
}

func seedResume(t *testing.T, svc *Service, res Resume) Resume {
	t.Helper()
	created, err := svc.Create(context.Background(), res, "", nil)
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return created
}

func jsonRequest(method, path string, payload any) *http.Request {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateValidatesEmailAndURLs(t *testing.T) {
	router, _ := newTestRouter(t)

	req := jsonRequest(http.MethodPost, "/api/resumes/", map[string]string{
		"full_name":    "Bad Fields",
		"email":        "not-an-email",
		"linkedin_url": "nope",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var fields map[string][]string
	if err := json.Unmarshal(resp.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if fields["email"][0] != "Enter a valid email address." {
		t.Fatalf("unexpected email error %v", fields["email"])
	}
	if fields["linkedin_url"][0] != "Enter a valid URL." {
		t.Fatalf("unexpected linkedin_url error %v", fields["linkedin_url"])
	}
}

func TestPatchPreservesUnsentFields(t *testing.T) {
	router, svc := newTestRouter(t)
	seeded := seedResume(t, svc, Resume{
		FullName: "Original Name",
		Email:    "original@example.com",
		Phone:    "555-0100",
	})

	req := jsonRequest(http.MethodPatch, "/api/resumes/"+seeded.ID+"/", map[string]string{
		"phone": "555-0199",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var detail ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if detail.Phone != "555-0199" {
		t.Fatalf("expected updated phone, got %q", detail.Phone)
	}
	if detail.FullName != "Original Name" || detail.Email != "original@example.com" {
		t.Fatalf("partial update must not clear other fields: %+v", detail)
	}
}

func TestPutClearsUnsentFields(t *testing.T) {
	router, svc := newTestRouter(t)
	seeded := seedResume(t, svc, Resume{
		FullName: "Original Name",
		Email:    "original@example.com",
		Summary:  "Seasoned engineer",
	})

	req := jsonRequest(http.MethodPut, "/api/resumes/"+seeded.ID+"/", map[string]string{
		"full_name": "Replaced Name",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var detail ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if detail.FullName != "Replaced Name" {
		t.Fatalf("expected replaced name, got %q", detail.FullName)
	}
	if detail.Email != "" || detail.Summary != "" {
		t.Fatalf("full update must clear unsent fields: %+v", detail)
	}
}

func TestUpdateNeverChangesStatus(t *testing.T) {
	router, svc := newTestRouter(t)
	seeded := seedResume(t, svc, Resume{FullName: "Status Holder"})

	if _, _, err := svc.UpdateStatus(context.Background(), seeded.ID, StatusAccepted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	req := jsonRequest(http.MethodPut, "/api/resumes/"+seeded.ID+"/", map[string]string{
		"full_name": "Status Holder",
		"status":    "rejected",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var detail ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if detail.Status != string(StatusAccepted) {
		t.Fatalf("update must not touch status, got %q", detail.Status)
	}
}

func TestRetrieveUnknownResume(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/missing-id/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestDeleteRemovesChildRows(t *testing.T) {
	router, svc := newTestRouter(t)
	seeded := seedResume(t, svc, Resume{FullName: "To Delete"})
	exps := svc.Experiences.(*stubExperiences)

	req := httptest.NewRequest(http.MethodDelete, "/api/resumes/"+seeded.ID+"/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if len(exps.deleted) != 1 || exps.deleted[0] != seeded.ID {
		t.Fatalf("expected child cleanup for %s, got %v", seeded.ID, exps.deleted)
	}
}

func TestByStatusRejectsInvalidChoice(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/by_status/?status=archived", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var fields map[string][]string
	if err := json.Unmarshal(resp.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if fields["status"][0] != `"archived" is not a valid choice.` {
		t.Fatalf("unexpected status error %v", fields["status"])
	}
}

func multipartFile(t *testing.T, field, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	router, _ := newTestRouterWithLimit(t, 256)

	body, contentType := multipartFile(t, "resume_file", "big.pdf", bytes.Repeat([]byte("x"), 1024))
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/upload/", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var fields map[string][]string
	if err := json.Unmarshal(resp.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(fields["resume_file"]) == 0 {
		t.Fatalf("expected a resume_file error, got %v", fields)
	}
	if !strings.Contains(fields["resume_file"][0], "exceeds the maximum allowed size") {
		t.Fatalf("expected a size error, got %q", fields["resume_file"][0])
	}
}

func TestDownloadStreamsStoredFile(t *testing.T) {
	router, svc := newTestRouter(t)

	content := []byte("%PDF-1.4 stored body")
	res, err := svc.Upload(context.Background(), "cv.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/"+res.ID+"/download/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !bytes.Equal(resp.Body.Bytes(), content) {
		t.Fatalf("downloaded body differs from the stored file")
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, "cv.pdf") {
		t.Fatalf("expected the original filename in Content-Disposition, got %q", got)
	}
}

func TestDownloadWithoutStoredFile(t *testing.T) {
	router, svc := newTestRouter(t)
	seeded := seedResume(t, svc, Resume{FullName: "No File"})

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/"+seeded.ID+"/download/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
