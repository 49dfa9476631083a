package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/resumes"
	"candidate-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "8080",
		ObjectStoreType: "local",
		MediaRoot:       t.TempDir(),
		PublicBaseURL:   "http://localhost:8080",
		MaxUploadBytes:  10 << 20,
	}
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("resume_file", fileName)
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

func doJSON(t *testing.T, app *App, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
}

func TestUploadThenRetrievePending(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF-1.4 test content"))
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/upload/", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var uploaded resumes.UploadResponse
	decodeBody(t, resp, &uploaded)
	if uploaded.ID == "" {
		t.Fatalf("expected an id in upload response")
	}
	if !strings.Contains(uploaded.ResumeFile, "/media/resumes/") {
		t.Fatalf("unexpected file url %q", uploaded.ResumeFile)
	}
	if !strings.HasSuffix(uploaded.ResumeFile, "_resume.pdf") {
		t.Fatalf("expected stored name to keep the original suffix, got %q", uploaded.ResumeFile)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+uploaded.ID+"/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var detail resumes.ResumeResponse
	decodeBody(t, resp, &detail)
	if detail.Status != "pending" {
		t.Fatalf("expected status pending, got %q", detail.Status)
	}
	if detail.ResumeFile == nil {
		t.Fatalf("expected resume_file url in detail response")
	}
	if detail.Experience == nil || detail.Education == nil || detail.Skills == nil {
		t.Fatalf("expected empty child arrays, got nil")
	}
}

func TestUploadMissingFile(t *testing.T) {
	app := newTestApp(t)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/upload/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["resume_file"]) == 0 {
		t.Fatalf("expected a resume_file error, got %v", fields)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartUpload(t, "resume.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/upload/", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["resume_file"]) == 0 {
		t.Fatalf("expected a resume_file error, got %v", fields)
	}
}

func createResume(t *testing.T, app *App, fullName string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/resumes/", map[string]string{
		"full_name": fullName,
		"email":     "candidate@example.com",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create resume: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var detail resumes.ResumeResponse
	decodeBody(t, resp, &detail)
	return detail.ID
}

func TestStatusLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := createResume(t, app, "Jordan Smith")

	resp := doJSON(t, app, http.MethodPost, "/api/resumes/"+id+"/update_status/", map[string]string{
		"status": "archived",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid choice, got %d", resp.Code)
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["status"]) == 0 || !strings.Contains(fields["status"][0], "not a valid choice") {
		t.Fatalf("unexpected status error %v", fields)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+id+"/", nil)
	var detail resumes.ResumeResponse
	decodeBody(t, resp, &detail)
	if detail.Status != "pending" {
		t.Fatalf("rejected transition must not change status, got %q", detail.Status)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/resumes/"+id+"/update_status/", map[string]string{
		"status": "reviewed",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	decodeBody(t, resp, &detail)
	if detail.Status != "reviewed" {
		t.Fatalf("expected status reviewed, got %q", detail.Status)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+id+"/", nil)
	decodeBody(t, resp, &detail)
	if detail.Status != "reviewed" {
		t.Fatalf("expected persisted status reviewed, got %q", detail.Status)
	}
}

func TestListByStatus(t *testing.T) {
	app := newTestApp(t)
	first := createResume(t, app, "First Candidate")
	second := createResume(t, app, "Second Candidate")

	resp := doJSON(t, app, http.MethodPost, "/api/resumes/"+first+"/update_status/", map[string]string{
		"status": "accepted",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update_status: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/by_status/?status=accepted", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var accepted []resumes.ResumeResponse
	decodeBody(t, resp, &accepted)
	if len(accepted) != 1 || accepted[0].ID != first {
		t.Fatalf("expected only the accepted resume, got %v", accepted)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/by_status/?status=rejected", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var rejected []resumes.ResumeResponse
	decodeBody(t, resp, &rejected)
	if len(rejected) != 0 {
		t.Fatalf("expected empty list, got %v", rejected)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/by_status/?status=pending", nil)
	var pending []resumes.ResumeResponse
	decodeBody(t, resp, &pending)
	if len(pending) != 1 || pending[0].ID != second {
		t.Fatalf("expected only the pending resume, got %v", pending)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/by_status/", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without status param, got %d", resp.Code)
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["status"]) == 0 {
		t.Fatalf("expected a status error, got %v", fields)
	}
}

func TestDeleteResumeCascades(t *testing.T) {
	app := newTestApp(t)
	id := createResume(t, app, "Cascade Candidate")

	resp := doJSON(t, app, http.MethodPost, "/api/experiences/", map[string]any{
		"resume":  id,
		"company": "Acme",
		"title":   "Engineer",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create experience: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var exp struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &exp)

	resp = doJSON(t, app, http.MethodDelete, "/api/resumes/"+id+"/", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+id+"/", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted resume, got %d", resp.Code)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/experiences/"+exp.ID+"/", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cascaded experience, got %d", resp.Code)
	}
}

func TestExperienceRejectsUnknownParent(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/experiences/", map[string]any{
		"resume":  "no-such-resume",
		"company": "Acme",
		"title":   "Engineer",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["resume"]) == 0 {
		t.Fatalf("expected a resume error, got %v", fields)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/experiences/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var all []json.RawMessage
	decodeBody(t, resp, &all)
	if len(all) != 0 {
		t.Fatalf("expected no experiences, got %d", len(all))
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestProjectAndCertificationRoutes(t *testing.T) {
	app := newTestApp(t)
	id := createResume(t, app, "Portfolio Candidate")

	resp := doJSON(t, app, http.MethodGet, "/api/projects/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list projects: expected 200, got %d", resp.Code)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/certifications/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list certifications: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/projects/", map[string]any{
		"resume":       id,
		"name":         "Search Service",
		"description":  "Full-text search over internal documents",
		"technologies": []string{"Go", "Postgres"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var proj struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &proj)

	resp = doJSON(t, app, http.MethodPost, "/api/certifications/", map[string]any{
		"resume":     id,
		"name":       "Certified Kubernetes Administrator",
		"issuer":     "CNCF",
		"issue_date": "2024-03-01",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create certification: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var cert struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &cert)

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+id+"/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var detail resumes.ResumeResponse
	decodeBody(t, resp, &detail)
	if len(detail.Projects) != 1 || detail.Projects[0].Name != "Search Service" {
		t.Fatalf("expected the project embedded in detail, got %v", detail.Projects)
	}
	if len(detail.Certifications) != 1 || detail.Certifications[0].Issuer != "CNCF" {
		t.Fatalf("expected the certification embedded in detail, got %v", detail.Certifications)
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/resumes/"+id+"/", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.Code)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/projects/"+proj.ID+"/", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cascaded project, got %d", resp.Code)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/certifications/"+cert.ID+"/", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cascaded certification, got %d", resp.Code)
	}
}

func TestCertificationRejectsUnknownParent(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/certifications/", map[string]any{
		"resume": "no-such-resume",
		"name":   "AWS Solutions Architect",
		"issuer": "AWS",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["resume"]) == 0 {
		t.Fatalf("expected a resume error, got %v", fields)
	}
}

func multipartDocuments(t *testing.T, parts map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, content := range parts {
		part, err := w.CreateFormFile(field, field+".pdf")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestSubmitDocuments(t *testing.T) {
	app := newTestApp(t)
	id := createResume(t, app, "Verified Candidate")

	body, contentType := multipartDocuments(t, map[string][]byte{
		"aadhar_document": []byte("aadhar scan"),
		"pan_document":    []byte("pan scan"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/"+id+"/submit-documents/", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var detail resumes.ResumeResponse
	decodeBody(t, resp, &detail)
	if detail.AadharDocument == nil || !strings.Contains(*detail.AadharDocument, "/media/documents/aadhar/") {
		t.Fatalf("expected an aadhar document url, got %v", detail.AadharDocument)
	}
	if detail.PanDocument == nil || !strings.Contains(*detail.PanDocument, "/media/documents/pan/") {
		t.Fatalf("expected a pan document url, got %v", detail.PanDocument)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+id+"/", nil)
	decodeBody(t, resp, &detail)
	if detail.AadharDocument == nil || detail.PanDocument == nil {
		t.Fatalf("document urls must persist on the resume, got %+v", detail)
	}
}

func TestSubmitDocumentsUnknownResume(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartDocuments(t, map[string][]byte{
		"pan_document": []byte("pan scan"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/no-such-id/submit-documents/", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSubmitDocumentsRequiresAFile(t *testing.T) {
	app := newTestApp(t)
	id := createResume(t, app, "Empty Submission")

	body, contentType := multipartDocuments(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/"+id+"/submit-documents/", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var fields map[string][]string
	decodeBody(t, resp, &fields)
	if len(fields["non_field_errors"]) == 0 {
		t.Fatalf("expected a non_field_errors entry, got %v", fields)
	}
}

func TestChildrenEmbeddedInDetail(t *testing.T) {
	app := newTestApp(t)
	id := createResume(t, app, "Embedded Candidate")

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/skills/", map[string]any{
			"resume": id,
			"name":   fmt.Sprintf("Skill %d", i),
		})
		if resp.Code != http.StatusCreated {
			t.Fatalf("create skill: expected 201, got %d: %s", resp.Code, resp.Body.String())
		}
	}
	resp := doJSON(t, app, http.MethodPost, "/api/education/", map[string]any{
		"resume":      id,
		"institution": "State University",
		"degree":      "BSc Computer Science",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create education: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodGet, "/api/resumes/"+id+"/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var detail resumes.ResumeResponse
	decodeBody(t, resp, &detail)
	if len(detail.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(detail.Skills))
	}
	if len(detail.Education) != 1 {
		t.Fatalf("expected 1 education entry, got %d", len(detail.Education))
	}
}
