package experiences

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeParents struct {
	known map[string]bool
}

func (f fakeParents) Exists(ctx context.Context, id string) (bool, error) {
	return f.known[id], nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{
		Repo:    repo,
		Parents: fakeParents{known: map[string]bool{"resume-1": true}},
	}
	handler := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router, repo
}

func jsonRequest(method, path string, payload any) *http.Request {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateExperience(t *testing.T) {
	router, repo := newTestRouter(t)

	req := jsonRequest(http.MethodPost, "/api/experiences/", map[string]any{
		"resume":      "resume-1",
		"company":     "Acme",
		"title":       "Engineer",
		"start_date":  "2021-06-01",
		"skills_used": []string{"Go", "Postgres"},
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created ExperienceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if created.ID == "" || created.Resume != "resume-1" {
		t.Fatalf("unexpected response %+v", created)
	}
	if len(created.SkillsUsed) != 2 {
		t.Fatalf("expected 2 skills, got %v", created.SkillsUsed)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Company != "Acme" {
		t.Fatalf("unexpected stored row %+v", stored)
	}
}

func TestCreateExperienceUnknownParent(t *testing.T) {
	router, repo := newTestRouter(t)

	req := jsonRequest(http.MethodPost, "/api/experiences/", map[string]any{
		"resume":  "resume-404",
		"company": "Acme",
		"title":   "Engineer",
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
	if len(fields["resume"]) == 0 {
		t.Fatalf("expected a resume error, got %v", fields)
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("no row may be written on rejection, got %d", len(all))
	}
}

func TestCreateExperienceRequiredFields(t *testing.T) {
	router, _ := newTestRouter(t)

	req := jsonRequest(http.MethodPost, "/api/experiences/", map[string]any{
		"resume": "resume-1",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var fields map[string][]string
	if err := json.Unmarshal(resp.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, field := range []string{"company", "title"} {
		if len(fields[field]) == 0 || fields[field][0] != "This field is required." {
			t.Fatalf("expected required error for %s, got %v", field, fields)
		}
	}
}

func TestPatchExperienceKeepsSkills(t *testing.T) {
	router, repo := newTestRouter(t)

	exp := Experience{
		ID:         "exp-1",
		ResumeID:   "resume-1",
		Company:    "Acme",
		Title:      "Engineer",
		SkillsUsed: []string{"Go"},
	}
	if err := repo.Create(context.Background(), exp); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := jsonRequest(http.MethodPatch, "/api/experiences/exp-1/", map[string]any{
		"title": "Senior Engineer",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var updated ExperienceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if updated.Title != "Senior Engineer" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if len(updated.SkillsUsed) != 1 || updated.SkillsUsed[0] != "Go" {
		t.Fatalf("partial update must keep skills, got %v", updated.SkillsUsed)
	}
}

func TestDeleteExperience(t *testing.T) {
	router, repo := newTestRouter(t)

	exp := Experience{ID: "exp-1", ResumeID: "resume-1", Company: "Acme", Title: "Engineer"}
	if err := repo.Create(context.Background(), exp); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/experiences/exp-1/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/experiences/exp-1/", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
