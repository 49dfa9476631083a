package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
)

func TestInfoWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Info("resume.status_updated", map[string]any{
		"resume_id": "resume-1",
		"from":      "pending",
		"to":        "reviewed",
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "resume.status_updated" {
		t.Fatalf("unexpected msg %v", line["msg"])
	}
	if line["level"] != "info" {
		t.Fatalf("unexpected level %v", line["level"])
	}
	if line["resume_id"] != "resume-1" || line["to"] != "reviewed" {
		t.Fatalf("fields missing from log line: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected a ts field, got %v", line)
	}
}

func TestErrorWritesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Error("resume.file_cleanup_failed", map[string]any{"storage_key": "resumes/x.pdf"})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["level"] != "error" {
		t.Fatalf("unexpected level %v", line["level"])
	}
	if line["storage_key"] != "resumes/x.pdf" {
		t.Fatalf("fields missing from log line: %v", line)
	}
}
