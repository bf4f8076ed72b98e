package qa_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/akolanti/GoDocQA/internal/qa/answer"
)

// captureLogs routes the default slog handler into a buffer. It must run
// before newFixture, which binds the service logger.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	buf := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return buf
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("bad log line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestProcessUpload_RejectedInputLogsOneWarning(t *testing.T) {
	buf := captureLogs(t)
	f := newFixture(t)

	if _, err := f.service.ProcessUpload(testCtx(), request(" , ", false)); err == nil {
		t.Fatal("expected a validation error")
	}

	warnings := 0
	for _, entry := range logEntries(t, buf) {
		switch entry["level"] {
		case "ERROR":
			t.Errorf("rejected input logged as error: %v", entry)
		case "WARN":
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("warnings got %d, want 1", warnings)
	}
}

func TestProcessUpload_ExtractionFailureLogsError(t *testing.T) {
	buf := captureLogs(t)
	f := newFixture(t)
	f.extractor.OnExtract = func(ctx context.Context, path string) (string, error) {
		return "", context.DeadlineExceeded
	}

	if _, err := f.service.ProcessUpload(testCtx(), request("q", false)); err == nil {
		t.Fatal("expected an extraction error")
	}

	found := false
	for _, entry := range logEntries(t, buf) {
		if entry["level"] == "ERROR" && entry["msg"] == "Extract failed" {
			found = true
		}
	}
	if !found {
		t.Error("extraction failure was not logged as an error")
	}
}

func TestProcessUpload_LogsStepsAndAnswerSummary(t *testing.T) {
	buf := captureLogs(t)
	f := newFixture(t)
	f.engine.OnAnswer = func(ctx context.Context, text string, question string) answer.Result {
		switch question {
		case "missing":
			return answer.Result{Answer: answer.SentinelNotAvailable, Confidence: answer.ConfidenceLow}
		case "broken":
			return answer.Result{Answer: answer.SentinelError, Degraded: true}
		}
		return answer.Result{Answer: "fine", Confidence: answer.ConfidenceHigh}
	}

	if _, err := f.service.ProcessUpload(testCtx(), request("ok,missing,broken", false)); err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}

	var steps []any
	var summary map[string]any
	for _, entry := range logEntries(t, buf) {
		if step, ok := entry["step"]; ok {
			steps = append(steps, step)
		}
		if entry["msg"] == "Answered questions" {
			summary = entry
		}
	}
	if len(steps) == 0 || steps[len(steps)-1] != "Complete" {
		t.Errorf("step entries got %v", steps)
	}
	if summary == nil {
		t.Fatal("no answer summary logged")
	}
	// JSON numbers decode as float64
	if summary["count"] != 3.0 || summary["unavailable"] != 1.0 || summary["failed"] != 1.0 {
		t.Errorf("summary got %v", summary)
	}
}
