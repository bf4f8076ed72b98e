package qa_test

import (
	"context"
	"sync"

	"github.com/akolanti/GoDocQA/internal/domain/runModel"
	"github.com/akolanti/GoDocQA/internal/notify"
	"github.com/akolanti/GoDocQA/internal/qa/answer"
)

// MockExtractor implements extract.Extractor
type MockExtractor struct {
	OnExtract func(ctx context.Context, path string) (string, error)
	Calls     int
}

func (m *MockExtractor) Extract(ctx context.Context, path string) (string, error) {
	m.Calls++
	if m.OnExtract != nil {
		return m.OnExtract(ctx, path)
	}
	return "Author: Jane Doe. Date: 2024-01-01.", nil
}

// MockEngine implements qa.Answerer
type MockEngine struct {
	OnAnswer func(ctx context.Context, text string, question string) answer.Result

	mu    sync.Mutex
	Calls int
}

func (m *MockEngine) Answer(ctx context.Context, text string, question string) answer.Result {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.OnAnswer != nil {
		return m.OnAnswer(ctx, text, question)
	}
	return answer.Result{Answer: "answer to " + question, Confidence: answer.ConfidenceHigh}
}

// MockNotifier implements notify.Notifier
type MockNotifier struct {
	OnNotify func(ctx context.Context, message string) (notify.Acknowledgement, error)
	Messages []string
}

func (m *MockNotifier) Notify(ctx context.Context, message string) (notify.Acknowledgement, error) {
	m.Messages = append(m.Messages, message)
	if m.OnNotify != nil {
		return m.OnNotify(ctx, message)
	}
	return notify.Acknowledgement{Channel: "C123", Timestamp: "1.0"}, nil
}

// MockRunStore implements runModel.RunStore
type MockRunStore struct {
	OnSaveRun func(ctx context.Context, run runModel.Run) error
	Saved     []runModel.Run
}

func (m *MockRunStore) SaveRun(ctx context.Context, run runModel.Run) error {
	m.Saved = append(m.Saved, run)
	if m.OnSaveRun != nil {
		return m.OnSaveRun(ctx, run)
	}
	return nil
}

func (m *MockRunStore) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	for _, run := range m.Saved {
		if run.Id == runId {
			return run, true
		}
	}
	return runModel.Run{}, false
}

func (m *MockRunStore) DeleteRun(ctx context.Context, runId string) {}
