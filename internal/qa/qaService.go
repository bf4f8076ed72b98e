package qa

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/akolanti/GoDocQA/internal/adapter/utils"
	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/domain/commonModels"
	"github.com/akolanti/GoDocQA/internal/domain/runModel"
	"github.com/akolanti/GoDocQA/internal/metrics"
	"github.com/akolanti/GoDocQA/internal/notify"
	"github.com/akolanti/GoDocQA/internal/qa/answer"
	"github.com/akolanti/GoDocQA/internal/qa/extract"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

// Service is the only entry point the HTTP and MCP surfaces use.
type Service interface {
	ProcessUpload(ctx context.Context, req Request) (runModel.Run, error)
}

// Request is one upload. Questions is the raw comma-delimited field.
type Request struct {
	FileName    string
	File        io.Reader
	Questions   string
	PostToSlack bool
}

// Answerer answers a single question against the document text.
type Answerer interface {
	Answer(ctx context.Context, text string, question string) answer.Result
}

type Dependencies struct {
	Extractor extract.Extractor
	Engine    Answerer
	Notifier  notify.Notifier
	RunStore  runModel.RunStore

	TempDir     string //empty: <cwd>/temporary_data
	Concurrency int
}

type service struct {
	extractor   extract.Extractor
	engine      Answerer
	notifier    notify.Notifier
	runStore    runModel.RunStore
	tempDir     string
	concurrency int
	logger      *logger_i.Logger
}

func NewService(deps Dependencies) Service {
	if deps.Concurrency < 1 {
		deps.Concurrency = config.QuestionConcurrency
	}
	return &service{
		extractor:   deps.Extractor,
		engine:      deps.Engine,
		notifier:    deps.Notifier,
		runStore:    deps.RunStore,
		tempDir:     deps.TempDir,
		concurrency: deps.Concurrency,
		logger:      logger_i.NewLogger("QA Service"),
	}
}

func (s *service) ProcessUpload(ctx context.Context, req Request) (runModel.Run, error) {
	start := time.Now()
	run := runModel.Run{
		Id:           utils.GetNewUUID(),
		TraceId:      logger_i.TraceId(ctx),
		DocumentName: req.FileName,
		PostToSlack:  req.PostToSlack,
		Results:      runModel.NewResultSet(),
		Status:       runModel.RunStatusRunning,
		CurrentStep:  runModel.StepValidate,
		CreatedTime:  start,
	}
	log := s.logger.WithTrace(ctx).With("runId", run.Id)
	defer func() { metrics.CaptureRequestMetrics(string(run.Status), time.Since(start)) }()

	// Validate
	questions, err := validate(req)
	if err != nil {
		return s.runError(log, run, err, http.StatusBadRequest), err
	}
	run.Questions = questions

	// Store
	run = logStep(run, runModel.StepStore, log)
	doc, err := s.storeUpload(req)
	if err != nil {
		return s.finish(ctx, log, s.runError(log, run, err, http.StatusInternalServerError)), err
	}
	defer s.removeUpload(log, doc)

	// Extract
	run = logStep(run, runModel.StepExtract, log)
	text, err := s.extractor.Extract(ctx, doc.Path)
	if err != nil {
		return s.finish(ctx, log, s.runError(log, run, err, http.StatusInternalServerError)), err
	}

	// Answer
	run = logStep(run, runModel.StepAnswer, log)
	results, err := s.answerQuestions(ctx, text, questions)
	if err != nil {
		return s.finish(ctx, log, s.runError(log, run, err, http.StatusInternalServerError)), err
	}
	run.Results = results
	unavailable, failed := countSentinels(results)
	log.Info("Answered questions", "count", results.Len(), "unavailable", unavailable, "failed", failed)

	// Notify
	if req.PostToSlack {
		run = logStep(run, runModel.StepNotify, log)
		if err = s.notifyResults(ctx, results); err != nil {
			return s.finish(ctx, log, s.runError(log, run, err, http.StatusInternalServerError)), err
		}
		run.Notified = true
	}

	run.Status = runModel.RunStatusComplete
	run = logStep(run, runModel.StepComplete, log)
	return s.finish(ctx, log, run), nil
}

func validate(req Request) ([]string, error) {
	questions := commonModels.ParseQuestions([]string{req.Questions})
	if len(questions) == 0 {
		return nil, &ValidationError{Field: "questions", Message: "Questions are required"}
	}
	if req.File == nil {
		return nil, &ValidationError{Field: "file", Message: "File is required"}
	}
	return questions, nil
}

func (s *service) notifyResults(ctx context.Context, results runModel.ResultSet) error {
	message, err := notify.FormatResults(results)
	if err != nil {
		return &notify.DeliveryError{Err: err}
	}
	if _, err = s.notifier.Notify(ctx, message); err != nil {
		var deliveryErr *notify.DeliveryError
		if errors.As(err, &deliveryErr) {
			return err
		}
		return &notify.DeliveryError{Err: err}
	}
	return nil
}
