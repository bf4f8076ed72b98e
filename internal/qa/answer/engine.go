package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/metrics"
	"github.com/akolanti/GoDocQA/internal/qa/llm"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

const (
	SentinelNotAvailable = "Data Not Available"
	SentinelError        = "Error"
)

type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Result is the engine's verdict for one question. Degraded results carry a
// sentinel in Answer.
type Result struct {
	Answer     string
	Confidence Confidence
	Degraded   bool
}

type Options struct {
	System              string
	AnswerMaxTokens     int64
	ConfidenceMaxTokens int64
	Temperature         float64
	CallTimeout         time.Duration
}

func DefaultOptions() Options {
	return Options{
		System:              config.ModelContext,
		AnswerMaxTokens:     config.AnswerMaxTokens,
		ConfidenceMaxTokens: config.ConfidenceMaxTokens,
		Temperature:         config.ModelTemperature,
		CallTimeout:         config.ExternalCallTimeout,
	}
}

type Engine struct {
	provider llm.Provider
	options  Options
	logger   *logger_i.Logger
}

func NewEngine(provider llm.Provider, options Options) *Engine {
	if options.CallTimeout <= 0 {
		options.CallTimeout = config.ExternalCallTimeout
	}
	return &Engine{
		provider: provider,
		options:  options,
		logger:   logger_i.NewLogger("AnswerEngine"),
	}
}

// Answer asks the model, asks it again how confident it is, and filters the
// result. It never fails: degraded outcomes come back as sentinel answers.
func (e *Engine) Answer(ctx context.Context, text string, question string) (result Result) {
	log := e.logger.WithTrace(ctx).With("question", question)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Error in answer engine", "panic", r)
			result = errorResult()
		}
		metrics.CountAnswer(result.outcome())
	}()

	answer, err := e.generateAnswer(ctx, log, text, question)
	if err != nil {
		log.Error("Error in generate answer", "error", err)
		return errorResult()
	}

	confidence := e.evaluateConfidence(ctx, log, text, question, answer)

	// low confidence wins on its own, whatever the relevance filter says
	if confidence == ConfidenceLow {
		return notAvailable(confidence)
	}
	if answer == "" || IsIrrelevant(answer) {
		return notAvailable(confidence)
	}
	return Result{Answer: answer, Confidence: confidence}
}

// generateAnswer swallows ordinary provider failures into an empty answer.
// Only llm.ErrUnrecoverable is returned.
func (e *Engine) generateAnswer(ctx context.Context, log *logger_i.Logger, text string, question string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generate", time.Since(start)) }()

	callCtx, cancel := context.WithTimeout(ctx, e.options.CallTimeout)
	defer cancel()

	completion, err := e.provider.Complete(callCtx, llm.CompletionRequest{
		System:      e.options.System,
		Prompt:      answerPrompt(text, question),
		MaxTokens:   e.options.AnswerMaxTokens,
		Temperature: e.options.Temperature,
	})
	if err != nil {
		if errors.Is(err, llm.ErrUnrecoverable) {
			return "", err
		}
		log.Error("Error in generate answer, continuing with empty answer", "error", err)
		return "", nil
	}

	answer := strings.TrimSpace(completion)
	log.Info("Generated answer", "answer", answer)
	return answer, nil
}

func (e *Engine) evaluateConfidence(ctx context.Context, log *logger_i.Logger, text string, question string, answer string) Confidence {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_confidence", time.Since(start)) }()

	callCtx, cancel := context.WithTimeout(ctx, e.options.CallTimeout)
	defer cancel()

	completion, err := e.provider.Complete(callCtx, llm.CompletionRequest{
		System:      e.options.System,
		Prompt:      confidencePrompt(text, question, answer),
		MaxTokens:   e.options.ConfidenceMaxTokens,
		Temperature: e.options.Temperature,
	})
	if err != nil {
		log.Error("Error in evaluate confidence", "error", err)
		return ConfidenceLow
	}

	confidence := Confidence(strings.ToLower(strings.TrimSpace(completion)))
	log.Info("Evaluated confidence", "confidence", confidence)
	return confidence
}

func notAvailable(confidence Confidence) Result {
	return Result{Answer: SentinelNotAvailable, Confidence: confidence, Degraded: true}
}

func errorResult() Result {
	return Result{Answer: SentinelError, Confidence: ConfidenceLow, Degraded: true}
}

func (r Result) outcome() string {
	switch {
	case !r.Degraded:
		return "answered"
	case r.Answer == SentinelError:
		return "error"
	default:
		return "not_available"
	}
}

func (r Result) String() string {
	return fmt.Sprintf("%s (confidence=%s degraded=%v)", r.Answer, r.Confidence, r.Degraded)
}
