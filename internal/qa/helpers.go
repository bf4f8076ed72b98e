package qa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/GoDocQA/internal/adapter/utils"
	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/domain/commonModels"
	"github.com/akolanti/GoDocQA/internal/domain/runModel"
	"github.com/akolanti/GoDocQA/internal/metrics"
	"github.com/akolanti/GoDocQA/internal/qa/answer"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

func logStep(run runModel.Run, step runModel.Step, log *logger_i.Logger) runModel.Run {
	run.CurrentStep = step
	log.Debug("ProcessUpload", "step", run.CurrentStep)
	return run
}

// runError marks the run failed. Rejected input is the caller's fault and
// is logged as a warning, everything else as an error.
func (s *service) runError(log *logger_i.Logger, run runModel.Run, err error, code int) runModel.Run {
	if code < http.StatusInternalServerError {
		log.Warn(string(run.CurrentStep)+" rejected", "error", err)
	} else {
		log.Error(string(run.CurrentStep)+" failed", "error", err)
	}

	run.Error = runModel.RunError{
		Code:    code,
		Message: err.Error(),
	}
	run.Status = runModel.RunStatusFailed
	return run
}

// finish stamps the run and records it. A store failure does not fail the request.
func (s *service) finish(ctx context.Context, log *logger_i.Logger, run runModel.Run) runModel.Run {
	run.EndTime = time.Now()
	if s.runStore == nil {
		return run
	}
	if err := s.runStore.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		log.Error("Failed to save run", "error", err)
	}
	return run
}

func (s *service) uploadDir() (string, error) {
	if s.tempDir != "" {
		return s.tempDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, config.TemporaryDataDir), nil
}

// storeUpload writes the upload under a request unique name so parallel
// uploads of the same file never collide.
func (s *service) storeUpload(req Request) (commonModels.Document, error) {
	dir, err := s.uploadDir()
	if err != nil {
		return commonModels.Document{}, &StorageError{Op: "resolve dir", Err: err}
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return commonModels.Document{}, &StorageError{Op: "create dir", Err: err}
	}

	base := filepath.Base(req.FileName)
	if base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		Name:        base,
		UploadedAt:  time.Now(),
		ContentType: commonModels.GetDocType(base),
	}
	doc.Path = filepath.Join(dir, fmt.Sprintf("%d-%s-%s", doc.UploadedAt.UnixNano(), doc.Id, base))

	f, err := os.Create(doc.Path)
	if err != nil {
		return commonModels.Document{}, &StorageError{Op: "create file", Err: err}
	}
	if _, err = io.Copy(f, req.File); err != nil {
		_ = f.Close()
		_ = os.Remove(doc.Path)
		return commonModels.Document{}, &StorageError{Op: "write file", Err: err}
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(doc.Path)
		return commonModels.Document{}, &StorageError{Op: "close file", Err: err}
	}
	return doc, nil
}

func (s *service) removeUpload(log *logger_i.Logger, doc commonModels.Document) {
	if err := os.Remove(doc.Path); err != nil && !os.IsNotExist(err) {
		log.Warn("Failed to remove upload", "path", doc.Path, "error", err)
	}
}

// answerQuestions runs the engine for every question with bounded parallelism.
// Results are assembled in input order, so a repeated question keeps its
// first position and the answer of its last occurrence.
func (s *service) answerQuestions(ctx context.Context, text string, questions []string) (runModel.ResultSet, error) {
	answers := make([]string, len(questions))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, question := range questions {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			metrics.IncrementQuestionsInFlight()
			defer metrics.DecrementQuestionsInFlight()

			answers[i] = s.engine.Answer(groupCtx, text, question).Answer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return runModel.ResultSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return runModel.ResultSet{}, err
	}

	results := runModel.NewResultSet()
	for i, question := range questions {
		results.Set(question, answers[i])
	}
	return results, nil
}

// countSentinels reports how many questions came back unanswered or failed.
func countSentinels(results runModel.ResultSet) (unavailable int, failed int) {
	for _, question := range results.Questions() {
		reply, _ := results.Get(question)
		switch reply {
		case answer.SentinelNotAvailable:
			unavailable++
		case answer.SentinelError:
			failed++
		}
	}
	return unavailable, failed
}
