package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/akolanti/GoDocQA/internal/adapter"
	"github.com/akolanti/GoDocQA/internal/adapter/utils"
	"github.com/akolanti/GoDocQA/internal/api"
	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/domain/runModel"
	"github.com/akolanti/GoDocQA/internal/qa"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

type QAHandler struct {
	service qa.Service
	runs    runModel.RunStore
	logger  *logger_i.Logger
}

func NewQAHandler(service qa.Service, runs runModel.RunStore) *QAHandler {
	return &QAHandler{
		service: service,
		runs:    runs,
		logger:  logger_i.NewLogger("QAHandler"),
	}
}

// UploadPDF godoc
// @Summary      Answer questions about a document
// @Description  Extracts the text of the uploaded document, answers every comma separated question against it and optionally posts the answers to Slack.
// @Tags         Q&A
// @Accept       multipart/form-data
// @Produce      json
// @Param        file                formData  file    true   "The PDF (or docx/odt/rtf/txt) document"
// @Param        questions           formData  string  true   "Comma separated questions"
// @Param        post_to_slack_flag  formData  bool    false  "Post the answers to the configured Slack channel"
// @Success      200  {object}  api.UploadResponse  "Answers keyed by question"
// @Failure      400  {object}  api.ErrorResponse   "Missing questions or file"
// @Failure      500  {object}  api.ErrorResponse   "Extraction, model or Slack failure"
// @Router       /upload_pdf/ [post]
func (h *QAHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context(), h.logger) {
		return
	}
	log := h.logger.WithTrace(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		log.Warn("Bad upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, api.DetailBadUpload)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	postToSlack, err := parseFlag(r.FormValue("post_to_slack_flag"))
	if err != nil {
		log.Warn("Bad post_to_slack_flag", "value", r.FormValue("post_to_slack_flag"))
		WriteErrorResponse(w, http.StatusBadRequest, api.DetailInvalidSlackFlag)
		return
	}

	req := qa.Request{
		Questions:   firstValue(r.MultipartForm.Value["questions"]),
		PostToSlack: postToSlack,
	}

	// a missing file is reported by the service after the questions check
	file, header, err := r.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		log.Warn("Could not read uploaded file", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, api.DetailBadUpload)
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileName = header.Filename
	}

	run, err := h.service.ProcessUpload(r.Context(), req)
	if run.Id != "" {
		w.Header().Set("X-Run-Id", run.Id)
	}
	if err != nil {
		var validationErr *qa.ValidationError
		if errors.As(err, &validationErr) {
			WriteErrorResponse(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		log.Error("Upload failed", "runId", run.Id, "step", run.CurrentStep, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.DetailInternalError)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(run), log)
}

// GetRun godoc
// @Summary      Get a processed run
// @Description  Returns the record of a previous upload, including its answers and failure step.
// @Tags         Runs
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  api.RunResponse    "The run record"
// @Failure      404  {object}  api.ErrorResponse  "Run not found"
// @Router       /runs/{id} [get]
func (h *QAHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context(), h.logger) {
		return
	}
	log := h.logger.WithTrace(r.Context())

	id := strings.TrimSpace(utils.GetChiURLParam(r, "id"))
	if id == "" || h.runs == nil {
		WriteErrorResponse(w, http.StatusNotFound, api.DetailRunNotFound)
		return
	}

	run, found := h.runs.GetRun(r.Context(), id)
	if !found {
		log.Debug("Run not found", "runId", id)
		WriteErrorResponse(w, http.StatusNotFound, api.DetailRunNotFound)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToRunResponse(run), log)
}

// DeleteRun godoc
// @Summary      Delete a processed run
// @Description  Removes the record of a previous upload from the run store.
// @Tags         Runs
// @Param        id   path      string  true  "Run ID"
// @Success      204  "Run deleted"
// @Failure      404  {object}  api.ErrorResponse  "Run not found"
// @Router       /runs/{id} [delete]
func (h *QAHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context(), h.logger) {
		return
	}
	log := h.logger.WithTrace(r.Context())

	id := strings.TrimSpace(utils.GetChiURLParam(r, "id"))
	if id == "" || h.runs == nil {
		WriteErrorResponse(w, http.StatusNotFound, api.DetailRunNotFound)
		return
	}

	if _, found := h.runs.GetRun(r.Context(), id); !found {
		log.Debug("Run not found", "runId", id)
		WriteErrorResponse(w, http.StatusNotFound, api.DetailRunNotFound)
		return
	}
	h.runs.DeleteRun(r.Context(), id)
	log.Info("Run deleted", "runId", id)
	w.WriteHeader(http.StatusNoContent)
}
