package api

import (
	"time"

	"github.com/akolanti/GoDocQA/internal/domain/runModel"
)

const (
	DetailQuestionsRequired = "Questions are required"
	DetailInternalError     = "An error occurred while processing the request"
	DetailRunNotFound       = "Run not found"
	DetailInvalidSlackFlag  = "post_to_slack_flag must be a boolean"
	DetailBadUpload         = "File too large or bad request"
)

// UploadResponse keeps the question order of the request.
type UploadResponse struct {
	Results runModel.ResultSet `json:"results" swaggertype:"object,string"`
}

type ErrorResponse struct {
	Detail string `json:"detail" example:"Questions are required"`
}

type RunResponse struct {
	Id           string             `json:"id" example:"0b7d3f1e-5c1a-4f5e-9a57-1f0f4d7f7b1c"`
	TraceId      string             `json:"trace_id"`
	DocumentName string             `json:"document_name" example:"report.pdf"`
	Questions    []string           `json:"questions"`
	Results      runModel.ResultSet `json:"results" swaggertype:"object,string"`
	PostToSlack  bool               `json:"post_to_slack"`
	Notified     bool               `json:"notified"`
	Status       string             `json:"status" example:"COMPLETE"`
	CurrentStep  string             `json:"current_step" example:"Complete"`
	Error        *RunOutgoingError  `json:"error,omitempty"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time,omitempty"`
}

type RunOutgoingError struct {
	Code    int    `json:"code" example:"500"`
	Message string `json:"message" example:"extraction failed"`
}
