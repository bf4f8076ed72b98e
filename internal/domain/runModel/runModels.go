package runModel

import (
	"context"
	"time"
)

type RunStatus string
type Step string

const (
	RunStatusRunning  RunStatus = "RUNNING"
	RunStatusComplete RunStatus = "COMPLETE"
	RunStatusFailed   RunStatus = "FAILED"

	StepValidate Step = "Validate"
	StepStore    Step = "Store"
	StepExtract  Step = "Extract"
	StepAnswer   Step = "Answer"
	StepNotify   Step = "Notify"
	StepComplete Step = "Complete"
)

// Run is the record of one processed upload.
type Run struct {
	Id           string    `json:"id"`
	TraceId      string    `json:"trace_id"`
	DocumentName string    `json:"document_name"`
	Questions    []string  `json:"questions"`
	Results      ResultSet `json:"results"`
	PostToSlack  bool      `json:"post_to_slack"`
	Notified     bool      `json:"notified"`
	Status       RunStatus `json:"status"`
	CurrentStep  Step      `json:"current_step"`
	Error        RunError  `json:"error,omitempty"`
	CreatedTime  time.Time `json:"created_time"`
	EndTime      time.Time `json:"end_time,omitempty"`
}

type RunError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RunStore interface {
	GetRun(ctx context.Context, runId string) (Run, bool)
	SaveRun(ctx context.Context, run Run) error
	DeleteRun(ctx context.Context, runId string)
}
