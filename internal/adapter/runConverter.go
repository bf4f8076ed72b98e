package adapter

import (
	"github.com/akolanti/GoDocQA/internal/api"
	"github.com/akolanti/GoDocQA/internal/domain/runModel"
)

func ToUploadResponse(run runModel.Run) api.UploadResponse {
	return api.UploadResponse{Results: run.Results}
}

func ToRunResponse(run runModel.Run) api.RunResponse {
	var errorPtr *api.RunOutgoingError
	if run.Error.Message != "" || run.Error.Code != 0 {
		errorPtr = &api.RunOutgoingError{
			Code:    run.Error.Code,
			Message: run.Error.Message,
		}
	}

	return api.RunResponse{
		Id:           run.Id,
		TraceId:      run.TraceId,
		DocumentName: run.DocumentName,
		Questions:    run.Questions,
		Results:      run.Results,
		PostToSlack:  run.PostToSlack,
		Notified:     run.Notified,
		Status:       string(run.Status),
		CurrentStep:  string(run.CurrentStep),
		Error:        errorPtr,
		StartTime:    run.CreatedTime,
		EndTime:      run.EndTime,
	}
}

func ToErrorResponse(detail string) api.ErrorResponse {
	return api.ErrorResponse{Detail: detail}
}
