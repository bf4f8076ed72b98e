package mcpServer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/akolanti/GoDocQA/internal/adapter/utils"
	"github.com/akolanti/GoDocQA/internal/api"
	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/qa"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ToolName = "answer_document_questions"

type toolInput struct {
	FileName      string `json:"file_name" jsonschema:"name of the document, its extension selects the parser"`
	ContentBase64 string `json:"content_base64" jsonschema:"document bytes, base64 encoded"`
	Questions     string `json:"questions" jsonschema:"comma separated questions"`
	PostToSlack   bool   `json:"post_to_slack,omitempty" jsonschema:"also post the answers to the configured Slack channel"`
}

var logger = logger_i.NewLogger("MCP Server")

// NewServer exposes the upload pipeline as a single MCP tool.
func NewServer(service qa.Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "godocqa",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Extract the text of a document and answer comma separated questions about it. Unanswerable questions come back as \"Data Not Available\".",
	}, answerTool(service))

	return server
}

// Handler serves server over stateless streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})
}

func answerTool(service qa.Service) mcp.ToolHandlerFor[toolInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in toolInput) (*mcp.CallToolResult, any, error) {
		if logger_i.TraceId(ctx) == "" {
			ctx = context.WithValue(ctx, config.TRACE_ID_KEY, utils.GetNewUUID())
		}
		log := logger.WithTrace(ctx)

		content, err := base64.StdEncoding.DecodeString(in.ContentBase64)
		if err != nil {
			log.Warn("Invalid base64 content", "error", err)
			return toolError("content_base64 is not valid base64"), nil, nil
		}

		request := qa.Request{
			FileName:    in.FileName,
			Questions:   in.Questions,
			PostToSlack: in.PostToSlack,
		}
		if len(content) > 0 {
			request.File = bytes.NewReader(content)
		}

		run, err := service.ProcessUpload(ctx, request)
		if err != nil {
			var validationErr *qa.ValidationError
			if errors.As(err, &validationErr) {
				return toolError(validationErr.Message), nil, nil
			}
			log.Error("Tool call failed", "runId", run.Id, "error", err)
			return toolError(api.DetailInternalError), nil, nil
		}

		body, err := run.Results.PrettyJSON()
		if err != nil {
			return nil, nil, err
		}
		log.Info("Tool call answered", "runId", run.Id, "questions", run.Results.Len())
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: body}},
		}, nil, nil
	}
}

func toolError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
