package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/akolanti/GoDocQA/internal/adapter"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}, log *logger_i.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		log.Error("Error encoding response", "error", err)
	}
}

func validateContext(ctx context.Context, log *logger_i.Logger) bool {
	if err := ctx.Err(); err != nil {
		log.WithTrace(ctx).Warn("context error", "error", err)
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, detail string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(detail), logRH)
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseFlag reads an optional boolean form field; empty means false.
func parseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0", "no", "off":
		return false, nil
	case "true", "1", "yes", "on":
		return true, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", value)
	}
}
