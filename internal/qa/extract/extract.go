package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/domain/commonModels"
	"github.com/akolanti/GoDocQA/internal/metrics"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

// Extractor produces the full plain text of a stored document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractionError is returned for any document that cannot be opened or parsed.
type ExtractionError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

type documentExtractor struct {
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewDocumentExtractor(pageTimeout time.Duration) Extractor {
	if pageTimeout <= 0 {
		pageTimeout = config.PageExtractTimeout
	}
	return &documentExtractor{
		pageTimeout: pageTimeout,
		logger:      logger_i.NewLogger("Extractor"),
	}
}

// Extract concatenates the text of every page in page order, with no separator.
func (d *documentExtractor) Extract(ctx context.Context, path string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extract", time.Since(start)) }()

	log := d.logger.WithTrace(ctx)
	docType := commonModels.GetDocType(path)
	log.Debug("extracting document", "path", path, "type", docType)

	pages, err := d.extractText(ctx, path, docType, log)
	if err != nil {
		log.Error("Error extracting text", "path", path, "error", err)
		return "", err
	}

	var text strings.Builder
	for _, page := range pages {
		text.WriteString(page.Content)
	}
	log.Info("Extracted text", "path", path, "pages", len(pages), "chars", text.Len())
	return text.String(), nil
}

func (d *documentExtractor) extractText(ctx context.Context, path string, docType commonModels.DocType, log *logger_i.Logger) ([]rawPage, error) {
	switch docType {
	case commonModels.DOCX, commonModels.TXT:
		return extractDocxTxtRtf(path)
	default:
		return d.extractPDF(ctx, path, log)
	}
}
