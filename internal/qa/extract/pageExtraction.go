package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var errPageTimeout = errors.New("page extraction timed out")

func (d *documentExtractor) extractPDF(ctx context.Context, path string, log *logger_i.Logger) (pages []rawPage, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &ExtractionError{Op: "parse", Path: path, Err: fmt.Errorf("%v", r)}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &ExtractionError{Op: "stat", Path: path, Err: err}
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, &ExtractionError{Op: "open", Path: path, Err: err}
	}

	numPages := reader.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			log.Debug("extractPDF", "page value is null", i)
			continue
		}

		content, err := d.protectExtract(ctx, page)
		if err != nil {
			return nil, &ExtractionError{Op: fmt.Sprintf("page %d", i), Path: path, Err: err}
		}

		pages = append(pages, rawPage{
			Number:  i,
			Content: content,
		})
	}
	return pages, nil
}

// extractDocxTxtRtf reads a .odt, .docx, .rtf or plaintext file as a single page.
func extractDocxTxtRtf(path string) ([]rawPage, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ExtractionError{Op: "open", Path: path, Err: err}
	}

	text, err := cat.File(path)
	if err != nil {
		return nil, &ExtractionError{Op: "parse", Path: path, Err: err}
	}

	return []rawPage{
		{
			Number:  1,
			Content: text,
		},
	}, nil
}

func (d *documentExtractor) protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(d.pageTimeout):
		return "", errPageTimeout
	}
}
