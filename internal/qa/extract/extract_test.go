package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// buildPDF writes a minimal PDF with one text line per page.
func buildPDF(pages []string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		content := "BT ET"
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtract_PagesInOrder(t *testing.T) {
	path := writeFile(t, "doc.pdf", buildPDF([]string{"Author: Jane Doe. ", "Date: 2024-01-01."}))

	text, err := NewDocumentExtractor(time.Second).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "Author: Jane Doe. Date: 2024-01-01." {
		t.Errorf("got %q", text)
	}
}

func TestExtract_EmptyDocumentIsNotAnError(t *testing.T) {
	path := writeFile(t, "blank.pdf", buildPDF([]string{"", ""}))

	text, err := NewDocumentExtractor(time.Second).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestExtract_Failures(t *testing.T) {
	corrupt := writeFile(t, "corrupt.pdf", []byte(strings.Repeat("this is not a pdf document\n", 10)))
	empty := writeFile(t, "empty.pdf", nil)

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.pdf")},
		{"missing docx", filepath.Join(t.TempDir(), "missing.docx")},
		{"corrupt pdf", corrupt},
		{"zero bytes", empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocumentExtractor(time.Second).Extract(context.Background(), tt.path)
			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if extractionErr.Path != tt.path {
				t.Errorf("error path got %s, want %s", extractionErr.Path, tt.path)
			}
		})
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	path := writeFile(t, "doc.pdf", buildPDF([]string{"some text"}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDocumentExtractor(time.Second).Extract(ctx, path)
	// the page may finish before the select observes the cancellation
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled or success, got %v", err)
	}
}

func TestExtract_PlainText(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("Plain text body for extraction."))

	text, err := NewDocumentExtractor(time.Second).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "Plain text body for extraction.") {
		t.Errorf("got %q", text)
	}
}
