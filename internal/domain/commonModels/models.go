package commonModels

import (
	"path/filepath"
	"strings"
	"time"
)

// Document is an uploaded file for the duration of one request.
type Document struct {
	Id          string    `json:"id"`
	Name        string    `json:"doc_name"`
	Path        string    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ContentType DocType   `json:"contentType"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"

// GetDocType maps a file name to the extractor that reads it.
// Anything that is not a known office/text format is handed to the PDF parser.
func GetDocType(docPath string) DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".docx", ".odt", ".rtf":
		return DOCX
	case ".txt":
		return TXT
	default:
		return PDF
	}
}

// ParseQuestions turns the submitted `questions` form values into the ordered
// question list. Only the first value is read; it is trimmed as a whole and
// split on commas. Blank entries are dropped, the others keep their spacing.
func ParseQuestions(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}

	var questions []string
	for _, question := range strings.Split(strings.TrimSpace(fields[0]), ",") {
		if strings.TrimSpace(question) == "" {
			continue
		}
		questions = append(questions, question)
	}
	return questions
}
