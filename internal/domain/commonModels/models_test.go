package commonModels

import (
	"reflect"
	"testing"
)

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name     string
		fields   []string
		expected []string
	}{
		{"no field", nil, nil},
		{"empty field", []string{""}, nil},
		{"whitespace only", []string{"  ,  , "}, nil},
		{
			name:     "keeps inner spacing of each entry",
			fields:   []string{"Who is the author?, What is the date?"},
			expected: []string{"Who is the author?", " What is the date?"},
		},
		{
			name:     "outer whitespace of the field is trimmed",
			fields:   []string{"  first?,second?  \n"},
			expected: []string{"first?", "second?"},
		},
		{
			name:     "only the first field is read",
			fields:   []string{"a?", "b?, c?"},
			expected: []string{"a?"},
		},
		{
			name:     "empty entries between commas are dropped",
			fields:   []string{"a?,,b?, ,c?"},
			expected: []string{"a?", "b?", "c?"},
		},
		{
			name:     "duplicates are kept for the result set to collapse",
			fields:   []string{"a?,a?"},
			expected: []string{"a?", "a?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuestions(tt.fields)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseQuestions(%q) = %q; want %q", tt.fields, got, tt.expected)
			}
		})
	}
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected DocType
	}{
		{"test.pdf", PDF},
		{"DOC.DOCX", DOCX},
		{"notes.odt", DOCX},
		{"notes.txt", TXT},
		{"no-extension", PDF},
		{"image.png", PDF},
	}

	for _, tt := range tests {
		if got := GetDocType(tt.path); got != tt.expected {
			t.Errorf("GetDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}
