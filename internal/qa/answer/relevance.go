package answer

import "strings"

// Completions drift into generic chatbot replies when the document does not
// hold the answer. Any of these substrings marks the answer as unusable.
var irrelevantPatterns = []string{
	"My name is",
	"Hello",
	"How can I assist you",
	"I don't know",
	"I'm not sure",
	"Based on the provided document",
	SentinelNotAvailable,
}

func IsIrrelevant(answer string) bool {
	for _, pattern := range irrelevantPatterns {
		if strings.Contains(answer, pattern) {
			return true
		}
	}
	return false
}
