package answer

import "fmt"

func answerPrompt(text string, question string) string {
	return fmt.Sprintf("Answer the following question based on the provided document:\n\nDocument:\n%s\n\nQuestion: %s\nAnswer:", text, question)
}

func confidencePrompt(text string, question string, answer string) string {
	return fmt.Sprintf("Based on the provided document and the answer given, evaluate the confidence of the answer. Reply with 'high' if confident or 'low' if not confident.\n\nDocument:\n%s\n\nQuestion: %s\nAnswer: %s\n\nConfidence (high/low):", text, question, answer)
}
