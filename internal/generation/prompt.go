package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// systemPromptTemplate is the format contract given to the model.
const systemPromptTemplate = `You are an assistant that writes study flashcards.
Generate exactly {{.Count}} flashcards about the topic the user describes.
Respond with a JSON array only, no prose and no markdown. Each element must be an object
with exactly two string fields: "question" and "answer".
Example: [{"question": "What is the capital of France?", "answer": "Paris"}]`

var systemPrompt = template.Must(template.New("flashcard_system").Parse(systemPromptTemplate))

type promptData struct {
	Count int
}

// BuildCompletionRequest builds the system/user message pair for count flashcards.
func BuildCompletionRequest(prompt string, count int) (CompletionRequest, error) {
	if count <= 0 {
		return CompletionRequest{}, fmt.Errorf("flashcard count must be positive, got %d", count)
	}

	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, promptData{Count: count}); err != nil {
		return CompletionRequest{}, fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return CompletionRequest{
		System: buf.String(),
		User:   prompt,
	}, nil
}
