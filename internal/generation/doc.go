// Package generation turns a user prompt into flashcards using an external
// LLM chat-completion API. It owns the prompt contract sent to the model and
// the parser that turns the model's text back into question/answer pairs,
// while provider-specific transport lives behind the ChatClient interface
// (see internal/platform/openai and internal/platform/gemini).
package generation
