// Package gemini implements generation.ChatClient on top of Google's Gemini
// API via the google.golang.org/genai client library.
//
// The system half of a CompletionRequest becomes the model's system
// instruction and the user half becomes the single content turn. JSON output
// is requested through the response MIME type, which plays the role of the
// OpenAI json_object response format.
//
// Error handling mirrors the OpenAI client: exactly one attempt is made, a
// missing API key short-circuits before any client is built, and a non-success
// API status is surfaced as *generation.UpstreamError so the HTTP layer can
// relay the provider's status code. genai decodes error bodies itself, so the
// relayed body is the provider's error object re-encoded as JSON.
package gemini
