// Package api holds the HTTP handlers of the flashcard generation service.
// It translates requests into generation and store calls and maps their
// errors onto the JSON error contract `{error, details?, trace_id?}`.
package api
