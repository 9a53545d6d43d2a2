// Package store defines the persistence boundary for flashcard sets and
// flashcards. The interfaces here are implemented by internal/platform/postgres
// and faked in handler tests.
package store
