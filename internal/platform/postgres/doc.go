// Package postgres implements the internal/store interfaces on PostgreSQL
// through the pgx stdlib driver, and owns the embedded goose migrations that
// create the flashcard_set and flashcard tables.
package postgres
