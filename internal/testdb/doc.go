// Package testdb provides helpers for tests that need a real Postgres database.
//
// Tests using it are skipped unless SCRY_TEST_DATABASE_URL points at a
// disposable database. Run statements through WithTx so nothing a test
// writes survives it.
package testdb
