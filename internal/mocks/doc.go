// Package mocks provides test doubles for the generation and store
// interfaces used by the HTTP layer.
package mocks
