// Package service provides business logic for the application.
package service

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Reference id prefixes per submission type.
const (
	quoteRefPrefix      = "QR"
	suggestionRefPrefix = "PS"
	contactRefPrefix    = "CS"
)

// maxReferenceRetries bounds regeneration attempts when a reference id
// collides with an existing row under concurrent same-millisecond
// submissions. The database uniqueness constraint surfaces the
// collision; we retry with a fresh timestamp before giving up.
const maxReferenceRetries = 3

// newReferenceID builds a human-readable reference identifier:
// a two-letter type prefix plus the current millisecond timestamp.
func newReferenceID(prefix string, now func() time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now().UnixMilli())
}

// newULID returns a fresh ULID string for primary keys.
func newULID() string {
	return ulid.Make().String()
}
