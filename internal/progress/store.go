// Package progress stores per-user learning progress, keyed by user id and
// progress type. Store is an interface so handlers take either the durable
// SQL implementation or the in-memory one.
package progress

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("progress: not found")

// Entry is one saved blob with its save timestamp (RFC 3339 UTC).
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type Store interface {
	Save(ctx context.Context, userID, progressType string, data json.RawMessage) error
	Load(ctx context.Context, userID, progressType string) (Entry, error)
}
