package storage

import "time"

// Entry is a single row of the key/value store.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
