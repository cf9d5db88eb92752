// Package db defines the read-only record store facade.
package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Records are owned by the host application; nothing here writes.
type Store interface {
	Pinger
	KeyScanner
	KVReader
	JSONReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KeyScanner lists keys matching a glob pattern across the whole keyspace.
type KeyScanner interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVReader reads plain string values.
type KVReader interface {
	// GetMulti returns one entry per key, nil for keys that do not exist.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
}

// JSONReader reads JSON documents.
type JSONReader interface {
	// JSONGetMulti returns one root document per key, nil for keys that do not exist.
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
}
