package backend

import (
	"context"

	"expensetracker/internal/ledger"
	"expensetracker/internal/storage"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result holds the store the ledger persists to, plus the optional event
// publisher. Notifier is nil when AMQP is disabled or unreachable.
type Result struct {
	Store    storage.BlobStore
	Notifier ledger.Notifier
	Cleanup  CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// file
	DataDirectory string

	// bolt
	BoltDBPath string

	// sqlite
	SQLiteDBPath string

	// optional event publishing
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	BoltBackend   BackendType = "bolt"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, BoltBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
