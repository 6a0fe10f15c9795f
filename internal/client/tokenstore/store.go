// Package tokenstore persists the bearer credential across restarts.
//
// Two backends exist: SQLiteStore keeps the token sealed with AES-GCM in the
// local database (the durable, encrypted store) and MemoryStore keeps it for
// the lifetime of the process only. New picks one by name.
//
// Neither backend tracks expiry or refreshes the token: it is valid until
// the backend answers 401.
package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vibejournal/internal/common"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrNoToken is the absent marker returned by Load.
var ErrNoToken = common.ErrNoToken

type Store interface {
	Save(ctx context.Context, token string) error
	// Load returns ErrNoToken when nothing is stored.
	Load(ctx context.Context) (string, error)
	// Delete is idempotent.
	Delete(ctx context.Context) error
}

// New returns the store for backend. db and secretPath are only used by the
// sqlite backend.
func New(backend string, db *sql.DB, secretPath string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStore(db, secretPath), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", backend)
	}
}
