// Package archive keeps generated strips so they can be looked up and
// reprinted later by ID.
//
// Backends:
//   - [FileStore]: JSON files under the user data directory (CLI)
//   - [MemoryStore]: in-process map (tests, ephemeral servers)
//   - [MongoStore]: MongoDB collection shared by server instances
//
// IDs are random UUIDs from [NewID].
package archive

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// Record is one archived strip together with the inputs that produced it.
type Record struct {
	ID        string          `json:"id"`
	Seed      uint64          `json:"seed"`
	Alphabet  string          `json:"alphabet"`
	CreatedAt time.Time       `json:"created_at"`
	Geometry  layout.Geometry `json:"geometry"`
	Strip     ticket.Strip    `json:"strip"`
}

// Store persists records.
type Store interface {
	// Save stores r; an empty r.ID is filled in with NewID.
	Save(ctx context.Context, r *Record) error
	// Get returns the record or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// NewID returns a fresh random record ID.
func NewID() string { return uuid.NewString() }

// prepare fills in the ID and timestamp of a record about to be saved.
func prepare(r *Record) {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}
