package store

import (
	"context"
	"errors"

	"github.com/pratyaywrites/profile-backend/pkg/api"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when a document ID is not a valid
	// ObjectID hex string.
	ErrInvalidID = errors.New("invalid document ID")
)

// Store is a document store addressed by database and collection. The
// Mongo implementation lives in the mongo subpackage; the interface is
// here so the daemon, and decorators like InstrumentStore, don't care
// which backend they're talking to.
type Store interface {
	Ping(ctx context.Context) error

	Insert(ctx context.Context, ref api.CollectionRef, doc api.Document) (string, error)
	Query(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) ([]api.Document, error)
	Get(ctx context.Context, ref api.CollectionRef, id string) (api.Document, error)
	Update(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (matched, modified int64, err error)
	Delete(ctx context.Context, ref api.CollectionRef, id string) (deleted int64, err error)
}
