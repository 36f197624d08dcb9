package api

import (
	"context"
)

// Server is the interface that both the daemon implementation and the
// HTTP client satisfy; the HTTP server and client packages translate
// it to and from the wire.
type Server interface {
	Ping(ctx context.Context) error
	Version(ctx context.Context) (string, error)

	CreateDocument(ctx context.Context, ref CollectionRef, doc Document) (InsertResult, error)
	ListDocuments(ctx context.Context, ref CollectionRef, query Query, limit int64) ([]Document, error)
	GetDocument(ctx context.Context, ref CollectionRef, id string) (Document, error)
	UpdateDocument(ctx context.Context, ref CollectionRef, id string, fields Document) (UpdateResult, error)
	DeleteDocument(ctx context.Context, ref CollectionRef, id string) (DeleteResult, error)

	ListBlogs(ctx context.Context, first int) ([]BlogPost, error)
}

// CollectionRef names a collection within a database. The API is
// deliberately generic: callers address any database/collection pair.
type CollectionRef struct {
	Database   string
	Collection string
}

func (r CollectionRef) String() string {
	return r.Database + "/" + r.Collection
}

// Document is an arbitrary JSON object, as stored. The `_id` field, if
// present, is the document's ObjectID rendered as hex.
type Document = map[string]interface{}

// Query is a filter expression in the store's native query syntax,
// arriving as a JSON object (e.g. {"name": "Alice"}).
type Query = map[string]interface{}

type InsertResult struct {
	InsertedID string `json:"inserted_id"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// BlogPost is one post from the configured Hashnode publication.
type BlogPost struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Brief      string `json:"brief"`
	URL        string `json:"url"`
	CoverImage string `json:"coverImage,omitempty"`
}
