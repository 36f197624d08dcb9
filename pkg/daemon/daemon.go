package daemon

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	"github.com/pratyaywrites/profile-backend/pkg/blogs"
	"github.com/pratyaywrites/profile-backend/pkg/store"
)

// Daemon is the profile backend in the form of an api.Server. It
// translates between the API's terms and the document store and blog
// reader it is wired with.
type Daemon struct {
	V      string
	Store  store.Store
	Blogs  blogs.Reader
	Logger log.Logger
}

var _ api.Server = &Daemon{}

func (d *Daemon) Ping(ctx context.Context) error {
	return d.Store.Ping(ctx)
}

func (d *Daemon) Version(ctx context.Context) (string, error) {
	return d.V, nil
}

func (d *Daemon) CreateDocument(ctx context.Context, ref api.CollectionRef, doc api.Document) (api.InsertResult, error) {
	if err := validateRef(ref); err != nil {
		return api.InsertResult{}, err
	}
	if len(doc) == 0 {
		return api.InsertResult{}, emptyDocumentError()
	}
	id, err := d.Store.Insert(ctx, ref, doc)
	if err != nil {
		return api.InsertResult{}, translateStoreError(ref, "", err)
	}
	return api.InsertResult{InsertedID: id}, nil
}

func (d *Daemon) ListDocuments(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) ([]api.Document, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}
	docs, err := d.Store.Query(ctx, ref, query, limit)
	if err != nil {
		return nil, translateStoreError(ref, "", err)
	}
	if docs == nil {
		docs = []api.Document{}
	}
	return docs, nil
}

func (d *Daemon) GetDocument(ctx context.Context, ref api.CollectionRef, id string) (api.Document, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}
	doc, err := d.Store.Get(ctx, ref, id)
	if err != nil {
		return nil, translateStoreError(ref, id, err)
	}
	return doc, nil
}

func (d *Daemon) UpdateDocument(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (api.UpdateResult, error) {
	if err := validateRef(ref); err != nil {
		return api.UpdateResult{}, err
	}
	if len(fields) == 0 {
		return api.UpdateResult{}, emptyDocumentError()
	}
	matched, modified, err := d.Store.Update(ctx, ref, id, fields)
	if err != nil {
		return api.UpdateResult{}, translateStoreError(ref, id, err)
	}
	return api.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

func (d *Daemon) DeleteDocument(ctx context.Context, ref api.CollectionRef, id string) (api.DeleteResult, error) {
	if err := validateRef(ref); err != nil {
		return api.DeleteResult{}, err
	}
	deleted, err := d.Store.Delete(ctx, ref, id)
	if err != nil {
		return api.DeleteResult{}, translateStoreError(ref, id, err)
	}
	return api.DeleteResult{DeletedCount: deleted}, nil
}

func (d *Daemon) ListBlogs(ctx context.Context, first int) ([]api.BlogPost, error) {
	posts, err := d.Blogs.Recent(ctx, first)
	if err != nil {
		d.Logger.Log("op", "blogs", "err", err)
		return nil, blogFetchError(err)
	}
	return posts, nil
}

// translateStoreError turns the store's sentinels into user-facing
// API errors; anything else is a server-side fault.
func translateStoreError(ref api.CollectionRef, id string, err error) error {
	switch errors.Cause(err) {
	case store.ErrInvalidID:
		return invalidIDError(id)
	case store.ErrNotFound:
		return notFoundError(ref, id)
	}
	return serverError(err)
}
