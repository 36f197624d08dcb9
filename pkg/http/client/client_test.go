package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	"github.com/pratyaywrites/profile-backend/pkg/auth"
	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
	transport "github.com/pratyaywrites/profile-backend/pkg/http"
	daemonhttp "github.com/pratyaywrites/profile-backend/pkg/http/daemon"
)

// fakeServer is the api.Server the test daemon serves; it echoes
// back what it was called with.
type fakeServer struct {
	lastRef   api.CollectionRef
	lastID    string
	lastQuery api.Query
	lastLimit int64
	lastDoc   api.Document
}

func (f *fakeServer) Ping(ctx context.Context) error {
	return nil
}

func (f *fakeServer) Version(ctx context.Context) (string, error) {
	return "1.2.3", nil
}

func (f *fakeServer) CreateDocument(ctx context.Context, ref api.CollectionRef, doc api.Document) (api.InsertResult, error) {
	f.lastRef, f.lastDoc = ref, doc
	return api.InsertResult{InsertedID: "66b2f0a19c3b4e001f2a5c77"}, nil
}

func (f *fakeServer) ListDocuments(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) ([]api.Document, error) {
	f.lastRef, f.lastQuery, f.lastLimit = ref, query, limit
	return []api.Document{{"_id": "66b2f0a19c3b4e001f2a5c77"}}, nil
}

func (f *fakeServer) GetDocument(ctx context.Context, ref api.CollectionRef, id string) (api.Document, error) {
	f.lastRef, f.lastID = ref, id
	return api.Document{"_id": id, "name": "x"}, nil
}

func (f *fakeServer) UpdateDocument(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (api.UpdateResult, error) {
	f.lastRef, f.lastID, f.lastDoc = ref, id, fields
	return api.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeServer) DeleteDocument(ctx context.Context, ref api.CollectionRef, id string) (api.DeleteResult, error) {
	f.lastRef, f.lastID = ref, id
	return api.DeleteResult{DeletedCount: 1}, nil
}

func (f *fakeServer) ListBlogs(ctx context.Context, first int) ([]api.BlogPost, error) {
	return []api.BlogPost{{ID: "p1", Title: "post", URL: "https://example.com/post"}}, nil
}

func newRoundTrip(t *testing.T, token Token) (*fakeServer, *Client, func()) {
	fake := &fakeServer{}
	router := daemonhttp.NewRouter()
	handler := daemonhttp.NewHandler(fake, auth.NewPolicy("pw"), router)
	srv := httptest.NewServer(handler)

	c := New(http.DefaultClient, transport.NewAPIRouter(), srv.URL, token)
	return fake, c, srv.Close
}

func TestClientRoundTrip(t *testing.T) {
	fake, c, done := newRoundTrip(t, Token("pw"))
	defer done()

	ctx := context.Background()
	ref := api.CollectionRef{Database: "profile", Collection: "projects"}

	assert.NoError(t, c.Ping(ctx))

	version, err := c.Version(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "1.2.3", version)

	created, err := c.CreateDocument(ctx, ref, api.Document{"name": "x"})
	assert.NoError(t, err)
	assert.Equal(t, "66b2f0a19c3b4e001f2a5c77", created.InsertedID)
	assert.Equal(t, ref, fake.lastRef)
	assert.Equal(t, api.Document{"name": "x"}, fake.lastDoc)

	docs, err := c.ListDocuments(ctx, ref, api.Query{"name": "x"}, 7)
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, api.Query{"name": "x"}, fake.lastQuery)
	assert.Equal(t, int64(7), fake.lastLimit)

	doc, err := c.GetDocument(ctx, ref, "66b2f0a19c3b4e001f2a5c77")
	assert.NoError(t, err)
	assert.Equal(t, "x", doc["name"])
	assert.Equal(t, "66b2f0a19c3b4e001f2a5c77", fake.lastID)

	updated, err := c.UpdateDocument(ctx, ref, "66b2f0a19c3b4e001f2a5c77", api.Document{"name": "y"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), updated.ModifiedCount)

	deleted, err := c.DeleteDocument(ctx, ref, "66b2f0a19c3b4e001f2a5c77")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted.DeletedCount)

	posts, err := c.ListBlogs(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "post", posts[0].Title)
}

func TestClientUnauthorized(t *testing.T) {
	_, c, done := newRoundTrip(t, Token("wrong"))
	defer done()

	ctx := context.Background()
	ref := api.CollectionRef{Database: "profile", Collection: "projects"}

	_, err := c.CreateDocument(ctx, ref, api.Document{"name": "x"})
	assert.Error(t, err)
	assert.True(t, backenderr.IsUnauthorized(err), "expected unauthorized, got %v", err)

	// Reads carry on regardless of the token.
	_, err = c.ListDocuments(ctx, ref, nil, 0)
	assert.NoError(t, err)
}
