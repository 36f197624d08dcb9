package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	"github.com/pratyaywrites/profile-backend/pkg/auth"
	transport "github.com/pratyaywrites/profile-backend/pkg/http"
)

func TestRouterImplementsServer(t *testing.T) {
	router := NewRouter()
	// Calling NewHandler attaches handlers to the router
	NewHandler(nil, auth.NewPolicy(""), router)
	err := transport.ImplementsServer(router)
	if err != nil {
		t.Error(err)
	}
}

// mockServer records the arguments of the last call and returns
// canned results.
type mockServer struct {
	lastRef   api.CollectionRef
	lastID    string
	lastQuery api.Query
	lastLimit int64
	lastDoc   api.Document
	lastFirst int

	pingErr error
	err     error
}

func (m *mockServer) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *mockServer) Version(ctx context.Context) (string, error) {
	return "test", nil
}

func (m *mockServer) CreateDocument(ctx context.Context, ref api.CollectionRef, doc api.Document) (api.InsertResult, error) {
	m.lastRef, m.lastDoc = ref, doc
	return api.InsertResult{InsertedID: "66b2f0a19c3b4e001f2a5c77"}, m.err
}

func (m *mockServer) ListDocuments(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) ([]api.Document, error) {
	m.lastRef, m.lastQuery, m.lastLimit = ref, query, limit
	return []api.Document{}, m.err
}

func (m *mockServer) GetDocument(ctx context.Context, ref api.CollectionRef, id string) (api.Document, error) {
	m.lastRef, m.lastID = ref, id
	return api.Document{"_id": id}, m.err
}

func (m *mockServer) UpdateDocument(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (api.UpdateResult, error) {
	m.lastRef, m.lastID, m.lastDoc = ref, id, fields
	return api.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, m.err
}

func (m *mockServer) DeleteDocument(ctx context.Context, ref api.CollectionRef, id string) (api.DeleteResult, error) {
	m.lastRef, m.lastID = ref, id
	return api.DeleteResult{DeletedCount: 1}, m.err
}

func (m *mockServer) ListBlogs(ctx context.Context, first int) ([]api.BlogPost, error) {
	m.lastFirst = first
	return []api.BlogPost{{Title: "hello"}}, m.err
}

func newTestServer(password string) (*mockServer, *httptest.Server) {
	mock := &mockServer{}
	router := NewRouter()
	handler := NewHandler(mock, auth.NewPolicy(password), router)
	return mock, httptest.NewServer(handler)
}

func do(t *testing.T, method, url string, body []byte, headers map[string]string) *http.Response {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	assert.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return resp
}

func TestPing(t *testing.T) {
	_, srv := newTestServer("")
	defer srv.Close()

	resp := do(t, "GET", srv.URL+"/health", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
}

func TestCreateRequiresPassword(t *testing.T) {
	mock, srv := newTestServer("letmein")
	defer srv.Close()

	body := []byte(`{"name": "x"}`)
	url := srv.URL + "/message?database=profile&collection=projects"

	resp := do(t, "POST", url, body, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, "POST", url, body, map[string]string{transport.HeaderPassword: "wrong"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, "POST", url, body, map[string]string{transport.HeaderPassword: "letmein"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, api.CollectionRef{Database: "profile", Collection: "projects"}, mock.lastRef)
	assert.Equal(t, api.Document{"name": "x"}, mock.lastDoc)

	var result api.InsertResult
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.InsertedID)
}

func TestListParsesQueryAndLimit(t *testing.T) {
	mock, srv := newTestServer("")
	defer srv.Close()

	resp := do(t, "GET", srv.URL+`/data?database=d&collection=c&q={"name":"x"}&limit=7`, nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, api.Query{"name": "x"}, mock.lastQuery)
	assert.Equal(t, int64(7), mock.lastLimit)

	resp = do(t, "GET", srv.URL+`/data?database=d&collection=c&q=notjson`, nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, "GET", srv.URL+`/data?database=d&collection=c&limit=-2`, nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPathAddressedDocument(t *testing.T) {
	mock, srv := newTestServer("")
	defer srv.Close()

	resp := do(t, "GET", srv.URL+"/data/profile/projects/66b2f0a19c3b4e001f2a5c77", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, api.CollectionRef{Database: "profile", Collection: "projects"}, mock.lastRef)
	assert.Equal(t, "66b2f0a19c3b4e001f2a5c77", mock.lastID)
}

func TestHeaderAddressedDocument(t *testing.T) {
	mock, srv := newTestServer("letmein")
	defer srv.Close()

	headers := map[string]string{
		transport.HeaderDatabase:   "profile",
		transport.HeaderCollection: "projects",
		transport.HeaderID:         "66b2f0a19c3b4e001f2a5c77",
	}
	resp := do(t, "GET", srv.URL+"/data/headers/document", nil, headers)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, api.CollectionRef{Database: "profile", Collection: "projects"}, mock.lastRef)
	assert.Equal(t, "66b2f0a19c3b4e001f2a5c77", mock.lastID)

	// Deletes through the header route still need the password.
	resp = do(t, "DELETE", srv.URL+"/data/headers/document", nil, headers)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	headers[transport.HeaderPassword] = "letmein"
	resp = do(t, "DELETE", srv.URL+"/data/headers/document", nil, headers)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListBlogs(t *testing.T) {
	mock, srv := newTestServer("")
	defer srv.Close()

	resp := do(t, "GET", srv.URL+"/blogs?num=5", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, mock.lastFirst)

	resp = do(t, "GET", srv.URL+"/blogs?num=five", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	_, srv := newTestServer("")
	defer srv.Close()

	resp := do(t, "GET", srv.URL+"/no/such/endpoint/here", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
