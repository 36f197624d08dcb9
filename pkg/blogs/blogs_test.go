package blogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
)

const publicationResponse = `{
  "data": {
    "publication": {
      "posts": {
        "edges": [
          {
            "node": {
              "id": "p1",
              "coverImage": {"url": "https://cdn.example.com/cover.png"},
              "title": "First post",
              "brief": "A brief",
              "url": "https://blog.example.com/first-post"
            }
          },
          {
            "node": {
              "id": "p2",
              "coverImage": null,
              "title": "Second post",
              "brief": "Another brief",
              "url": "https://blog.example.com/second-post"
            }
          }
        ]
      }
    }
  }
}`

func newFakeHashnode(t *testing.T, respond func(query string, w http.ResponseWriter)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		respond(body.Query, w)
	}))
}

func TestRecent(t *testing.T) {
	var sentQuery string
	srv := newFakeHashnode(t, func(query string, w http.ResponseWriter) {
		sentQuery = query
		fmt.Fprint(w, publicationResponse)
	})
	defer srv.Close()

	c := NewClient(Config{
		Endpoint:    srv.URL,
		Publication: "pratyaywrites.hashnode.dev",
		Logger:      log.NewNopLogger(),
	})

	posts, err := c.Recent(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)

	assert.Equal(t, "First post", posts[0].Title)
	assert.Equal(t, "https://cdn.example.com/cover.png", posts[0].CoverImage)
	assert.Equal(t, "Second post", posts[1].Title)
	assert.Empty(t, posts[1].CoverImage)

	assert.Contains(t, sentQuery, `"pratyaywrites.hashnode.dev"`)
	assert.Contains(t, sentQuery, "first: 2")
}

func TestRecentClampsPageSize(t *testing.T) {
	var sentQuery string
	srv := newFakeHashnode(t, func(query string, w http.ResponseWriter) {
		sentQuery = query
		fmt.Fprint(w, publicationResponse)
	})
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Publication: "x.hashnode.dev", Logger: log.NewNopLogger()})

	_, err := c.Recent(context.Background(), 0)
	assert.NoError(t, err)
	assert.Contains(t, sentQuery, fmt.Sprintf("first: %d", DefaultPostCount))

	_, err = c.Recent(context.Background(), 500)
	assert.NoError(t, err)
	assert.Contains(t, sentQuery, fmt.Sprintf("first: %d", MaxPostCount))
}

func TestRecentSurfacesGraphQLErrors(t *testing.T) {
	srv := newFakeHashnode(t, func(query string, w http.ResponseWriter) {
		fmt.Fprint(w, `{"errors": [{"message": "Publication not found"}]}`)
	})
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Publication: "gone.hashnode.dev", Logger: log.NewNopLogger()})

	_, err := c.Recent(context.Background(), 10)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Publication not found"), "got: %v", err)
}

func TestRecentSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Publication: "x.hashnode.dev", Logger: log.NewNopLogger()})

	_, err := c.Recent(context.Background(), 10)
	assert.Error(t, err)
}
