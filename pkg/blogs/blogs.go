package blogs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"

	"github.com/pratyaywrites/profile-backend/pkg/api"
)

const (
	DefaultEndpoint = "https://gql.hashnode.com"

	// How many posts to fetch when the caller doesn't say.
	DefaultPostCount = 10
	// Hashnode rejects page sizes above this.
	MaxPostCount = 50
)

// Reader fetches recent posts for the configured publication.
type Reader interface {
	Recent(ctx context.Context, first int) ([]api.BlogPost, error)
}

// Config defines how a Client should be constructed.
type Config struct {
	Endpoint    string
	Publication string
	Client      *http.Client
	Logger      log.Logger
}

// Client reads posts from the Hashnode GraphQL API.
type Client struct {
	endpoint    string
	publication string
	client      *http.Client
	logger      log.Logger
}

var _ Reader = &Client{}

func NewClient(config Config) *Client {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := config.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:    endpoint,
		publication: config.Publication,
		client:      httpClient,
		logger:      config.Logger,
	}
}

const postsQuery = `query Publication {
  publication(host: %q) {
    posts(first: %d) {
      edges {
        node {
          id
          coverImage {
            url
          }
          title
          brief
          url
        }
      }
    }
  }
}`

type postsResponse struct {
	Data struct {
		Publication struct {
			Posts struct {
				Edges []struct {
					Node struct {
						ID         string `json:"id"`
						Title      string `json:"title"`
						Brief      string `json:"brief"`
						URL        string `json:"url"`
						CoverImage *struct {
							URL string `json:"url"`
						} `json:"coverImage"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"posts"`
		} `json:"publication"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) Recent(ctx context.Context, first int) ([]api.BlogPost, error) {
	if first <= 0 {
		first = DefaultPostCount
	}
	if first > MaxPostCount {
		first = MaxPostCount
	}

	body, err := json.Marshal(map[string]string{
		"query": fmt.Sprintf(postsQuery, c.publication, first),
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding GraphQL request")
	}

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "constructing request %s", c.endpoint)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "querying Hashnode")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("querying Hashnode: %s", resp.Status)
	}

	var decoded postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decoding Hashnode response")
	}
	if len(decoded.Errors) > 0 {
		return nil, errors.Errorf("GraphQL error: %s", decoded.Errors[0].Message)
	}

	posts := make([]api.BlogPost, 0, len(decoded.Data.Publication.Posts.Edges))
	for _, edge := range decoded.Data.Publication.Posts.Edges {
		post := api.BlogPost{
			ID:    edge.Node.ID,
			Title: edge.Node.Title,
			Brief: edge.Node.Brief,
			URL:   edge.Node.URL,
		}
		if edge.Node.CoverImage != nil {
			post.CoverImage = edge.Node.CoverImage.URL
		}
		posts = append(posts, post)
	}
	return posts, nil
}
