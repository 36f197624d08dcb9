package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	"github.com/pratyaywrites/profile-backend/pkg/auth"
	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
	transport "github.com/pratyaywrites/profile-backend/pkg/http"
)

// Token is the admin password, sent in the X-Password header. The
// zero value sends nothing, which suffices for read operations.
type Token string

func (t Token) Set(req *http.Request) {
	if string(t) != "" {
		req.Header.Set(transport.HeaderPassword, string(t))
	}
}

// Client talks to the daemon over HTTP. It uses the header-addressed
// document routes, so database, collection and id never need path or
// query encoding.
type Client struct {
	client   *http.Client
	token    Token
	router   *mux.Router
	endpoint string
}

var _ api.Server = &Client{}

func New(c *http.Client, router *mux.Router, endpoint string, t Token) *Client {
	return &Client{
		client:   c,
		token:    t,
		router:   router,
		endpoint: endpoint,
	}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, nil, transport.Ping, nil)
}

func (c *Client) Version(ctx context.Context) (string, error) {
	var v string
	err := c.get(ctx, &v, transport.Version, nil)
	return v, err
}

func (c *Client) CreateDocument(ctx context.Context, ref api.CollectionRef, doc api.Document) (api.InsertResult, error) {
	var res api.InsertResult
	err := c.request(ctx, "POST", &res, transport.CreateDocumentHeaders, doc, refHeaders(ref))
	return res, err
}

func (c *Client) ListDocuments(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) ([]api.Document, error) {
	headers := refHeaders(ref)
	if len(query) > 0 {
		expr, err := json.Marshal(query)
		if err != nil {
			return nil, errors.Wrap(err, "encoding query")
		}
		headers[transport.HeaderQuery] = string(expr)
	}
	if limit > 0 {
		headers[transport.HeaderLimit] = strconv.FormatInt(limit, 10)
	}

	var res []api.Document
	err := c.get(ctx, &res, transport.ListDocumentsHeaders, headers)
	return res, err
}

func (c *Client) GetDocument(ctx context.Context, ref api.CollectionRef, id string) (api.Document, error) {
	headers := refHeaders(ref)
	headers[transport.HeaderID] = id

	var res api.Document
	err := c.get(ctx, &res, transport.GetDocumentHeaders, headers)
	return res, err
}

func (c *Client) UpdateDocument(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (api.UpdateResult, error) {
	headers := refHeaders(ref)
	headers[transport.HeaderID] = id

	var res api.UpdateResult
	err := c.request(ctx, "PUT", &res, transport.UpdateDocumentHeaders, fields, headers)
	return res, err
}

func (c *Client) DeleteDocument(ctx context.Context, ref api.CollectionRef, id string) (api.DeleteResult, error) {
	headers := refHeaders(ref)
	headers[transport.HeaderID] = id

	var res api.DeleteResult
	err := c.request(ctx, "DELETE", &res, transport.DeleteDocumentHeaders, nil, headers)
	return res, err
}

func (c *Client) ListBlogs(ctx context.Context, first int) ([]api.BlogPost, error) {
	var res []api.BlogPost
	err := c.get(ctx, &res, transport.ListBlogs, nil, "num", strconv.Itoa(first))
	return res, err
}

func refHeaders(ref api.CollectionRef) map[string]string {
	return map[string]string{
		transport.HeaderDatabase:   ref.Database,
		transport.HeaderCollection: ref.Collection,
	}
}

// --- Request helpers

// request handles body, header and query-param encoding, as well as
// decoding the response into the provided destination. Note, the
// response will only be decoded into the dest if the len is > 0.
func (c *Client) request(ctx context.Context, method string, dest interface{}, route string, body interface{}, headers map[string]string, queryParams ...string) error {
	u, err := transport.MakeURL(c.endpoint, c.router, route, queryParams...)
	if err != nil {
		return errors.Wrap(err, "constructing URL")
	}

	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}

	req, err := http.NewRequest(method, u.String(), bytes.NewReader(bodyBytes))
	if err != nil {
		return errors.Wrapf(err, "constructing request %s", u)
	}
	req = req.WithContext(ctx)

	c.token.Set(req)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.executeRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "decoding response from server")
	}
	if len(respBytes) <= 0 || dest == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, &dest); err != nil {
		return errors.Wrap(err, "decoding response from server")
	}
	return nil
}

// get executes a get request against the daemon. It unmarshals the
// response into dest, if not nil.
func (c *Client) get(ctx context.Context, dest interface{}, route string, headers map[string]string, queryParams ...string) error {
	return c.request(ctx, "GET", dest, route, nil, headers, queryParams...)
}

func (c *Client) executeRequest(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "executing HTTP request")
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusAccepted:
		return resp, nil
	default:
		defer resp.Body.Close()
		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return resp, errors.Wrap(err, "reading response body of error")
		}
		// Use the content type to discriminate between a taxonomy
		// error and "any old error".
		if strings.HasPrefix(resp.Header.Get(http.CanonicalHeaderKey("Content-Type")), "application/json") {
			var niceError backenderr.Error
			if err := json.Unmarshal(body, &niceError); err != nil {
				return resp, errors.Wrap(err, "decoding response body of error")
			}
			// just in case it's JSON but not one of our own errors
			if niceError.Err != nil {
				return resp, &niceError
			}
		}
		if resp.StatusCode == http.StatusForbidden {
			return resp, auth.ErrorUnauthorized
		}
		return resp, errors.New(resp.Status + " " + string(body))
	}
}
