package daemon

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/weaveworks/common/middleware"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	"github.com/pratyaywrites/profile-backend/pkg/auth"
	transport "github.com/pratyaywrites/profile-backend/pkg/http"
	backendmetrics "github.com/pratyaywrites/profile-backend/pkg/metrics"
)

var (
	requestDuration = stdprometheus.NewHistogramVec(stdprometheus.HistogramOpts{
		Namespace: "profile",
		Name:      "request_duration_seconds",
		Help:      "Time (in seconds) spent serving HTTP requests.",
		Buckets:   stdprometheus.DefBuckets,
	}, []string{backendmetrics.LabelMethod, backendmetrics.LabelRoute, "status_code", "ws"})
)

func init() {
	stdprometheus.MustRegister(requestDuration)
}

// An API server for the daemon
func NewRouter() *mux.Router {
	r := transport.NewAPIRouter()

	// We assume every request that doesn't match a route is a client
	// calling an old or hitherto unsupported API.
	r.NewRoute().Name("NotFound").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, r, http.StatusNotFound, transport.MakeAPINotFound(r.URL.Path))
	})

	return r
}

func NewHandler(s api.Server, policy auth.Policy, r *mux.Router) http.Handler {
	handle := HTTPServer{s, policy}

	r.Get(transport.Ping).HandlerFunc(handle.Ping)
	r.Get(transport.Version).HandlerFunc(handle.Version)
	r.Get(transport.ListBlogs).HandlerFunc(handle.ListBlogs)

	r.Get(transport.CreateDocument).HandlerFunc(handle.CreateDocument)
	r.Get(transport.ListDocuments).HandlerFunc(handle.ListDocuments)
	r.Get(transport.GetDocument).HandlerFunc(handle.GetDocument)
	r.Get(transport.UpdateDocument).HandlerFunc(handle.UpdateDocument)
	r.Get(transport.DeleteDocument).HandlerFunc(handle.DeleteDocument)

	r.Get(transport.CreateDocumentHeaders).HandlerFunc(handle.CreateDocumentHeaders)
	r.Get(transport.ListDocumentsHeaders).HandlerFunc(handle.ListDocumentsHeaders)
	r.Get(transport.GetDocumentHeaders).HandlerFunc(handle.GetDocumentHeaders)
	r.Get(transport.UpdateDocumentHeaders).HandlerFunc(handle.UpdateDocumentHeaders)
	r.Get(transport.DeleteDocumentHeaders).HandlerFunc(handle.DeleteDocumentHeaders)

	return middleware.Instrument{
		RouteMatcher: r,
		Duration:     requestDuration,
	}.Wrap(r)
}

type HTTPServer struct {
	server api.Server
	auth   auth.Policy
}

func (s HTTPServer) Ping(w http.ResponseWriter, r *http.Request) {
	if err := s.server.Ping(r.Context()); err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, map[string]string{"status": "ok"})
}

func (s HTTPServer) Version(w http.ResponseWriter, r *http.Request) {
	version, err := s.server.Version(r.Context())
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, version)
}

func (s HTTPServer) ListBlogs(w http.ResponseWriter, r *http.Request) {
	var first int
	if num := r.URL.Query().Get("num"); num != "" {
		n, err := strconv.Atoi(num)
		if err != nil {
			transport.WriteError(w, r, http.StatusBadRequest, errors.Wrapf(err, "parsing num %q", num))
			return
		}
		first = n
	}

	posts, err := s.server.ListBlogs(r.Context(), first)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, posts)
}

// --- handlers for query- and path-addressed document operations

func (s HTTPServer) CreateDocument(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(w, r) {
		return
	}
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	result, err := s.server.CreateDocument(r.Context(), refFromQuery(r), doc)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponseWithStatus(w, r, http.StatusCreated, result)
}

func (s HTTPServer) ListDocuments(w http.ResponseWriter, r *http.Request) {
	query, limit, ok := decodeListOptions(w, r, r.URL.Query().Get("q"), r.URL.Query().Get("limit"))
	if !ok {
		return
	}
	docs, err := s.server.ListDocuments(r.Context(), refFromQuery(r), query, limit)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, docs)
}

func (s HTTPServer) GetDocument(w http.ResponseWriter, r *http.Request) {
	ref, id := refFromVars(r)
	doc, err := s.server.GetDocument(r.Context(), ref, id)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, doc)
}

func (s HTTPServer) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(w, r) {
		return
	}
	fields, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	ref, id := refFromVars(r)
	result, err := s.server.UpdateDocument(r.Context(), ref, id, fields)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, result)
}

func (s HTTPServer) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(w, r) {
		return
	}
	ref, id := refFromVars(r)
	result, err := s.server.DeleteDocument(r.Context(), ref, id)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, result)
}

// --- handlers for the header-addressed document operations

func (s HTTPServer) CreateDocumentHeaders(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(w, r) {
		return
	}
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	result, err := s.server.CreateDocument(r.Context(), refFromHeaders(r), doc)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponseWithStatus(w, r, http.StatusCreated, result)
}

func (s HTTPServer) ListDocumentsHeaders(w http.ResponseWriter, r *http.Request) {
	query, limit, ok := decodeListOptions(w, r, r.Header.Get(transport.HeaderQuery), r.Header.Get(transport.HeaderLimit))
	if !ok {
		return
	}
	docs, err := s.server.ListDocuments(r.Context(), refFromHeaders(r), query, limit)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, docs)
}

func (s HTTPServer) GetDocumentHeaders(w http.ResponseWriter, r *http.Request) {
	doc, err := s.server.GetDocument(r.Context(), refFromHeaders(r), r.Header.Get(transport.HeaderID))
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, doc)
}

func (s HTTPServer) UpdateDocumentHeaders(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(w, r) {
		return
	}
	fields, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	result, err := s.server.UpdateDocument(r.Context(), refFromHeaders(r), r.Header.Get(transport.HeaderID), fields)
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, result)
}

func (s HTTPServer) DeleteDocumentHeaders(w http.ResponseWriter, r *http.Request) {
	if !s.authenticate(w, r) {
		return
	}
	result, err := s.server.DeleteDocument(r.Context(), refFromHeaders(r), r.Header.Get(transport.HeaderID))
	if err != nil {
		transport.ErrorResponse(w, r, err)
		return
	}
	transport.JSONResponse(w, r, result)
}

// --- request decoding helpers

func (s HTTPServer) authenticate(w http.ResponseWriter, r *http.Request) bool {
	if err := s.auth.Authenticate(r.Header.Get(transport.HeaderPassword)); err != nil {
		transport.ErrorResponse(w, r, err)
		return false
	}
	return true
}

func refFromQuery(r *http.Request) api.CollectionRef {
	return api.CollectionRef{
		Database:   r.URL.Query().Get("database"),
		Collection: r.URL.Query().Get("collection"),
	}
}

func refFromVars(r *http.Request) (api.CollectionRef, string) {
	vars := mux.Vars(r)
	return api.CollectionRef{
		Database:   vars["database"],
		Collection: vars["collection"],
	}, vars["id"]
}

func refFromHeaders(r *http.Request) api.CollectionRef {
	return api.CollectionRef{
		Database:   r.Header.Get(transport.HeaderDatabase),
		Collection: r.Header.Get(transport.HeaderCollection),
	}
}

func decodeDocument(w http.ResponseWriter, r *http.Request) (api.Document, bool) {
	var doc api.Document
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		transport.WriteError(w, r, http.StatusBadRequest, errors.Wrap(err, "decoding request body"))
		return nil, false
	}
	return doc, true
}

func decodeListOptions(w http.ResponseWriter, r *http.Request, queryExpr, limitExpr string) (api.Query, int64, bool) {
	query := api.Query{}
	if queryExpr != "" {
		if err := json.Unmarshal([]byte(queryExpr), &query); err != nil {
			transport.WriteError(w, r, http.StatusBadRequest, errors.Wrapf(err, "parsing query %q", queryExpr))
			return nil, 0, false
		}
	}
	var limit int64
	if limitExpr != "" {
		n, err := strconv.ParseInt(limitExpr, 10, 64)
		if err != nil || n < 0 {
			transport.WriteError(w, r, http.StatusBadRequest, errors.Errorf("parsing limit %q", limitExpr))
			return nil, 0, false
		}
		limit = n
	}
	return query, limit, true
}
