package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
)

func NewAPIRouter() *mux.Router {
	r := mux.NewRouter()

	r.NewRoute().Name(Ping).Methods("GET").Path("/health")
	r.NewRoute().Name(Version).Methods("GET").Path("/version")
	r.NewRoute().Name(ListBlogs).Methods("GET").Path("/blogs")

	// The POST path is /message rather than /data; the service has
	// always exposed it that way and existing callers depend on it.
	r.NewRoute().Name(CreateDocument).Methods("POST").Path("/message")
	r.NewRoute().Name(ListDocuments).Methods("GET").Path("/data")
	r.NewRoute().Name(GetDocument).Methods("GET").Path("/data/{database}/{collection}/{id}")
	r.NewRoute().Name(UpdateDocument).Methods("PUT").Path("/data/{database}/{collection}/{id}")
	r.NewRoute().Name(DeleteDocument).Methods("DELETE").Path("/data/{database}/{collection}/{id}")

	r.NewRoute().Name(CreateDocumentHeaders).Methods("POST").Path("/data/headers")
	r.NewRoute().Name(ListDocumentsHeaders).Methods("GET").Path("/data/headers")
	r.NewRoute().Name(GetDocumentHeaders).Methods("GET").Path("/data/headers/document")
	r.NewRoute().Name(UpdateDocumentHeaders).Methods("PUT").Path("/data/headers/document")
	r.NewRoute().Name(DeleteDocumentHeaders).Methods("DELETE").Path("/data/headers/document")

	return r
}

func MakeURL(endpoint string, router *mux.Router, routeName string, urlParams ...string) (*url.URL, error) {
	if len(urlParams)%2 != 0 {
		panic("urlParams must be even!")
	}

	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing endpoint %s", endpoint)
	}
	route := router.Get(routeName)
	if route == nil {
		return nil, errors.New("no route with name " + routeName)
	}
	routeURL, err := route.URLPath()
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving route path %s", routeName)
	}

	v := url.Values{}
	for i := 0; i < len(urlParams); i += 2 {
		v.Add(urlParams[i], urlParams[i+1])
	}

	endpointURL.Path = path.Join(endpointURL.Path, routeURL.Path)
	endpointURL.RawQuery = v.Encode()
	return endpointURL, nil
}

func WriteError(w http.ResponseWriter, r *http.Request, code int, err error) {
	// An Accept header with "application/json" is sent by clients
	// understanding how to decode JSON errors. Older clients don't
	// send an Accept header, so we just give them the error text.
	if len(r.Header.Get("Accept")) > 0 {
		switch negotiateContentType(r, []string{"application/json", "text/plain"}) {
		case "application/json":
			body, encodeErr := json.Marshal(err)
			if encodeErr != nil {
				w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, "Error encoding error response: %s\n\nOriginal error: %s", encodeErr.Error(), err.Error())
				return
			}
			w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "application/json; charset=utf-8")
			w.WriteHeader(code)
			w.Write(body)
			return
		case "text/plain":
			w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
			w.WriteHeader(code)
			switch err := err.(type) {
			case *backenderr.Error:
				fmt.Fprint(w, err.Help)
			default:
				fmt.Fprint(w, err.Error())
			}
			return
		}
	}
	w.Header().Set(http.CanonicalHeaderKey("Content-Type"), "text/plain; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprint(w, err.Error())
}

func JSONResponse(w http.ResponseWriter, r *http.Request, result interface{}) {
	JSONResponseWithStatus(w, r, http.StatusOK, result)
}

func JSONResponseWithStatus(w http.ResponseWriter, r *http.Request, code int, result interface{}) {
	body, err := json.Marshal(result)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(body)
}

func ErrorResponse(w http.ResponseWriter, r *http.Request, apiError error) {
	var outErr *backenderr.Error
	var code int
	var ok bool

	err := errors.Cause(apiError)
	if outErr, ok = err.(*backenderr.Error); !ok {
		outErr = backenderr.CoverAllError(apiError)
	}
	switch outErr.Type {
	case backenderr.Missing:
		code = http.StatusNotFound
	case backenderr.User:
		code = http.StatusBadRequest
	case backenderr.Unauthorized:
		code = http.StatusForbidden
	case backenderr.Server:
		code = http.StatusInternalServerError
	default:
		code = http.StatusInternalServerError
	}
	WriteError(w, r, code, outErr)
}
