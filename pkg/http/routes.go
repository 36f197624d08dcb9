package http

const (
	Ping      = "Ping"
	Version   = "Version"
	ListBlogs = "ListBlogs"

	// Document operations addressed by query and path parameters.
	CreateDocument = "CreateDocument"
	ListDocuments  = "ListDocuments"
	GetDocument    = "GetDocument"
	UpdateDocument = "UpdateDocument"
	DeleteDocument = "DeleteDocument"

	// The same operations, addressed entirely through headers. These
	// exist for callers that can't put values in the path or query
	// string; the Go client uses them exclusively.
	CreateDocumentHeaders = "CreateDocumentHeaders"
	ListDocumentsHeaders  = "ListDocumentsHeaders"
	GetDocumentHeaders    = "GetDocumentHeaders"
	UpdateDocumentHeaders = "UpdateDocumentHeaders"
	DeleteDocumentHeaders = "DeleteDocumentHeaders"
)

// Headers understood by the header-addressed document routes, plus the
// admin password header checked on all writes.
const (
	HeaderDatabase   = "X-Database"
	HeaderCollection = "X-Collection"
	HeaderID         = "X-Id"
	HeaderQuery      = "X-Query"
	HeaderLimit      = "X-Limit"
	HeaderPassword   = "X-Password"
)
