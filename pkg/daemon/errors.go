package daemon

import (
	"fmt"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
)

func validateRef(ref api.CollectionRef) error {
	if ref.Database == "" || ref.Collection == "" {
		return &backenderr.Error{
			Type: backenderr.User,
			Err:  fmt.Errorf("incomplete collection reference %q", ref.String()),
			Help: `Database and collection are both required

Every document operation is addressed to a database and a collection
within it. Supply both, either as query parameters (database=...,
collection=...) or as headers (X-Database, X-Collection), depending on
the endpoint you are using.
`,
		}
	}
	return nil
}

func emptyDocumentError() error {
	return &backenderr.Error{
		Type: backenderr.User,
		Err:  fmt.Errorf("empty document"),
		Help: `The request body must be a non-empty JSON object

Inserts and updates take the document's fields as a JSON object in the
request body. An empty object would insert nothing (or change
nothing), which is more likely a mistake than an intention, so it is
rejected.
`,
	}
}

func invalidIDError(id string) error {
	return &backenderr.Error{
		Type: backenderr.User,
		Err:  fmt.Errorf("invalid document ID %q", id),
		Help: `Invalid document ID

Document IDs are ObjectIDs rendered as 24 hexadecimal characters, as
returned in the "_id" field and by inserts. The ID supplied doesn't
parse as one. Check for truncation or stray quoting.
`,
	}
}

func notFoundError(ref api.CollectionRef, id string) error {
	return &backenderr.Error{
		Type: backenderr.Missing,
		Err:  fmt.Errorf("document %s not found in %s", id, ref.String()),
		Help: `Document not found

There is no document with the given ID in the collection addressed.
It may have been deleted, or the ID may belong to a different
collection.
`,
	}
}

func blogFetchError(reason error) error {
	return &backenderr.Error{
		Type: backenderr.Server,
		Err:  reason,
		Help: `Unable to fetch blog posts

The blog listing is fetched from Hashnode, which did not give a usable
answer:

    ` + reason.Error() + `

This is usually transient; it is OK to retry. If it persists, check
that the configured publication host is correct.
`,
	}
}

func serverError(reason error) error {
	return &backenderr.Error{
		Type: backenderr.Server,
		Err:  reason,
		Help: `The operation failed on the server

The document store reported an error carrying out the operation:

    ` + reason.Error() + `

This is usually transient; it is OK to retry.
`,
	}
}
