package auth

import (
	"errors"

	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
)

var ErrorUnauthorized = &backenderr.Error{
	Type: backenderr.Unauthorized,
	Help: `The request failed authentication

Write operations (create, update, delete) need the admin password,
supplied in the X-Password header. If the daemon was started without
an admin password, writes are disabled entirely.
`,
	Err: errors.New("invalid admin password"),
}

// Policy gates write operations behind a shared admin password. An
// empty password means writes are disabled: there is no password that
// will be accepted.
type Policy struct {
	password string
}

func NewPolicy(password string) Policy {
	return Policy{password: password}
}

// Authenticate checks a password supplied with a request. It returns
// ErrorUnauthorized unless the supplied password is the configured,
// non-empty admin password.
func (p Policy) Authenticate(supplied string) error {
	if p.password == "" || supplied != p.password {
		return ErrorUnauthorized
	}
	return nil
}
