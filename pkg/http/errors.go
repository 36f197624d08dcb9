package http

import (
	"errors"

	backenderr "github.com/pratyaywrites/profile-backend/pkg/errors"
)

func MakeAPINotFound(path string) *backenderr.Error {
	return &backenderr.Error{
		Type: backenderr.Missing,
		Help: `The API endpoint requested is not supported by this server.

This indicates that your client is either out of date, or faulty.

If you still have problems, please file an issue at

    https://github.com/pratyaywrites/profile-backend/issues

mentioning what you were attempting to do, and include this path:

    ` + path + `
`,
		Err: errors.New("API endpoint not found"),
	}
}
