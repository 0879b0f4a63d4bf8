package client

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-customerform/pkg/customer"
)

// IDPlaceholder is replaced with the path-escaped customer id.
const IDPlaceholder = "{id}"

// Routes is the endpoint table used by the client. Paths are relative to the
// base URL; resource paths contain IDPlaceholder.
type Routes struct {
	Collection string
	Resource   string
	Suspend    string
	Info       string
}

// DefaultRoutes returns the paths served by the customer API.
func DefaultRoutes() Routes {
	return Routes{
		Collection: "/customers",
		Resource:   "/customers/" + IDPlaceholder,
		Suspend:    "/customers/" + IDPlaceholder + "/suspend",
		Info:       "/",
	}
}

func expand(path string, id customer.ID) string {
	return strings.ReplaceAll(path, IDPlaceholder, url.PathEscape(id.String()))
}
