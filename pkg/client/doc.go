// Package client implements the customer REST API calls used by the form
// controller: create, update, retrieve, delete, search and suspend, plus the
// service description at the API root.
//
// Every call returns its result or an error once the response arrives. Non-2xx
// responses surface as *APIError carrying the server's "message" field.
package client
