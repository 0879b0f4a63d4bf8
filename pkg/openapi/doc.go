// Package openapi loads the customer API contract with kin-openapi and derives
// the two things the form needs from it: the client route table, looked up by
// operation id, and the form model built from the Customer schema.
package openapi
