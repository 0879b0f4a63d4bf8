// Package fakeapi is an in-memory implementation of the customer REST API.
// It backs the customer-api-stub command and the integration tests.
package fakeapi
