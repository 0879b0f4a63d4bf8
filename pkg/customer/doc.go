// Package customer defines the Customer resource exchanged with the customer
// API and the payload sent on create and update.
package customer
