package form

import (
	"fmt"

	"github.com/goliatone/go-customerform/pkg/customer"
)

// State is an immutable snapshot of the customer form fields. Every method
// returns a new value; callers never share mutable field storage.
type State struct {
	values customer.Customer
}

// NewState seeds a state with every field of c, including its id.
func NewState(c customer.Customer) State {
	return State{values: c}
}

// FromValues builds a state from field names to values. Unknown names are
// rejected so typos do not silently drop input.
func FromValues(values map[string]string) (State, error) {
	var s State
	for field, value := range values {
		next, err := s.With(field, value)
		if err != nil {
			return State{}, err
		}
		s = next
	}
	return s, nil
}

// ID returns the current id field.
func (s State) ID() customer.ID {
	return s.values.ID
}

// Customer returns the fields as a Customer value.
func (s State) Customer() customer.Customer {
	return s.values
}

// Payload returns the request body for create and update: every editable
// field, empty strings included, without the id.
func (s State) Payload() customer.Payload {
	return s.values.Payload()
}

// Value returns the value of a single field.
func (s State) Value(field string) (string, bool) {
	return s.values.Value(field)
}

// Values returns a copy of all fields keyed by name.
func (s State) Values() map[string]string {
	out := make(map[string]string, len(customer.Fields))
	for _, field := range customer.Fields {
		value, _ := s.values.Value(field)
		out[field] = value
	}
	return out
}

// With returns a copy of s with one field replaced.
func (s State) With(field, value string) (State, error) {
	next, err := s.values.With(field, value)
	if err != nil {
		return s, fmt.Errorf("form: %w", err)
	}
	return State{values: next}, nil
}

// Overwrite replaces every field, id included, with the values of c.
func (s State) Overwrite(c customer.Customer) State {
	return NewState(c)
}

// ClearedExceptID empties every field but the id.
func (s State) ClearedExceptID() State {
	return State{values: customer.Customer{ID: s.values.ID}}
}

// Empty reports whether every field is blank.
func (s State) Empty() bool {
	return s.values == customer.Customer{}
}
