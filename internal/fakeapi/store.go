package fakeapi

import (
	"sort"
	"strings"
	"sync"
)

// Status values a stored customer can carry.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Customer is the stored representation. Ids are integers on the wire.
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	MemberSince string `json:"member_since"`
	Status      string `json:"status"`
}

// Filter narrows a listing to one attribute. Only the first non-empty
// attribute in Field order applies.
type Filter struct {
	Field string
	Value string
}

// Store is an in-memory customer table safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]Customer
}

// NewStore returns a store seeded with customers. Seeded ids are kept; new
// ids continue after the largest one.
func NewStore(seed ...Customer) *Store {
	s := &Store{nextID: 1, rows: make(map[int64]Customer, len(seed))}
	for _, c := range seed {
		if c.ID == 0 {
			c.ID = s.nextID
		}
		if c.Status == "" {
			c.Status = StatusActive
		}
		s.rows[c.ID] = c
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

// Create assigns an id and stores c.
func (s *Store) Create(c Customer) Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	if c.Status == "" {
		c.Status = StatusActive
	}
	s.rows[c.ID] = c
	return c
}

// Find returns the customer with id.
func (s *Store) Find(id int64) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.rows[id]
	return c, ok
}

// Update replaces the stored customer, keeping its id. It reports false when
// no such customer exists.
func (s *Store) Update(id int64, fn func(Customer) Customer) (Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.rows[id]
	if !ok {
		return Customer{}, false
	}
	next := fn(current)
	next.ID = id
	s.rows[id] = next
	return next, true
}

// Delete removes the customer with id. Deleting a missing id is not an error.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
}

// List returns customers ordered by id, narrowed by filter when set.
func (s *Store) List(filter Filter) []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, 0, len(s.rows))
	for _, c := range s.rows {
		if filter.Field == "" || matches(c, filter) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matches(c Customer, filter Filter) bool {
	switch filter.Field {
	case "name":
		return c.Name == filter.Value
	case "address":
		return c.Address == filter.Value
	case "email":
		return strings.EqualFold(c.Email, filter.Value)
	case "phone_number":
		return c.PhoneNumber == filter.Value
	case "member_since":
		return c.MemberSince == filter.Value
	default:
		return false
	}
}
