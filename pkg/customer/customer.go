package customer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ID is the opaque identifier assigned by the server. Servers may encode it as
// a JSON number or string; both decode to the same textual form.
type ID string

// String returns the textual form of the identifier.
func (id ID) String() string {
	return string(id)
}

// Empty reports whether no identifier is set.
func (id ID) Empty() bool {
	return id == ""
}

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("customer: decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
		return fmt.Errorf("customer: decode id %s: expected number or string", trimmed)
	}
	*id = ID(trimmed)
	return nil
}

// MarshalJSON emits integers as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Customer mirrors the resource returned by the customer API.
type Customer struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	MemberSince string `json:"member_since"`
	Status      string `json:"status"`
}

// Payload is the request body for create and update calls. The id is never
// sent and empty strings are kept.
type Payload struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	MemberSince string `json:"member_since"`
	Status      string `json:"status"`
}

// Payload strips the identifier.
func (c Customer) Payload() Payload {
	return Payload{
		Name:        c.Name,
		Address:     c.Address,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		MemberSince: c.MemberSince,
		Status:      c.Status,
	}
}

// Field names shared by the form, the payload and the result table.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldAddress     = "address"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldMemberSince = "member_since"
	FieldStatus      = "status"
)

// Fields lists every customer field in display order.
var Fields = []string{
	FieldID,
	FieldName,
	FieldAddress,
	FieldEmail,
	FieldPhoneNumber,
	FieldMemberSince,
	FieldStatus,
}

// SearchFields lists the fields used to build search queries, in query order.
var SearchFields = []string{
	FieldName,
	FieldAddress,
	FieldPhoneNumber,
}

// Value returns the string value for a field name.
func (c Customer) Value(field string) (string, bool) {
	switch field {
	case FieldID:
		return c.ID.String(), true
	case FieldName:
		return c.Name, true
	case FieldAddress:
		return c.Address, true
	case FieldEmail:
		return c.Email, true
	case FieldPhoneNumber:
		return c.PhoneNumber, true
	case FieldMemberSince:
		return c.MemberSince, true
	case FieldStatus:
		return c.Status, true
	default:
		return "", false
	}
}

// With returns a copy with the named field set.
func (c Customer) With(field, value string) (Customer, error) {
	switch field {
	case FieldID:
		c.ID = ID(value)
	case FieldName:
		c.Name = value
	case FieldAddress:
		c.Address = value
	case FieldEmail:
		c.Email = value
	case FieldPhoneNumber:
		c.PhoneNumber = value
	case FieldMemberSince:
		c.MemberSince = value
	case FieldStatus:
		c.Status = value
	default:
		return c, fmt.Errorf("customer: unknown field %q", field)
	}
	return c, nil
}
