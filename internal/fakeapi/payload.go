package fakeapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// customerInput is a decoded request body. Pointers distinguish a missing key
// from an empty value.
type customerInput struct {
	Name        *string `json:"name" validate:"required"`
	Address     *string `json:"address" validate:"required"`
	Email       *string `json:"email" validate:"required"`
	PhoneNumber *string `json:"phone_number" validate:"required"`
	MemberSince *string `json:"member_since" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,oneof=active suspended"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeCustomer(r *http.Request) (customerInput, error) {
	var in customerInput
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return in, errors.New("Invalid Customer: body of request could not be read")
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return in, fmt.Errorf("Invalid Customer: body of request contained bad or no data %v", err)
	}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Tag() == "required" {
				return in, fmt.Errorf("Invalid Customer: missing %s", fe.Field())
			}
			return in, fmt.Errorf("Invalid attribute: %s", fe.Field())
		}
		return in, fmt.Errorf("Invalid Customer: %v", err)
	}
	if _, err := time.Parse(dateLayout, *in.MemberSince); err != nil {
		return in, fmt.Errorf("Invalid attribute: member_since %q is not an ISO date", *in.MemberSince)
	}
	return in, nil
}

// apply copies the input onto c. Status is only changed when supplied.
func (in customerInput) apply(c Customer) Customer {
	c.Name = *in.Name
	c.Address = *in.Address
	c.Email = *in.Email
	c.PhoneNumber = *in.PhoneNumber
	c.MemberSince = *in.MemberSince
	if in.Status != "" {
		c.Status = in.Status
	}
	return c
}
