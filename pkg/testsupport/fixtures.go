package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/openapi"
	"github.com/goliatone/go-customerform/pkg/uischema"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Alice is the customer used throughout the scenario tests.
func Alice() customer.Customer {
	return customer.Customer{
		ID:          "7",
		Name:        "Alice",
		Address:     "1 Main St",
		Email:       "a@x.com",
		PhoneNumber: "555-1234",
		MemberSince: "2020-01-01",
		Status:      "active",
	}
}

// Bob is a second customer for search results.
func Bob() customer.Customer {
	return customer.Customer{
		ID:          "8",
		Name:        "Bob",
		Address:     "2 Side St",
		Email:       "b@x.com",
		PhoneNumber: "555-0000",
		MemberSince: "2021-06-15",
		Status:      "suspended",
	}
}

// FormModel builds the customer form from the embedded contract and overlay.
func FormModel(t testing.TB) model.FormModel {
	t.Helper()
	contract, err := openapi.LoadDefault(Context())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	base, err := contract.FormModel(nil)
	if err != nil {
		t.Fatalf("build form model: %v", err)
	}
	overlay, err := uischema.Default()
	if err != nil {
		t.Fatalf("load overlay: %v", err)
	}
	decorated, err := model.Decorate(base, uischema.NewDecorator(overlay))
	if err != nil {
		t.Fatalf("decorate form model: %v", err)
	}
	return decorated
}

// SearchedView is a view after a search that returned Alice and Bob.
func SearchedView() form.View {
	return form.Searched(form.View{}, []customer.Customer{Alice(), Bob()})
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t testing.TB, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
