package openapi_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customerform/pkg/client"
	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/openapi"
)

func loadDefault(t *testing.T) *openapi.Contract {
	t.Helper()
	contract, err := openapi.LoadDefault(context.Background())
	if err != nil {
		t.Fatalf("load default contract: %v", err)
	}
	return contract
}

func TestDefaultContract_Routes(t *testing.T) {
	routes, err := loadDefault(t).Routes()
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	if diff := cmp.Diff(client.DefaultRoutes(), routes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultContract_Operations(t *testing.T) {
	contract := loadDefault(t)
	op, ok := contract.Operation(openapi.OperationSuspendCustomer)
	if !ok {
		t.Fatalf("suspend operation missing")
	}
	if op.Method != "PUT" || op.Path != "/customers/{customer_id}/suspend" {
		t.Fatalf("unexpected operation: %+v", op)
	}
	if got := len(contract.Operations()); got != 7 {
		t.Fatalf("expected 7 operations, got %d", got)
	}
	if contract.Title() != "Customer Service REST API" {
		t.Fatalf("title: %q", contract.Title())
	}
}

func TestDefaultContract_FormModel(t *testing.T) {
	form, err := loadDefault(t).FormModel(nil)
	if err != nil {
		t.Fatalf("form model: %v", err)
	}

	if diff := cmp.Diff(customer.Fields, form.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	var searchable []string
	for _, field := range form.Fields {
		if field.Searchable {
			searchable = append(searchable, field.Name)
		}
	}
	if diff := cmp.Diff(customer.SearchFields, searchable); diff != "" {
		t.Fatalf("searchable mismatch (-want +got):\n%s", diff)
	}

	id, _ := form.Field(customer.FieldID)
	if !id.ReadOnly || id.Label != "ID" || id.Type != model.FieldTypeInteger {
		t.Fatalf("unexpected id field: %+v", id)
	}
	status, _ := form.Field(customer.FieldStatus)
	if diff := cmp.Diff([]string{"active", "suspended"}, status.Enum); diff != "" {
		t.Fatalf("status enum mismatch (-want +got):\n%s", diff)
	}
	since, _ := form.Field(customer.FieldMemberSince)
	if since.Format != "date" || !since.Required || since.Placeholder != "2020-01-31" {
		t.Fatalf("unexpected member_since field: %+v", since)
	}
}

const minimalContract = `
openapi: 3.0.3
info:
  title: Mini
  version: "1"
paths:
  /people:
    get:
      operationId: listCustomers
      responses:
        "200":
          description: ok
components:
  schemas:
    Customer:
      type: object
      properties:
        id:
          type: string
        nickname:
          type: string
`

func TestLoad_FromFSAndErrors(t *testing.T) {
	fsys := fstest.MapFS{"api/mini.yaml": &fstest.MapFile{Data: []byte(minimalContract)}}
	contract, err := openapi.Load(context.Background(), openapi.SourceFromFS("api/mini.yaml"), openapi.WithFileSystem(fsys))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if contract.Location() != "api/mini.yaml" {
		t.Fatalf("location: %q", contract.Location())
	}

	_, err = contract.Routes()
	if err == nil || !strings.Contains(err.Error(), `missing operation "createCustomer"`) {
		t.Fatalf("expected missing operation error, got %v", err)
	}

	_, err = contract.FormModel(nil)
	if err == nil || !strings.Contains(err.Error(), "field set mismatch") {
		t.Fatalf("expected projection error, got %v", err)
	}

	if _, err := openapi.Load(context.Background(), openapi.SourceFromFS("api/mini.yaml")); err == nil {
		t.Fatalf("expected error without a file system")
	}
	if _, err := openapi.Load(context.Background(), openapi.SourceFromFile("/does/not/exist.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := openapi.Parse(context.Background(), nil, true); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestRoutes_RejectsMethodMismatch(t *testing.T) {
	doc := strings.Replace(string(openapi.DefaultContract()), "    post:\n      operationId: createCustomer", "    patch:\n      operationId: createCustomer", 1)
	contract, err := openapi.Parse(context.Background(), []byte(doc), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := contract.Routes(); err == nil || !strings.Contains(err.Error(), "expected POST") {
		t.Fatalf("expected method mismatch, got %v", err)
	}
}
