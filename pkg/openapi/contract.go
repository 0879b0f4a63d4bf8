package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-customerform/pkg/client"
	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/model"
)

// Operation ids the customer form depends on.
const (
	OperationServiceInfo     = "serviceInfo"
	OperationListCustomers   = "listCustomers"
	OperationCreateCustomer  = "createCustomer"
	OperationGetCustomer     = "getCustomer"
	OperationUpdateCustomer  = "updateCustomer"
	OperationDeleteCustomer  = "deleteCustomer"
	OperationSuspendCustomer = "suspendCustomer"
)

// CustomerSchema is the component schema the form is built from.
const CustomerSchema = "Customer"

var pathParamPattern = regexp.MustCompile(`\{[^}/]+\}`)

// Operation is the slice of an OpenAPI operation the form needs.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Contract is a parsed and validated customer API document.
type Contract struct {
	doc        *openapi3.T
	location   string
	operations map[string]Operation
}

// Load reads and parses a contract document.
func Load(ctx context.Context, src Source, options ...LoaderOption) (*Contract, error) {
	opts := loaderOptions{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	data, err := readSource(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	contract, err := Parse(ctx, data, opts.validate)
	if err != nil {
		return nil, err
	}
	contract.location = src.Location()
	return contract, nil
}

// LoadDefault parses the embedded contract.
func LoadDefault(ctx context.Context) (*Contract, error) {
	return Load(ctx, SourceEmbedded())
}

// Parse decodes raw YAML or JSON into a Contract.
func Parse(ctx context.Context, data []byte, validate bool) (*Contract, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			operations[id] = Operation{
				ID:      id,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
			}
		}
	}
	return &Contract{doc: doc, operations: operations}, nil
}

// Location reports where the contract was loaded from.
func (c *Contract) Location() string {
	return c.location
}

// Title is the document's info title.
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Operation looks up an operation by id.
func (c *Contract) Operation(id string) (Operation, bool) {
	op, ok := c.operations[id]
	return op, ok
}

// Operations lists every operation sorted by id.
func (c *Contract) Operations() []Operation {
	out := make([]Operation, 0, len(c.operations))
	for _, op := range c.operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Routes derives the client route table. Every operation the form uses must
// be present with the expected method, and operations sharing an endpoint
// must agree on its path.
func (c *Contract) Routes() (client.Routes, error) {
	lookup := func(id, method string) (string, error) {
		op, ok := c.operations[id]
		if !ok {
			return "", fmt.Errorf("openapi: contract missing operation %q", id)
		}
		if op.Method != method {
			return "", fmt.Errorf("openapi: operation %q uses %s, expected %s", id, op.Method, method)
		}
		return pathParamPattern.ReplaceAllString(op.Path, client.IDPlaceholder), nil
	}
	same := func(endpoint string, first string, rest ...string) error {
		for _, path := range rest {
			if path != first {
				return fmt.Errorf("openapi: %s operations disagree on path (%s vs %s)", endpoint, first, path)
			}
		}
		return nil
	}

	var (
		routes client.Routes
		paths  = map[string]string{}
	)
	for _, required := range []struct{ id, method string }{
		{OperationListCustomers, http.MethodGet},
		{OperationCreateCustomer, http.MethodPost},
		{OperationGetCustomer, http.MethodGet},
		{OperationUpdateCustomer, http.MethodPut},
		{OperationDeleteCustomer, http.MethodDelete},
		{OperationSuspendCustomer, http.MethodPut},
		{OperationServiceInfo, http.MethodGet},
	} {
		path, err := lookup(required.id, required.method)
		if err != nil {
			return client.Routes{}, err
		}
		paths[required.id] = path
	}

	if err := same("collection", paths[OperationListCustomers], paths[OperationCreateCustomer]); err != nil {
		return client.Routes{}, err
	}
	if err := same("resource", paths[OperationGetCustomer], paths[OperationUpdateCustomer], paths[OperationDeleteCustomer]); err != nil {
		return client.Routes{}, err
	}
	routes.Collection = paths[OperationListCustomers]
	routes.Resource = paths[OperationGetCustomer]
	routes.Suspend = paths[OperationSuspendCustomer]
	routes.Info = paths[OperationServiceInfo]

	for name, path := range map[string]string{"resource": routes.Resource, "suspend": routes.Suspend} {
		if !strings.Contains(path, client.IDPlaceholder) {
			return client.Routes{}, fmt.Errorf("openapi: %s path %q has no id parameter", name, path)
		}
	}
	return routes, nil
}

// FormModel builds the customer form from the Customer component schema. The
// schema's property set must match the customer fields exactly.
func (c *Contract) FormModel(builder *model.Builder) (model.FormModel, error) {
	if builder == nil {
		builder = model.NewBuilder()
	}
	if c.doc.Components == nil {
		return model.FormModel{}, errors.New("openapi: contract has no components")
	}
	ref, ok := c.doc.Components.Schemas[CustomerSchema]
	if !ok || ref == nil || ref.Value == nil {
		return model.FormModel{}, fmt.Errorf("openapi: contract missing schema %q", CustomerSchema)
	}
	schema := ref.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sortByCustomerFields(names)

	props := make([]model.Property, 0, len(names))
	for _, name := range names {
		propRef := schema.Properties[name]
		if propRef == nil || propRef.Value == nil {
			return model.FormModel{}, fmt.Errorf("openapi: property %q is unresolved", name)
		}
		prop := propRef.Value
		props = append(props, model.Property{
			Name:        name,
			Type:        schemaType(prop),
			Format:      prop.Format,
			Description: prop.Description,
			Enum:        enumStrings(prop.Enum),
			Required:    required[name],
			ReadOnly:    prop.ReadOnly,
			Extensions:  prop.Extensions,
		})
	}

	title := schema.Title
	if title == "" {
		title = CustomerSchema
	}
	form, err := builder.Build(title, schema.Description, props)
	if err != nil {
		return model.FormModel{}, err
	}
	if err := model.CheckProjection(form, customer.Fields); err != nil {
		return model.FormModel{}, fmt.Errorf("openapi: schema %q: %w", CustomerSchema, err)
	}
	return form, nil
}

func sortByCustomerFields(names []string) {
	rank := make(map[string]int, len(customer.Fields))
	for i, name := range customer.Fields {
		rank[name] = i
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := rank[names[i]]
		rj, jok := rank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, candidate := range []string{"integer", "number", "boolean", "string"} {
		if schema.Type.Is(candidate) {
			return candidate
		}
	}
	return ""
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := model.CanonicalizeExtensionValue(v); ok {
			out = append(out, s)
		}
	}
	return out
}
