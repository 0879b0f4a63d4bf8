package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customerform/pkg/openapi"
)

func TestLint_DefaultContractIsClean(t *testing.T) {
	if violations := loadDefault(t).Lint(); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestLint_ReportsUnknownKeysAndBadValues(t *testing.T) {
	doc := string(openapi.DefaultContract())
	doc = strings.Replace(doc, "            label: ID\n", "            label: ID\n            colour: red\n", 1)
	doc = strings.Replace(doc, "            placeholder: jane@example.com\n", "            placeholder:\n              - jane@example.com\n", 1)

	contract, err := openapi.Parse(context.Background(), []byte(doc), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var got []string
	for _, v := range contract.Lint() {
		got = append(got, v.String())
	}
	want := []string{
		`components > schemas > Customer > properties > email > placeholder -> value for "placeholder" must be a string, number, or boolean (got []interface {})`,
		`components > schemas > Customer > properties > id > colour -> unsupported extension key "colour" (supported: helpText, label, order, placeholder, readOnly, searchable)`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_ReportsMissingRoutesAndProjection(t *testing.T) {
	contract, err := openapi.Parse(context.Background(), []byte(minimalContract), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	violations := contract.Lint()
	if len(violations) != 2 {
		t.Fatalf("expected two violations, got %v", violations)
	}
	if violations[0].Location != "components > schemas > Customer" {
		t.Fatalf("unexpected first location %q", violations[0].Location)
	}
	if violations[1].Location != "paths" || !strings.Contains(violations[1].Message, "createCustomer") {
		t.Fatalf("unexpected route violation %v", violations[1])
	}
}
