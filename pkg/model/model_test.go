package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customerform/pkg/model"
)

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"phone_number": "Phone Number",
		"memberSince":  "Member Since",
		"id":           "Id",
		"address-2":    "Address 2",
		"line2Text":    "Line 2 Text",
		"":             "",
	}
	for input, want := range cases {
		if got := model.DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseExtensions(t *testing.T) {
	ext := map[string]any{
		"x-formgen": map[string]any{
			"label":      "Display Name",
			"order":      float64(20),
			"searchable": true,
			"ignored":    []any{"a"},
		},
		"x-formgen-placeholder": "Enter name",
		"x-other":               "skip",
	}

	got := model.ParseExtensions(ext)
	want := map[string]string{
		"label":       "Display Name",
		"order":       "20",
		"searchable":  "true",
		"placeholder": "Enter name",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
	if model.ParseExtensions(map[string]any{"x-other": 1}) != nil {
		t.Fatalf("expected nil metadata without x-formgen keys")
	}
}

func TestBuilder_Build(t *testing.T) {
	props := []model.Property{
		{Name: "id", Type: "integer", ReadOnly: true},
		{Name: "phone_number", Type: "string", Extensions: map[string]any{
			"x-formgen": map[string]any{"order": float64(5), "searchable": true, "label": "Phone"},
		}},
		{Name: "status", Type: "string", Enum: []string{"active", "suspended"}, Description: "Account state"},
	}

	form, err := model.NewBuilder().Build(" Customer ", "", props)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := model.FormModel{
		Title: "Customer",
		Fields: []model.Field{
			{
				Name: "phone_number", Type: model.FieldTypeString, Label: "Phone", Order: 5, Searchable: true,
				Metadata: map[string]string{"order": "5", "searchable": "true", "label": "Phone"},
			},
			{Name: "id", Type: model.FieldTypeInteger, Label: "Id", Order: 10, ReadOnly: true},
			{Name: "status", Type: model.FieldTypeString, Label: "Status", HelpText: "Account state", Order: 30, Enum: []string{"active", "suspended"}},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"phone_number", "id", "status"}, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := len(form.Editable()); got != 2 {
		t.Fatalf("expected 2 editable fields, got %d", got)
	}
}

func TestBuilder_CustomLabelerAndErrors(t *testing.T) {
	form, err := model.NewBuilder(model.WithLabeler(strings.ToUpper)).Build("t", "", []model.Property{{Name: "name"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Label("name") != "NAME" {
		t.Fatalf("label: %q", form.Label("name"))
	}
	if form.Label("unknown_field") != "Unknown Field" {
		t.Fatalf("fallback label: %q", form.Label("unknown_field"))
	}

	if _, err := model.NewBuilder().Build("t", "", nil); err == nil {
		t.Fatalf("expected error for empty properties")
	}
	if _, err := model.NewBuilder().Build("t", "", []model.Property{{Name: "a"}, {Name: "a"}}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestDecorate_CopiesAndResorts(t *testing.T) {
	base := model.FormModel{Fields: []model.Field{
		{Name: "a", Order: 1, Metadata: map[string]string{"k": "v"}},
		{Name: "b", Order: 2},
	}}
	swap := model.DecoratorFunc(func(f *model.FormModel) error {
		f.Fields[0].Order = 3
		f.Fields[0].Metadata["k"] = "changed"
		return nil
	})

	got, err := model.Decorate(base, swap)
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, got.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if base.Fields[0].Metadata["k"] != "v" {
		t.Fatalf("decorator mutated the input model")
	}

	boom := errors.New("boom")
	_, err = model.Decorate(base, model.DecoratorFunc(func(*model.FormModel) error { return boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped decorator error, got %v", err)
	}
}

func TestCheckProjection(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{{Name: "id"}, {Name: "name"}, {Name: "nickname"}}}
	err := model.CheckProjection(form, []string{"id", "name", "email"})
	if err == nil {
		t.Fatalf("expected mismatch")
	}
	if want := "model: field set mismatch: missing email; unexpected nickname"; err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
	if err := model.CheckProjection(form, []string{"nickname", "name", "id"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
