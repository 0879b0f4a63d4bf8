package uischema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/uischema"
)

func baseForm() model.FormModel {
	return model.FormModel{
		Title: "Customer",
		Fields: []model.Field{
			{Name: "id", Label: "ID", Order: 10},
			{Name: "name", Label: "Name", Order: 20},
			{Name: "email", Label: "Email", Order: 30},
		},
	}
}

func TestLoadFS_MergesYAMLAndJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte(`
form:
  title: People <b>Desk</b>
actions:
  - action: Create
    label: Add customer
fields:
  name:
    label: Full name
    order: 40
`)},
		"b.json":    &fstest.MapFile{Data: []byte(`{"fields":{"email":{"helpText":"Work & home"}}}`)},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	overlay, err := uischema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a.yaml", "b.json"}, overlay.Sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
	if overlay.Form.Title != "People Desk" {
		t.Fatalf("title not sanitised: %q", overlay.Form.Title)
	}
	if got := overlay.ActionLabel("create", "Create"); got != "Add customer" {
		t.Fatalf("action label: %q", got)
	}
	if got := overlay.ActionLabel("delete", "Delete"); got != "Delete" {
		t.Fatalf("fallback label: %q", got)
	}

	form, err := model.Decorate(baseForm(), uischema.NewDecorator(overlay))
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if diff := cmp.Diff([]string{"id", "email", "name"}, form.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	name, _ := form.Field("name")
	email, _ := form.Field("email")
	if name.Label != "Full name" || email.HelpText != "Work & home" {
		t.Fatalf("overrides not applied: %+v %+v", name, email)
	}
	if form.Title != "People Desk" || form.Metadata["action.create.label"] != "Add customer" {
		t.Fatalf("form overrides not applied: %+v", form)
	}
}

func TestLoadFS_RejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("fields:\n  name:\n    label: A\n")},
		"b.yaml": &fstest.MapFile{Data: []byte("fields:\n  name:\n    label: B\n")},
	}
	if _, err := uischema.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), `duplicate field "name"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	empty := fstest.MapFS{"a.yaml": &fstest.MapFile{Data: []byte("   ")}}
	if _, err := uischema.LoadFS(empty); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestDecorator_UnknownField(t *testing.T) {
	fsys := fstest.MapFS{"a.yaml": &fstest.MapFile{Data: []byte("fields:\n  nickname:\n    label: Nick\n")}}
	overlay, err := uischema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form := baseForm()
	err = uischema.NewDecorator(overlay).Decorate(&form)
	if err == nil || !strings.Contains(err.Error(), "nickname") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestDecorator_NilOverlayIsNoop(t *testing.T) {
	form := baseForm()
	if err := uischema.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if diff := cmp.Diff(baseForm(), form); diff != "" {
		t.Fatalf("form changed (-want +got):\n%s", diff)
	}
}

func TestDefaultOverlay(t *testing.T) {
	overlay, err := uischema.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if overlay.Form.Title != "Customer" || len(overlay.Actions) != 7 {
		t.Fatalf("unexpected default overlay: %+v", overlay)
	}
	if cfg, ok := overlay.Field("member_since"); !ok || cfg.Label != "Member Since" {
		t.Fatalf("member_since override missing: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yml")
	if err := os.WriteFile(path, []byte("form:\n  title: Desk\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	overlay, err := uischema.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if overlay.Form.Title != "Desk" {
		t.Fatalf("title: %q", overlay.Form.Title)
	}
	if _, err := uischema.LoadFile(filepath.Join(dir, "overlay.txt")); err == nil {
		t.Fatalf("expected extension error")
	}
}
