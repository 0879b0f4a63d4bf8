package orchestrator_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customerform/internal/fakeapi"
	"github.com/goliatone/go-customerform/pkg/controller"
	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/orchestrator"
	"github.com/goliatone/go-customerform/pkg/render"
	"github.com/goliatone/go-customerform/pkg/renderers/text"
	"github.com/goliatone/go-customerform/pkg/testsupport"
)

func stubServer(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(fakeapi.New())
	t.Cleanup(ts.Close)
	return ts.URL + "/"
}

func TestAssemble_Defaults(t *testing.T) {
	baseURL := stubServer(t)
	assembly, err := orchestrator.New().Assemble(context.Background(), orchestrator.Request{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if assembly.Renderer.Name() != "text" {
		t.Fatalf("expected text renderer by default, got %q", assembly.Renderer.Name())
	}
	if diff := cmp.Diff(customer.Fields, assembly.Model.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if got := assembly.Model.Label(customer.FieldMemberSince); got != "Member Since" {
		t.Fatalf("expected overlay label, got %q", got)
	}
	if assembly.Options.Endpoint != baseURL {
		t.Fatalf("unexpected endpoint %q", assembly.Options.Endpoint)
	}
	if len(assembly.Options.Actions) != len(controller.Actions()) {
		t.Fatalf("expected one button per action, got %v", assembly.Options.Actions)
	}
}

func TestAssemble_TriggersReachTheAPI(t *testing.T) {
	var views bytes.Buffer
	baseURL := stubServer(t)
	presenter := render.NewWriterPresenter(text.New(), testsupport.FormModel(t), &views)
	assembly, err := orchestrator.New().Assemble(context.Background(), orchestrator.Request{
		BaseURL:    baseURL,
		Renderer:   "html",
		Presenters: []controller.Presenter{presenter},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	ctrl := assembly.Controller
	for field, value := range map[string]string{
		customer.FieldName:        "Alice",
		customer.FieldAddress:     "1 Main St",
		customer.FieldEmail:       "a@x.com",
		customer.FieldPhoneNumber: "555-1234",
		customer.FieldMemberSince: "2020-01-01",
	} {
		if err := ctrl.SetField(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	if err := ctrl.Trigger(context.Background(), controller.ActionCreate); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := assembly.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, `name="id" value="1"`) || !strings.Contains(page, ">Success</div>") {
		t.Fatalf("unexpected page:\n%s", page)
	}
	if !strings.Contains(views.String(), "> Success") {
		t.Fatalf("expected presenter output, got:\n%s", views.String())
	}
}

func TestAssemble_CustomOverlayAndDecorator(t *testing.T) {
	overlay := fstest.MapFS{
		"form.yaml": &fstest.MapFile{Data: []byte("form:\n  title: Members\nactions:\n  - action: search\n    label: Find\n")},
	}
	shout := model.DecoratorFunc(func(form *model.FormModel) error {
		form.Title = strings.ToUpper(form.Title)
		return nil
	})
	assembly, err := orchestrator.New(
		orchestrator.WithUISchemaFS(overlay),
		orchestrator.WithUIDecorators(shout),
	).Assemble(context.Background(), orchestrator.Request{BaseURL: "http://localhost:1/"})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if assembly.Model.Title != "MEMBERS" {
		t.Fatalf("unexpected title %q", assembly.Model.Title)
	}
	var label string
	for _, action := range assembly.Options.Actions {
		if action.Name == "search" {
			label = action.Label
		}
	}
	if label != "Find" {
		t.Fatalf("expected overlay action label, got %q", label)
	}
}

func TestAssemble_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := orchestrator.New().Assemble(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without base url")
	}
	if _, err := orchestrator.New().Assemble(ctx, orchestrator.Request{BaseURL: "http://x/", Renderer: "preact"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if _, err := orchestrator.New().Assemble(ctx, orchestrator.Request{BaseURL: "customers"}); err == nil {
		t.Fatalf("expected error for relative base url")
	}
	broken := fstest.MapFS{"bad.yaml": &fstest.MapFile{Data: []byte("fields:\n  nickname:\n    label: Nick\n")}}
	if _, err := orchestrator.New(orchestrator.WithUISchemaFS(broken)).Assemble(ctx, orchestrator.Request{BaseURL: "http://x/"}); err == nil {
		t.Fatalf("expected error for overlay naming an unknown field")
	}
}
