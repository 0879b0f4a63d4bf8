package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/render"
	rendertemplate "github.com/goliatone/go-customerform/pkg/render/template"
	"github.com/goliatone/go-customerform/pkg/render/template/pongo"
)

const pageTemplate = "templates/page.tmpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces an HTML fragment with the form inputs, the flash region
// and the search result table.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws page. Server supplied strings are escaped by the template
// engine; the flash message is additionally stripped of markup.
func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(pageTemplate, pageData(page, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type fieldData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	InputType   string `json:"input_type"`
	Placeholder string `json:"placeholder"`
	Help        string `json:"help"`
	ReadOnly    bool   `json:"readonly"`
	Required    bool   `json:"required"`
}

type actionData struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type columnData struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type rowData struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
}

type resultsData struct {
	Present bool         `json:"present"`
	Columns []columnData `json:"columns"`
	Rows    []rowData    `json:"rows"`
}

type pageView struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Endpoint    string       `json:"endpoint"`
	Fields      []fieldData  `json:"fields"`
	Actions     []actionData `json:"actions"`
	Flash       string       `json:"flash"`
	Results     resultsData  `json:"results"`
}

func pageData(page render.Page, options render.RenderOptions) pageView {
	formModel := page.Model
	view := page.View

	out := pageView{
		Title:       formModel.Title,
		Description: formModel.Description,
		Endpoint:    options.Endpoint,
		Flash:       sanitizeFlash(view.Flash),
	}
	if out.Title == "" {
		out.Title = "Customer"
	}

	for _, field := range fieldsFor(formModel) {
		value, _ := view.Form.Value(field.Name)
		out.Fields = append(out.Fields, fieldData{
			ID:          ElementID(field.Name),
			Name:        field.Name,
			Label:       formModel.Label(field.Name),
			Value:       value,
			InputType:   inputType(field),
			Placeholder: field.Placeholder,
			Help:        field.HelpText,
			ReadOnly:    field.ReadOnly,
			Required:    field.Required,
		})
	}
	for _, action := range options.Actions {
		out.Actions = append(out.Actions, actionData{Name: action.Name, Label: action.Label})
	}

	if view.Results != nil {
		out.Results.Present = true
		for _, name := range form.Columns() {
			out.Results.Columns = append(out.Results.Columns, columnData{Name: name, Label: formModel.Label(name)})
		}
		for i, row := range view.Results.Rows {
			cells := make([]string, 0, len(customer.Fields))
			for _, name := range form.Columns() {
				value, _ := row.Value(name)
				cells = append(cells, value)
			}
			out.Results.Rows = append(out.Results.Rows, rowData{ID: form.RowID(i), Cells: cells})
		}
	}
	return out
}

// elementIDs keeps the input ids the page scripts select on; two of them are
// shorter than the field name.
var elementIDs = map[string]string{
	customer.FieldPhoneNumber: "customer_phone",
	customer.FieldMemberSince: "customer_since",
}

// ElementID returns the id of the input bound to field.
func ElementID(field string) string {
	if id, ok := elementIDs[field]; ok {
		return id
	}
	return "customer_" + field
}

// fieldsFor falls back to the bare customer field list when no model is
// supplied.
func fieldsFor(formModel model.FormModel) []model.Field {
	if len(formModel.Fields) > 0 {
		return formModel.Fields
	}
	fields := make([]model.Field, 0, len(customer.Fields))
	for _, name := range customer.Fields {
		fields = append(fields, model.Field{Name: name, ReadOnly: name == customer.FieldID})
	}
	return fields
}

func inputType(field model.Field) string {
	switch {
	case field.Format == "email":
		return "email"
	case field.Format == "date":
		return "date"
	case field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber:
		if field.ReadOnly {
			return "text"
		}
		return "number"
	default:
		return "text"
	}
}

var (
	flashPolicyOnce sync.Once
	flashPolicy     *bluemonday.Policy
)

// sanitizeFlash returns HTML-safe text: markup is removed and the remaining
// characters are entity-escaped.
func sanitizeFlash(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ""
	}
	flashPolicyOnce.Do(func() {
		flashPolicy = bluemonday.StrictPolicy()
	})
	return flashPolicy.Sanitize(trimmed)
}
