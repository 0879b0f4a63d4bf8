package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/render"
)

// Renderer prints the form, the flash message and the result table as plain
// aligned text.
type Renderer struct {
	padding int
}

// Option configures the text renderer.
type Option func(*Renderer)

// WithPadding sets the column gap of the result table.
func WithPadding(padding int) Option {
	return func(r *Renderer) {
		if padding > 0 {
			r.padding = padding
		}
	}
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{padding: 2}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, page render.Page, _ render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	formModel := page.Model
	view := page.View

	title := formModel.Title
	if title == "" {
		title = "Customer"
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))

	tw := tabwriter.NewWriter(&buf, 0, 0, r.padding, ' ', 0)
	for _, name := range fieldNames(formModel) {
		value, _ := view.Form.Value(name)
		fmt.Fprintf(tw, "%s:\t%s\n", formModel.Label(name), value)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("text renderer: write form: %w", err)
	}

	if view.Flash != "" {
		fmt.Fprintf(&buf, "\n> %s\n", view.Flash)
	}

	if view.Results == nil {
		return buf.Bytes(), nil
	}

	fmt.Fprintln(&buf)
	tw = tabwriter.NewWriter(&buf, 0, 0, r.padding, ' ', 0)
	columns := form.Columns()
	headers := make([]string, 0, len(columns)+1)
	headers = append(headers, "#")
	for _, name := range columns {
		headers = append(headers, formModel.Label(name))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for i, row := range view.Results.Rows {
		cells := make([]string, 0, len(columns)+1)
		cells = append(cells, form.RowID(i))
		for _, name := range columns {
			value, _ := row.Value(name)
			cells = append(cells, value)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("text renderer: write results: %w", err)
	}
	if view.Results.Len() == 0 {
		fmt.Fprintln(&buf, "(no customers)")
	}
	return buf.Bytes(), nil
}

func fieldNames(formModel model.FormModel) []string {
	if len(formModel.Fields) == 0 {
		return append([]string(nil), customer.Fields...)
	}
	return formModel.Names()
}
