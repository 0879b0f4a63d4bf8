package render

import (
	"context"

	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
)

// Renderer draws the customer form and its current view.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}

// Page is the input to a renderer: the static form description plus the
// values, flash message and result table currently displayed.
type Page struct {
	Model model.FormModel
	View  form.View
}
