package render

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
)

// WriterPresenter renders every committed view to a writer. It satisfies the
// controller's Presenter interface.
type WriterPresenter struct {
	renderer Renderer
	model    model.FormModel
	options  RenderOptions
	out      io.Writer
	logger   *zap.Logger

	mu      sync.Mutex
	lastErr error
}

// PresenterOption customises a WriterPresenter.
type PresenterOption func(*WriterPresenter)

// WithPresenterLogger logs render and write failures.
func WithPresenterLogger(logger *zap.Logger) PresenterOption {
	return func(p *WriterPresenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRenderOptions sets the options passed on every render.
func WithRenderOptions(options RenderOptions) PresenterOption {
	return func(p *WriterPresenter) {
		p.options = options
	}
}

// NewWriterPresenter draws form views with renderer into out.
func NewWriterPresenter(renderer Renderer, formModel model.FormModel, out io.Writer, options ...PresenterOption) *WriterPresenter {
	p := &WriterPresenter{
		renderer: renderer,
		model:    formModel,
		out:      out,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Present renders view. Failures are logged and kept for Err.
func (p *WriterPresenter) Present(view form.View) {
	data, err := p.renderer.Render(context.Background(), Page{Model: p.model, View: view}, p.options)
	if err == nil {
		_, err = p.out.Write(data)
	}

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.logger.Error("render view failed", zap.String("renderer", p.renderer.Name()), zap.Error(err))
	}
}

// Err returns the error from the most recent Present call.
func (p *WriterPresenter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
