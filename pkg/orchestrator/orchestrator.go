package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/client"
	"github.com/goliatone/go-customerform/pkg/controller"
	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/openapi"
	"github.com/goliatone/go-customerform/pkg/render"
	"github.com/goliatone/go-customerform/pkg/renderers/html"
	"github.com/goliatone/go-customerform/pkg/renderers/text"
	"github.com/goliatone/go-customerform/pkg/uischema"
)

const defaultRendererName = "text"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithContractSource loads the contract from src instead of the embedded
// document.
func WithContractSource(src openapi.Source, options ...openapi.LoaderOption) Option {
	return func(o *Orchestrator) {
		if src != nil {
			o.source = src
			o.loaderOptions = append([]openapi.LoaderOption(nil), options...)
		}
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder *model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithUIDecorators registers decorators that run after the overlay.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding overlay documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithHTTPClient sets the transport used by the API client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Orchestrator) {
		o.httpClient = httpClient
	}
}

// WithQueryEncoding selects how search values are written.
func WithQueryEncoding(encoding form.QueryEncoding) Option {
	return func(o *Orchestrator) {
		if encoding != "" {
			o.encoding = encoding
		}
	}
}

// WithLogger is handed to the client and the controller.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator assembles a ready to use customer form.
type Orchestrator struct {
	source            openapi.Source
	loaderOptions     []openapi.LoaderOption
	builder           *model.Builder
	registry          *render.Registry
	defaultRenderer   string
	decorators        []model.Decorator
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	httpClient        *http.Client
	encoding          form.QueryEncoding
	logger            *zap.Logger
}

// New constructs an Orchestrator. Missing dependencies fall back to the
// embedded contract and overlay and to the text and HTML renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		source:          openapi.SourceEmbedded(),
		defaultRenderer: defaultRendererName,
		encoding:        form.QueryEncodingRaw,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Request describes one assembly.
type Request struct {
	// BaseURL is the root of the customer API.
	BaseURL string
	// Renderer names the renderer; empty selects the default.
	Renderer string
	// Presenters receive every committed view.
	Presenters []controller.Presenter
	// Endpoint is shown by renderers that print the form target. It defaults
	// to BaseURL.
	Endpoint string
}

// Assembly is the wired result.
type Assembly struct {
	Contract   *openapi.Contract
	Model      model.FormModel
	Client     *client.Client
	Controller *controller.Controller
	Renderer   render.Renderer
	Options    render.RenderOptions
}

// Render draws the controller's current view.
func (a *Assembly) Render(ctx context.Context) ([]byte, error) {
	out, err := a.Renderer.Render(ctx, render.Page{Model: a.Model, View: a.Controller.View()}, a.Options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render view: %w", err)
	}
	return out, nil
}

// Assemble loads the contract, builds and decorates the form model and wires
// the client, controller and renderer.
func (o *Orchestrator) Assemble(ctx context.Context, req Request) (*Assembly, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.BaseURL == "" {
		return nil, errors.New("orchestrator: base url is required")
	}

	contract, err := openapi.Load(ctx, o.source, o.loaderOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load contract: %w", err)
	}
	routes, err := contract.Routes()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve routes: %w", err)
	}

	formModel, err := o.formModel(contract)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	clientOptions := []client.Option{client.WithRoutes(routes), client.WithLogger(o.logger)}
	if o.httpClient != nil {
		clientOptions = append(clientOptions, client.WithHTTPClient(o.httpClient))
	}
	api, err := client.New(req.BaseURL, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	ctrl := controller.New(api,
		controller.WithLogger(o.logger),
		controller.WithQueryEncoding(o.encoding),
		controller.WithPresenter(req.Presenters...),
	)

	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.BaseURL
	}
	names := make([]string, 0, len(controller.Actions()))
	for _, action := range controller.Actions() {
		names = append(names, string(action))
	}

	return &Assembly{
		Contract:   contract,
		Model:      formModel,
		Client:     api,
		Controller: ctrl,
		Renderer:   renderer,
		Options: render.RenderOptions{
			Actions:  render.ActionsFor(formModel, names...),
			Endpoint: endpoint,
		},
	}, nil
}

func (o *Orchestrator) formModel(contract *openapi.Contract) (model.FormModel, error) {
	base, err := contract.FormModel(o.builder)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	decorators, err := o.uiDecorators()
	if err != nil {
		return model.FormModel{}, err
	}
	decorated, err := model.Decorate(base, decorators...)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return decorated, nil
}

func (o *Orchestrator) uiDecorators() ([]model.Decorator, error) {
	fsys := o.uiSchemaFS
	if !o.uiSchemaSpecified {
		fsys = uischema.EmbeddedFS()
	}

	var decorators []model.Decorator
	if fsys != nil {
		overlay, err := uischema.LoadFS(fsys)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load ui schema: %w", err)
		}
		if !overlay.Empty() {
			decorators = append(decorators, uischema.NewDecorator(overlay))
		}
	}
	for _, decorator := range o.decorators {
		if decorator != nil {
			decorators = append(decorators, decorator)
		}
	}
	return decorators, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		o.registry = registry
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// DefaultRegistry holds the text and HTML renderers.
func DefaultRegistry() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	return render.NewRegistry(text.New(), htmlRenderer)
}
