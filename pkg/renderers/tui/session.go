package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/controller"
	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/model"
	"github.com/goliatone/go-customerform/pkg/render"
	"github.com/goliatone/go-customerform/pkg/renderers/text"
)

// QuitLabel is the menu entry that ends a session.
const QuitLabel = "Quit"

// Controller is the subset of *controller.Controller a session drives.
type Controller interface {
	View() form.View
	SetField(field, value string) error
	Trigger(ctx context.Context, action controller.Action) error
}

var _ Controller = (*controller.Controller)(nil)

// Session is an interactive terminal loop: pick an action, fill the fields it
// reads, fire the trigger and show the resulting view.
type Session struct {
	ctrl     Controller
	model    model.FormModel
	driver   PromptDriver
	renderer render.Renderer
	actions  []controller.Action
	out      io.Writer
	logger   *zap.Logger
	theme    Theme
}

// New constructs a session over ctrl. Without a driver the survey prompts are
// used; without a renderer views are drawn as plain text.
func New(ctrl Controller, formModel model.FormModel, options ...Option) (*Session, error) {
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}
	s := &Session{
		ctrl:    ctrl,
		model:   formModel,
		actions: controller.Actions(),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	if s.renderer == nil {
		s.renderer = text.New()
	}
	if len(s.actions) == 0 {
		return nil, ErrNoActions
	}
	return s, nil
}

// Run loops until the user quits or aborts. Trigger failures are already on
// the flash line and do not end the session; an abort returns ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	menu := s.menu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  s.title(),
			Options:  menu,
			PageSize: len(menu),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(s.actions) {
			return nil
		}

		action := s.actions[idx]
		if err := s.Step(ctx, action); err != nil {
			return err
		}
	}
}

// Step collects the inputs for action, triggers it and shows the view.
func (s *Session) Step(ctx context.Context, action controller.Action) error {
	if err := s.collect(ctx, action); err != nil {
		return err
	}
	if err := s.ctrl.Trigger(ctx, action); err != nil {
		s.logger.Debug("trigger finished with error", zap.String("action", string(action)), zap.Error(err))
	}
	return s.show(ctx)
}

func (s *Session) collect(ctx context.Context, action controller.Action) error {
	for _, name := range inputsFor(action, s.model) {
		if err := s.prompt(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) prompt(ctx context.Context, name string) error {
	current, _ := s.ctrl.View().Form.Value(name)
	cfg := InputConfig{
		Message: s.model.Label(name),
		Default: current,
	}
	if field, ok := s.model.Field(name); ok {
		cfg.Help = field.HelpText
		if cfg.Help == "" && field.Placeholder != "" {
			cfg.Help = "e.g. " + field.Placeholder
		}
	}
	value, err := s.driver.Input(ctx, cfg)
	if err != nil {
		return err
	}
	return s.ctrl.SetField(name, value)
}

func (s *Session) show(ctx context.Context) error {
	view := s.ctrl.View()
	out, err := s.renderer.Render(ctx, render.Page{Model: s.model, View: view}, render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("tui: render view: %w", err)
	}
	prefix := s.theme.InfoPrefix
	if isFailure(view.Flash) {
		prefix = s.theme.ErrorPrefix
	}
	return s.driver.Info(ctx, prefix+strings.TrimRight(string(out), "\n"))
}

func (s *Session) menu() []string {
	names := make([]string, 0, len(s.actions))
	for _, action := range s.actions {
		names = append(names, string(action))
	}
	labels := make([]string, 0, len(names)+1)
	for _, action := range render.ActionsFor(s.model, names...) {
		labels = append(labels, action.Label)
	}
	return append(labels, QuitLabel)
}

func (s *Session) title() string {
	if s.model.Title != "" {
		return s.model.Title
	}
	return "Customer"
}

// inputsFor lists the fields an action reads from the form, in prompt order.
func inputsFor(action controller.Action, formModel model.FormModel) []string {
	switch action {
	case controller.ActionCreate:
		return editableNames(formModel)
	case controller.ActionUpdate:
		return append([]string{customer.FieldID}, editableNames(formModel)...)
	case controller.ActionRetrieve, controller.ActionDelete, controller.ActionSuspend:
		return []string{customer.FieldID}
	case controller.ActionSearch:
		return append([]string(nil), customer.SearchFields...)
	default:
		return nil
	}
}

func editableNames(formModel model.FormModel) []string {
	if len(formModel.Fields) == 0 {
		var out []string
		for _, name := range customer.Fields {
			if name != customer.FieldID {
				out = append(out, name)
			}
		}
		return out
	}
	var out []string
	for _, field := range formModel.Editable() {
		out = append(out, field.Name)
	}
	return out
}

func isFailure(flash string) bool {
	switch flash {
	case "", form.MessageSuccess, form.MessageDeleted, form.MessageSuspended:
		return false
	default:
		return true
	}
}
