package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/controller"
	"github.com/goliatone/go-customerform/pkg/render"
)

// Theme captures optional message prefixes the session applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput directs the default survey driver's informational output.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithViewRenderer selects how the view is drawn after each trigger.
func WithViewRenderer(renderer render.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithActions restricts and orders the action menu.
func WithActions(actions ...controller.Action) Option {
	return func(s *Session) {
		if len(actions) > 0 {
			s.actions = append([]controller.Action(nil), actions...)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
