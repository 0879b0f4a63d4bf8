package controller

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/form"
)

// Option customises a Controller.
type Option func(*Controller)

// WithPresenter appends presenters notified after every commit.
func WithPresenter(presenters ...Presenter) Option {
	return func(c *Controller) {
		for _, p := range presenters {
			if p != nil {
				c.presenters = append(c.presenters, p)
			}
		}
	}
}

// WithLogger sets the logger used for trigger outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithQueryEncoding selects how search values are written into the query
// string. Defaults to form.QueryEncodingRaw.
func WithQueryEncoding(encoding form.QueryEncoding) Option {
	return func(c *Controller) {
		if encoding != "" {
			c.encoding = encoding
		}
	}
}

// WithInitialView seeds the view before the first trigger.
func WithInitialView(view form.View) Option {
	return func(c *Controller) {
		c.view = view
	}
}
