package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/pkg/client"
	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
)

// API is the subset of the customer REST API the controller drives.
// *client.Client satisfies it.
type API interface {
	Create(ctx context.Context, payload customer.Payload) (customer.Customer, error)
	Update(ctx context.Context, id customer.ID, payload customer.Payload) (customer.Customer, error)
	Retrieve(ctx context.Context, id customer.ID) (customer.Customer, error)
	Delete(ctx context.Context, id customer.ID) error
	Search(ctx context.Context, rawQuery string) ([]customer.Customer, error)
	Suspend(ctx context.Context, id customer.ID) (customer.Customer, error)
}

var _ API = (*client.Client)(nil)

// Presenter draws a committed view. Presenters run while the controller holds
// its lock, so they observe commits in order and must not call back into the
// controller.
type Presenter interface {
	Present(view form.View)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(view form.View)

// Present implements Presenter.
func (f PresenterFunc) Present(view form.View) { f(view) }

// Controller owns the displayed view and runs the form triggers.
type Controller struct {
	api        API
	presenters []Presenter
	logger     *zap.Logger
	encoding   form.QueryEncoding

	mu   sync.Mutex
	view form.View
}

// New constructs a Controller driving api.
func New(api API, options ...Option) *Controller {
	c := &Controller{
		api:      api,
		logger:   zap.NewNop(),
		encoding: form.QueryEncodingRaw,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// View returns the current view.
func (c *Controller) View() form.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetField writes a single form input, as a user typing into it would. The
// flash region and results are untouched and nothing is presented.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.view.Form.With(field, value)
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	c.view.Form = next
	return nil
}

// SetForm replaces every form input at once.
func (c *Controller) SetForm(state form.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Form = state
}

// Trigger runs the named action and blocks until its outcome is committed.
func (c *Controller) Trigger(ctx context.Context, action Action) error {
	switch action {
	case ActionCreate:
		return c.Create(ctx)
	case ActionUpdate:
		return c.Update(ctx)
	case ActionRetrieve:
		return c.Retrieve(ctx)
	case ActionDelete:
		return c.Delete(ctx)
	case ActionClear:
		c.Clear()
		return nil
	case ActionSearch:
		return c.Search(ctx)
	case ActionSuspend:
		return c.Suspend(ctx)
	default:
		return fmt.Errorf("controller: unknown action %q", action)
	}
}

// Dispatch runs the action on its own goroutine. The returned channel receives
// the trigger's error (nil on success) and is then closed. Dispatched triggers
// are neither queued nor de-duplicated.
func (c *Controller) Dispatch(ctx context.Context, action Action) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.Trigger(ctx, action)
	}()
	return done
}

// Create posts every field except id and loads the stored customer.
func (c *Controller) Create(ctx context.Context) error {
	snapshot := c.begin()
	created, err := c.api.Create(ctx, snapshot.Payload())
	if err != nil {
		return c.fail(ActionCreate, err, func(v form.View) form.View {
			return form.Failed(v, client.Message(err))
		})
	}
	c.succeed(ActionCreate, func(v form.View) form.View { return form.Loaded(v, created) })
	return nil
}

// Update replaces the customer addressed by the id field.
func (c *Controller) Update(ctx context.Context) error {
	snapshot := c.begin()
	updated, err := c.api.Update(ctx, snapshot.ID(), snapshot.Payload())
	if err != nil {
		return c.fail(ActionUpdate, err, func(v form.View) form.View {
			return form.Failed(v, client.Message(err))
		})
	}
	c.succeed(ActionUpdate, func(v form.View) form.View { return form.Loaded(v, updated) })
	return nil
}

// Retrieve loads the customer addressed by the id field. On failure every
// field except id is cleared.
func (c *Controller) Retrieve(ctx context.Context) error {
	snapshot := c.begin()
	found, err := c.api.Retrieve(ctx, snapshot.ID())
	if err != nil {
		return c.fail(ActionRetrieve, err, func(v form.View) form.View {
			return form.RetrieveFailed(v, client.Message(err))
		})
	}
	c.succeed(ActionRetrieve, func(v form.View) form.View { return form.Loaded(v, found) })
	return nil
}

// Delete removes the customer addressed by the id field. Failures always
// flash the generic server error.
func (c *Controller) Delete(ctx context.Context) error {
	snapshot := c.begin()
	if err := c.api.Delete(ctx, snapshot.ID()); err != nil {
		return c.fail(ActionDelete, err, form.DeleteFailed)
	}
	c.succeed(ActionDelete, form.Deleted)
	return nil
}

// Clear resets the form and flash region without issuing a request.
func (c *Controller) Clear() {
	c.commit(form.Cleared)
	c.logger.Debug("customer form cleared")
}

// Search lists customers matching the non-empty search fields.
func (c *Controller) Search(ctx context.Context) error {
	snapshot := c.begin()
	query := snapshot.SearchQuery(c.encoding)
	rows, err := c.api.Search(ctx, query)
	if err != nil {
		return c.fail(ActionSearch, err, func(v form.View) form.View {
			return form.Failed(v, client.Message(err))
		})
	}
	c.succeed(ActionSearch, func(v form.View) form.View { return form.Searched(v, rows) },
		zap.String("query", query),
		zap.Int("rows", len(rows)),
	)
	return nil
}

// Suspend marks the customer addressed by the id field as suspended.
func (c *Controller) Suspend(ctx context.Context) error {
	snapshot := c.begin()
	suspended, err := c.api.Suspend(ctx, snapshot.ID())
	if err != nil {
		return c.fail(ActionSuspend, err, func(v form.View) form.View {
			return form.Failed(v, client.Message(err))
		})
	}
	c.succeed(ActionSuspend, func(v form.View) form.View { return form.Suspended(v, suspended) })
	return nil
}

// begin empties the flash region, presents it and returns the form snapshot
// the request is built from.
func (c *Controller) begin() form.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.view.Form
	c.view = form.BeginRequest(c.view)
	c.present()
	return snapshot
}

func (c *Controller) succeed(action Action, transition func(form.View) form.View, fields ...zap.Field) {
	c.commit(transition)
	c.logger.Debug("customer trigger succeeded", append([]zap.Field{zap.String("action", string(action))}, fields...)...)
}

func (c *Controller) fail(action Action, err error, transition func(form.View) form.View) error {
	c.commit(transition)
	fields := []zap.Field{zap.String("action", string(action)), zap.Error(err)}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status", apiErr.StatusCode))
	}
	c.logger.Warn("customer trigger failed", fields...)
	return fmt.Errorf("controller: %s: %w", action, err)
}

// commit applies transition to the view current at this moment.
func (c *Controller) commit(transition func(form.View) form.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = transition(c.view)
	c.present()
}

func (c *Controller) present() {
	for _, p := range c.presenters {
		p.Present(c.view)
	}
}
