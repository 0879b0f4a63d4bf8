package model

import "fmt"

// Decorator enriches a form model after it has been built from the contract.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorate runs decorators in order against a copy of form and re-sorts the
// fields afterwards.
func Decorate(form FormModel, decorators ...Decorator) (FormModel, error) {
	out := form.Clone()
	for i, d := range decorators {
		if d == nil {
			continue
		}
		if err := d.Decorate(&out); err != nil {
			return FormModel{}, fmt.Errorf("model: decorator %d: %w", i, err)
		}
	}
	out.SortFields()
	return out, nil
}
