package model

import (
	"errors"
	"fmt"
	"strings"
)

// Property is the contract-neutral description of one schema property the
// builder turns into a Field.
type Property struct {
	Name        string
	Type        string
	Format      string
	Description string
	Enum        []string
	Required    bool
	ReadOnly    bool
	Extensions  map[string]any
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*Builder)

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(b *Builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// Builder converts schema properties into a FormModel.
type Builder struct {
	labeler func(string) string
}

// NewBuilder returns a Builder using DefaultLabeler unless overridden.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build assembles the form. Properties without an explicit order keep the
// order they were supplied in.
func (b *Builder) Build(title, description string, props []Property) (FormModel, error) {
	if len(props) == 0 {
		return FormModel{}, errors.New("model builder: no properties")
	}

	form := FormModel{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Fields:      make([]Field, 0, len(props)),
	}
	seen := make(map[string]struct{}, len(props))
	for i, prop := range props {
		name := strings.TrimSpace(prop.Name)
		if name == "" {
			return FormModel{}, fmt.Errorf("model builder: property %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return FormModel{}, fmt.Errorf("model builder: duplicate property %q", name)
		}
		seen[name] = struct{}{}

		field := Field{
			Name:     name,
			Type:     mapType(prop.Type),
			Format:   prop.Format,
			Label:    b.labeler(name),
			HelpText: prop.Description,
			Enum:     append([]string(nil), prop.Enum...),
			Order:    (i + 1) * 10,
			Required: prop.Required,
			ReadOnly: prop.ReadOnly,
		}
		if meta := ParseExtensions(prop.Extensions); meta != nil {
			field.Metadata = meta
			applyExtensions(&field, meta)
		}
		form.Fields = append(form.Fields, field)
	}
	form.SortFields()
	return form, nil
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}
