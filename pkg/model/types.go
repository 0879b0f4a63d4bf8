package model

import "sort"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// Field describes one input of the customer form. ReadOnly fields are
// populated from responses only.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Enum        []string          `json:"enum,omitempty" yaml:"enum,omitempty"`
	Order       int               `json:"order" yaml:"order"`
	Required    bool              `json:"required" yaml:"required"`
	ReadOnly    bool              `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Searchable  bool              `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FormModel is what renderers and the interactive session consume.
type FormModel struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Label returns the label for name, falling back to DefaultLabeler.
func (f FormModel) Label(name string) string {
	if field, ok := f.Field(name); ok && field.Label != "" {
		return field.Label
	}
	return DefaultLabeler(name)
}

// Names lists field names in display order.
func (f FormModel) Names() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Editable lists the fields a user types into.
func (f FormModel) Editable() []Field {
	out := make([]Field, 0, len(f.Fields))
	for _, field := range f.Fields {
		if !field.ReadOnly {
			out = append(out, field)
		}
	}
	return out
}

// Clone returns a deep copy so decorators can mutate without aliasing.
func (f FormModel) Clone() FormModel {
	out := f
	out.Metadata = cloneStrings(f.Metadata)
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		field.Enum = append([]string(nil), field.Enum...)
		field.Metadata = cloneStrings(field.Metadata)
		out.Fields[i] = field
	}
	return out
}

// SortFields orders fields by Order, then by name.
func (f *FormModel) SortFields() {
	sort.SliceStable(f.Fields, func(i, j int) bool {
		if f.Fields[i].Order != f.Fields[j].Order {
			return f.Fields[i].Order < f.Fields[j].Order
		}
		return f.Fields[i].Name < f.Fields[j].Name
	})
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
