package uischema

// Overlay is the merged result of every UI schema document that was loaded.
// Treat it as immutable after LoadFS returns.
type Overlay struct {
	Sources []string
	Form    FormConfig
	Actions []ActionConfig
	Fields  map[string]FieldConfig
}

// FormConfig carries headings shown above the form.
type FormConfig struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// ActionConfig labels one trigger button. Order in the document is the order
// buttons and menu entries are shown in.
type ActionConfig struct {
	Action string `json:"action" yaml:"action"`
	Label  string `json:"label" yaml:"label"`
}

// FieldConfig overrides presentation of a single form field.
type FieldConfig struct {
	Order       *int   `json:"order,omitempty" yaml:"order,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Field returns the override for name.
func (o *Overlay) Field(name string) (FieldConfig, bool) {
	if o == nil {
		return FieldConfig{}, false
	}
	cfg, ok := o.Fields[name]
	return cfg, ok
}

// ActionLabel returns the configured label for action, or fallback.
func (o *Overlay) ActionLabel(action, fallback string) string {
	if o == nil {
		return fallback
	}
	for _, a := range o.Actions {
		if a.Action == action && a.Label != "" {
			return a.Label
		}
	}
	return fallback
}

// Empty reports whether the overlay changes nothing.
func (o *Overlay) Empty() bool {
	return o == nil || (o.Form == FormConfig{} && len(o.Actions) == 0 && len(o.Fields) == 0)
}
