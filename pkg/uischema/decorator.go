package uischema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-customerform/pkg/model"
)

// Decorator applies an overlay to a form model.
type Decorator struct {
	overlay *Overlay
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator returns a decorator for overlay. A nil overlay changes nothing.
func NewDecorator(overlay *Overlay) *Decorator {
	return &Decorator{overlay: overlay}
}

// Decorate relabels, documents and reorders fields. Overrides naming a field
// the form does not have are rejected so typos surface at startup.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if form == nil {
		return fmt.Errorf("uischema: form model is nil")
	}
	if d == nil || d.overlay.Empty() {
		return nil
	}

	if title := d.overlay.Form.Title; title != "" {
		form.Title = title
	}
	if subtitle := d.overlay.Form.Subtitle; subtitle != "" {
		form.Description = subtitle
	}

	index := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		index[field.Name] = i
	}

	var unknown []string
	for name, cfg := range d.overlay.Fields {
		i, ok := index[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		field := &form.Fields[i]
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.HelpText != "" {
			field.HelpText = cfg.HelpText
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		if cfg.Order != nil {
			field.Order = *cfg.Order
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("uischema: overlay references unknown fields: %s", strings.Join(unknown, ", "))
	}

	if len(d.overlay.Actions) > 0 {
		if form.Metadata == nil {
			form.Metadata = make(map[string]string)
		}
		for _, action := range d.overlay.Actions {
			if action.Label != "" {
				form.Metadata[actionLabelKey(action.Action)] = action.Label
			}
		}
	}
	return nil
}

func actionLabelKey(action string) string {
	return "action." + action + ".label"
}
