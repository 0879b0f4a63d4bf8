package render

import "github.com/goliatone/go-customerform/pkg/model"

// Action is one trigger button.
type Action struct {
	Name  string
	Label string
}

// RenderOptions carries per-call presentation choices that are not part of
// the form model.
type RenderOptions struct {
	// Actions lists the buttons to draw, in order. Renderers skip the button
	// row when empty.
	Actions []Action
	// Endpoint is shown as the form's target (for example the API base URL).
	Endpoint string
}

// ActionLabelKey is the form metadata key holding the caption of an action.
func ActionLabelKey(name string) string {
	return "action." + name + ".label"
}

// ActionsFor resolves button captions from the form metadata, falling back to
// the capitalised action name.
func ActionsFor(formModel model.FormModel, names ...string) []Action {
	out := make([]Action, 0, len(names))
	for _, name := range names {
		label := formModel.Metadata[ActionLabelKey(name)]
		if label == "" {
			label = model.DefaultLabeler(name)
		}
		out = append(out, Action{Name: name, Label: label})
	}
	return out
}
