package controller

import (
	"fmt"
	"strings"
)

// Action names a UI trigger.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionRetrieve Action = "retrieve"
	ActionDelete   Action = "delete"
	ActionClear    Action = "clear"
	ActionSearch   Action = "search"
	ActionSuspend  Action = "suspend"
)

// Actions lists every trigger in menu order.
func Actions() []Action {
	return []Action{
		ActionCreate,
		ActionUpdate,
		ActionRetrieve,
		ActionDelete,
		ActionClear,
		ActionSearch,
		ActionSuspend,
	}
}

// ParseAction resolves a trigger name, ignoring case and surrounding space.
func ParseAction(raw string) (Action, error) {
	candidate := Action(strings.ToLower(strings.TrimSpace(raw)))
	for _, action := range Actions() {
		if action == candidate {
			return action, nil
		}
	}
	return "", fmt.Errorf("controller: unknown action %q", raw)
}

// Label is the button caption shown for the action.
func (a Action) Label() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}
