package model

import (
	"fmt"
	"sort"
	"strings"
)

// CheckProjection reports an error unless the form's field set equals names
// exactly. Order is ignored.
func CheckProjection(form FormModel, names []string) error {
	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}
	have := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		have[field.Name] = struct{}{}
	}

	var missing, extra []string
	for name := range want {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range have {
		if _, ok := want[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("model: field set mismatch: %s", strings.Join(parts, "; "))
}
