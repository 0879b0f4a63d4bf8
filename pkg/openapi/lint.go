package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-customerform/pkg/model"
)

// Violation is one lint finding.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint checks that the contract serves every route the form needs, that the
// Customer schema projects onto the form fields and that x-formgen extensions
// only use recognised keys with scalar values. Findings are sorted by
// location.
func (c *Contract) Lint() []Violation {
	var out []Violation
	if _, err := c.Routes(); err != nil {
		out = append(out, Violation{Location: "paths", Message: err.Error()})
	}
	if _, err := c.FormModel(nil); err != nil {
		out = append(out, Violation{Location: "components > schemas > " + CustomerSchema, Message: err.Error()})
	}

	if c.doc.Components != nil {
		schemaNames := make([]string, 0, len(c.doc.Components.Schemas))
		for name := range c.doc.Components.Schemas {
			schemaNames = append(schemaNames, name)
		}
		sort.Strings(schemaNames)
		for _, name := range schemaNames {
			ref := c.doc.Components.Schemas[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			base := []string{"components", "schemas", name}
			out = append(out, lintExtensions(base, ref.Value.Extensions)...)

			props := make([]string, 0, len(ref.Value.Properties))
			for prop := range ref.Value.Properties {
				props = append(props, prop)
			}
			sort.Strings(props)
			for _, prop := range props {
				propRef := ref.Value.Properties[prop]
				if propRef == nil || propRef.Value == nil {
					continue
				}
				out = append(out, lintExtensions(appendPath(base, "properties", prop), propRef.Value.Extensions)...)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func lintExtensions(path []string, extensions map[string]any) []Violation {
	if len(extensions) == 0 {
		return nil
	}
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []Violation
	for _, key := range keys {
		value := extensions[key]
		switch {
		case key == model.ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				out = append(out, Violation{
					Location: formatLocation(path),
					Message:  fmt.Sprintf("%s must be an object, found %T", model.ExtensionNamespace, value),
				})
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				out = append(out, lintHint(appendPath(path, nestedKey), nestedKey, nested[nestedKey])...)
			}
		case strings.HasPrefix(key, model.ExtensionNamespace+"-"):
			trimmed := strings.TrimPrefix(key, model.ExtensionNamespace+"-")
			out = append(out, lintHint(path, trimmed, value)...)
		}
	}
	return out
}

func lintHint(path []string, key string, value any) []Violation {
	location := formatLocation(path)
	if key == "" {
		return []Violation{{Location: location, Message: "extension key is empty"}}
	}
	if !model.IsExtensionKey(key) {
		return []Violation{{
			Location: location,
			Message:  fmt.Sprintf("unsupported extension key %q (supported: %s)", key, strings.Join(model.ExtensionKeys(), ", ")),
		}}
	}
	if _, ok := model.CanonicalizeExtensionValue(value); !ok {
		return []Violation{{
			Location: location,
			Message:  fmt.Sprintf("value for %q must be a string, number, or boolean (got %T)", key, value),
		}}
	}
	return nil
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
