package model

import (
	"strconv"
	"strings"
)

// ExtensionNamespace is the vendor extension key read from schemas, either as
// a nested object (`x-formgen: {label: ...}`) or flattened
// (`x-formgen-label: ...`).
const ExtensionNamespace = "x-formgen"

// Recognised extension keys.
const (
	ExtensionLabel       = "label"
	ExtensionPlaceholder = "placeholder"
	ExtensionHelpText    = "helpText"
	ExtensionOrder       = "order"
	ExtensionSearchable  = "searchable"
	ExtensionReadOnly    = "readOnly"
)

// ExtensionKeys lists the recognised extension keys, sorted.
func ExtensionKeys() []string {
	return []string{
		ExtensionHelpText,
		ExtensionLabel,
		ExtensionOrder,
		ExtensionPlaceholder,
		ExtensionReadOnly,
		ExtensionSearchable,
	}
}

// IsExtensionKey reports whether key is recognised.
func IsExtensionKey(key string) bool {
	for _, known := range ExtensionKeys() {
		if key == known {
			return true
		}
	}
	return false
}

// ParseExtensions flattens the x-formgen extensions of a schema into string
// metadata. Values that cannot be rendered deterministically are dropped. It
// returns nil when nothing is found.
func ParseExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	result := make(map[string]string)
	for key, value := range ext {
		switch {
		case key == ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				if str, ok := CanonicalizeExtensionValue(nestedValue); ok {
					result[nestedKey] = str
				}
			}
		case strings.HasPrefix(key, ExtensionNamespace+"-"):
			if str, ok := CanonicalizeExtensionValue(value); ok {
				result[strings.TrimPrefix(key, ExtensionNamespace+"-")] = str
			}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// CanonicalizeExtensionValue turns a scalar extension value into a string.
// JSON numbers decode as float64, so integral floats print without a
// fraction.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return "", false
	}
}

// applyExtensions copies recognised metadata onto the typed field attributes.
func applyExtensions(field *Field, meta map[string]string) {
	if label := meta[ExtensionLabel]; label != "" {
		field.Label = label
	}
	if placeholder := meta[ExtensionPlaceholder]; placeholder != "" {
		field.Placeholder = placeholder
	}
	if help := meta[ExtensionHelpText]; help != "" {
		field.HelpText = help
	}
	if raw, ok := meta[ExtensionOrder]; ok {
		if order, err := strconv.Atoi(raw); err == nil {
			field.Order = order
		}
	}
	if raw, ok := meta[ExtensionSearchable]; ok {
		field.Searchable, _ = strconv.ParseBool(raw)
	}
	if raw, ok := meta[ExtensionReadOnly]; ok {
		if readOnly, err := strconv.ParseBool(raw); err == nil && readOnly {
			field.ReadOnly = true
		}
	}
}
