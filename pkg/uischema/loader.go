package uischema

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and merges every JSON/YAML document it finds, in lexical
// path order. A field or form heading defined by two files is an error. When
// fsys is nil the overlay is empty.
func LoadFS(fsys fs.FS) (*Overlay, error) {
	overlay := &Overlay{Fields: make(map[string]FieldConfig)}
	if fsys == nil {
		return overlay, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return overlay.merge(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return overlay, nil
}

// LoadFile reads a single overlay document from disk.
func LoadFile(path string) (*Overlay, error) {
	if !isSchemaFile(path) {
		return nil, fmt.Errorf("uischema: %s is not a .json, .yaml or .yml file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("uischema: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return nil, err
	}
	overlay := &Overlay{Fields: make(map[string]FieldConfig)}
	if err := overlay.merge(doc, path); err != nil {
		return nil, err
	}
	return overlay, nil
}

type documentFile struct {
	Form    FormConfig             `json:"form" yaml:"form"`
	Actions []ActionConfig         `json:"actions" yaml:"actions"`
	Fields  map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func (o *Overlay) merge(doc documentFile, source string) error {
	if doc.Form.Title != "" || doc.Form.Subtitle != "" {
		if o.Form != (FormConfig{}) {
			return fmt.Errorf("uischema: file %s redefines the form heading", source)
		}
		o.Form = FormConfig{
			Title:    sanitizeText(doc.Form.Title),
			Subtitle: sanitizeText(doc.Form.Subtitle),
		}
	}

	for idx, action := range doc.Actions {
		name := strings.ToLower(strings.TrimSpace(action.Action))
		if name == "" {
			return fmt.Errorf("uischema: file %s action %d has no name", source, idx)
		}
		for _, existing := range o.Actions {
			if existing.Action == name {
				return fmt.Errorf("uischema: file %s redefines action %q", source, name)
			}
		}
		o.Actions = append(o.Actions, ActionConfig{Action: name, Label: sanitizeText(action.Label)})
	}

	for key, cfg := range doc.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return fmt.Errorf("uischema: file %s defines a field with an empty name", source)
		}
		if _, exists := o.Fields[name]; exists {
			return fmt.Errorf("uischema: duplicate field %q (file %s)", name, source)
		}
		o.Fields[name] = FieldConfig{
			Order:       cloneInt(cfg.Order),
			Label:       sanitizeText(cfg.Label),
			HelpText:    sanitizeText(cfg.HelpText),
			Placeholder: sanitizeText(cfg.Placeholder),
		}
	}

	o.Sources = append(o.Sources, source)
	return nil
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
