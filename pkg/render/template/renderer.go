package template

import "io"

// TemplateRenderer is the seam template-backed renderers depend on.
type TemplateRenderer interface {
	// RenderTemplate executes a named template from the engine's file system.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString parses and executes inline template source.
	RenderString(source string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
