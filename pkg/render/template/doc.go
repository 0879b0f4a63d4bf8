// Package template defines the template engine contract used by renderers.
// The pongo subpackage implements it with pongo2.
package template
