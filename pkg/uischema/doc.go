// Package uischema loads optional presentation overlays for the customer form
// from JSON or YAML documents: form headings, action button labels and per
// field label, help text, placeholder and order. Overlay text is stripped of
// markup on load.
package uischema
