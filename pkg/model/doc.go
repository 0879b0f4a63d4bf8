// Package model defines the typed form model consumed by renderers and the
// interactive session. Builders turn contract-neutral schema properties into
// fields; vendor extensions under the `x-formgen` namespace (label,
// placeholder, helpText, order, searchable, readOnly) flow into typed field
// attributes and the raw values are kept in Field.Metadata. Decorators such
// as UI schema overlays run after the build and may relabel or reorder
// fields without touching the field set.
package model
