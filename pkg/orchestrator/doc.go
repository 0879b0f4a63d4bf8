// Package orchestrator wires the contract → form model → overlay → client →
// controller → renderer pipeline behind a single constructor so commands can
// start with one call.
package orchestrator
