// Package form holds the customer form as a value: State snapshots the
// fields, View adds the flash region and search results, and the transition
// functions compute the next View from a response without touching shared
// state. Callers apply the result in a single render step.
package form
