// Package render defines the renderer contract shared by the HTML, text and
// terminal front ends, a name-keyed registry, and a presenter that writes each
// committed view through a renderer.
package render
