package uischema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from overlay strings. Labels and help text are
// plain text; renderers escape them again on output.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	// StrictPolicy emits entities for the text it keeps.
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}
