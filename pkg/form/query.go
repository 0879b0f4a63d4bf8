package form

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-customerform/pkg/customer"
)

// QueryEncoding selects how search values are written into the query string.
type QueryEncoding string

const (
	// QueryEncodingRaw writes values without escaping reserved characters.
	// Values containing '&' or '=' corrupt the query; this matches the
	// behaviour the API was built against. Bytes a request target cannot
	// carry are still percent-encoded, as a browser does.
	QueryEncodingRaw QueryEncoding = "raw"
	// QueryEncodingURL percent-encodes every value.
	QueryEncodingURL QueryEncoding = "url"
)

// ParseQueryEncoding validates a configured encoding name. Empty means raw.
func ParseQueryEncoding(raw string) (QueryEncoding, error) {
	switch QueryEncoding(strings.ToLower(strings.TrimSpace(raw))) {
	case "", QueryEncodingRaw:
		return QueryEncodingRaw, nil
	case QueryEncodingURL:
		return QueryEncodingURL, nil
	default:
		return "", fmt.Errorf("form: unknown query encoding %q", raw)
	}
}

// SearchQuery builds the search query from name, address and phone_number,
// in that order, skipping empty values and joining pairs with '&'.
func (s State) SearchQuery(encoding QueryEncoding) string {
	pairs := make([]string, 0, len(customer.SearchFields))
	for _, field := range customer.SearchFields {
		value, _ := s.Value(field)
		if value == "" {
			continue
		}
		if encoding == QueryEncodingURL {
			value = url.QueryEscape(value)
		} else {
			value = escapeRaw(value)
		}
		pairs = append(pairs, field+"="+value)
	}
	return strings.Join(pairs, "&")
}

const upperhex = "0123456789ABCDEF"

// escapeRaw percent-encodes the WHATWG query percent-encode set: C0 controls,
// space, '"', '#', '<', '>' and bytes >= 0x7F. Everything else, '&' and '='
// included, passes through.
func escapeRaw(value string) string {
	n := 0
	for i := 0; i < len(value); i++ {
		if shouldEscapeRaw(value[i]) {
			n++
		}
	}
	if n == 0 {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 2*n)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if shouldEscapeRaw(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func shouldEscapeRaw(c byte) bool {
	switch {
	case c <= 0x20, c >= 0x7F:
		return true
	case c == '"', c == '#', c == '<', c == '>':
		return true
	default:
		return false
	}
}
