package respcache

import (
	"net/url"
	"sort"
	"strings"
)

// Signature builds a stable cache key from path + query params (sorted by name).
// Params with empty values are treated as absent.
func Signature(path string, query map[string]string) string {
	names := make([]string, 0, len(query))
	for name, value := range query {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return path
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(query[name]))
	}
	return b.String()
}
