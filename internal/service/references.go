package service

import (
	"iter"
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Only double quoted values are recognised; src='x' and src=x are not.
var referencePattern = regexp.MustCompile(`(?i)(?:src|href)="([^"]+)"`)

// References is the deduplicated set of src/href values of a page, kept in
// lexicographic order.
type References struct {
	values []string
}

func (r References) Len() int {
	return len(r.values)
}

func (r References) All() iter.Seq[string] {
	return slices.Values(r.values)
}

// ExtractReferences collects every src="..." and href="..." value in page.
func ExtractReferences(page string) References {
	set := make(map[string]struct{})
	for _, match := range referencePattern.FindAllStringSubmatch(page, -1) {
		set[match[1]] = struct{}{}
	}
	return References{values: slices.Sorted(maps.Keys(set))}
}

// DecodePage turns the raw body into text, replacing invalid UTF-8 with U+FFFD
// instead of failing.
func DecodePage(body []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	return string(decoded)
}

// Skipped reports whether ref is an in-page anchor or a mail link, which are
// never probed.
func Skipped(ref string) bool {
	return strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "mailto:")
}

// Resolve maps ref to the absolute URL to probe. http and https references
// are returned verbatim; anything else is taken relative to the server root
// after dropping its leading slashes.
func Resolve(base *url.URL, ref string) string {
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return ref
	}

	trimmed := strings.TrimLeft(ref, "/")
	rel, err := url.Parse(trimmed)
	if err != nil {
		// unparseable references still get a line; the probe reports ERROR
		return base.String() + trimmed
	}
	return base.ResolveReference(rel).String()
}
