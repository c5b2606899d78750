// internal/validation/source.go
//
// Request-data sources and field keys.

package validation

import (
	"fmt"
	"strings"
)

// Source names the part of a request a field value is read from.  The set
// is closed: path parameter, query parameter, header, and cookie.
type Source uint8

const (
	SourcePath Source = iota + 1
	SourceQuery
	SourceHeader
	SourceCookie
)

var sourceNames = map[Source]string{
	SourcePath:   "path",
	SourceQuery:  "query",
	SourceHeader: "header",
	SourceCookie: "cookie",
}

func (s Source) String() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("source(%d)", uint8(s))
}

// MarshalText lets a Source appear as its name in JSON error bodies.
func (s Source) MarshalText() ([]byte, error) {
	if _, ok := sourceNames[s]; !ok {
		return nil, fmt.Errorf("validation: unknown source %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// ParseSource maps a config string ("path", "query", "header", "cookie")
// back to a Source.  Matching is case-insensitive.
func ParseSource(s string) (Source, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for src, name := range sourceNames {
		if name == want {
			return src, nil
		}
	}
	return 0, fmt.Errorf("validation: unknown source %q", s)
}

// FieldKey identifies one validatable field.  It is comparable and is used
// directly as a map key.
type FieldKey struct {
	Source Source
	Name   string
}

func (k FieldKey) String() string { return k.Source.String() + " '" + k.Name + "'" }

// PathParam keys a named route parameter (chi "{name}").
func PathParam(name string) FieldKey { return FieldKey{SourcePath, name} }

// QueryParam keys a query-string parameter.
func QueryParam(name string) FieldKey { return FieldKey{SourceQuery, name} }

// Header keys a request header.  Lookup is canonicalised, so "x-id" and
// "X-Id" address the same header.
func Header(name string) FieldKey { return FieldKey{SourceHeader, name} }

// Cookie keys a request cookie by name.
func Cookie(name string) FieldKey { return FieldKey{SourceCookie, name} }
