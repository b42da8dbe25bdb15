// Package document holds the raw parsed OpenAPI document for the duration of
// one generation pass and answers RFC 6901 JSON pointer lookups against it.
//
// The tree uses ordered maps for JSON objects so that every iteration over
// paths, definitions or properties follows the input document's member order.
package document

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Object is a JSON object node preserving member order.
type Object = orderedmap.OrderedMap[string, any]

// Document retains one parsed document. Objects in the tree are *Object,
// arrays []any, scalars string, int64, float64, bool or nil. The tree is
// installed once and never mutated afterwards.
type Document struct {
	root any
}

// New wraps an already-decoded tree.
func New(root any) *Document {
	return &Document{root: root}
}

// Root returns the document root node.
func (d *Document) Root() any {
	return d.root
}

// NotFoundError reports a pointer whose path does not exist in the document.
type NotFoundError struct {
	Pointer string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reference not found: %s", e.Pointer)
}

// Lookup resolves an RFC 6901 pointer ("#/a/b" or "/a/b") against the
// document. Segments decode "~1" to "/", "~0" to "~" and percent escapes.
// An all-digit segment indexes arrays by position; against an object it
// falls back to a string key.
func (d *Document) Lookup(pointer string) (any, error) {
	node := d.root
	for _, seg := range Segments(pointer) {
		switch v := node.(type) {
		case *Object:
			val, ok := v.Get(seg)
			if !ok {
				return nil, &NotFoundError{Pointer: pointer}
			}
			node = val
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, &NotFoundError{Pointer: pointer}
			}
			node = v[idx]
		default:
			return nil, &NotFoundError{Pointer: pointer}
		}
	}
	return node, nil
}

// Segments splits a pointer into decoded path segments.
func Segments(pointer string) []string {
	p := strings.TrimPrefix(pointer, "#")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i, seg := range parts {
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		parts[i] = seg
	}
	return parts
}
