// Package path resolves dotted field paths against records.
//
// A path never carries array indices: stepping through a sequence-valued
// field fans out over every element, so one path can resolve to zero, one or
// many leaf values.
package path

import (
	"strings"

	"github.com/kailas-cloud/lasr/internal/domain/value"
)

// FieldPath is a parsed dotted path such as "skills.level".
type FieldPath struct {
	raw      string
	segments []string
}

// Parse splits a dotted path into segments. Parsing never fails; a malformed
// path simply resolves to fewer values.
func Parse(raw string) FieldPath {
	return FieldPath{raw: raw, segments: strings.Split(raw, ".")}
}

// ParseAll parses every path in order.
func ParseAll(raw []string) []FieldPath {
	out := make([]FieldPath, len(raw))
	for i, r := range raw {
		out[i] = Parse(r)
	}
	return out
}

// String returns the path as given.
func (p FieldPath) String() string { return p.raw }

// Segments returns the path segments.
func (p FieldPath) Segments() []string { return p.segments }

// Project returns every non-falsy value reachable from record along p.
// Each step looks up the segment on every current value, splices sequence
// results in one level deep and drops falsy values.
func Project(record value.Value, p FieldPath) []value.Value {
	current := []value.Value{record}
	for _, seg := range p.segments {
		next := make([]value.Value, 0, len(current))
		for _, v := range current {
			child := v.Get(seg)
			if child.Kind() == value.KindSequence {
				for _, item := range child.Elements() {
					if !item.Falsy() {
						next = append(next, item)
					}
				}
				continue
			}
			if !child.Falsy() {
				next = append(next, child)
			}
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}
