// Package query declares the contract between a graph-query execution engine
// and a data adapter.
//
// The engine owns query parsing, planning, and the pull-based iteration
// protocol; an [Adapter] owns the data. The engine drives resolution by
// advancing the sequences the adapter returns, so a property or neighbor
// sequence is evaluated only as far as the consuming query stage requires.
//
// Every operation is order-preserving: outputs pair 1:1 with the input
// vertex stream, in input order. Operations validate the requested
// (type, field) combination before any vertex is consumed; an unknown
// combination is a schema/adapter mismatch and surfaces as an error, never
// as an empty result.
package query

import (
	"context"
	"fmt"
	"iter"
)

// Value is a scalar query result. A nil Value is the null scalar, used for
// missing optional data. Concrete values are string, bool, int64, float64,
// time.Time, or []string.
type Value any

// Params carries the arguments declared on an edge, keyed by parameter name.
type Params map[string]any

// Bool returns a required boolean parameter. Absence or a wrong type is a
// contract violation.
func (p Params) Bool(name string) (bool, error) {
	v, ok := p[name]
	if !ok {
		return false, fmt.Errorf("missing required parameter %q", name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q: expected bool, got %T", name, v)
	}
	return b, nil
}

// String returns an optional string parameter. The second return value is
// false when the parameter is absent or nil; a non-string value is a
// contract violation.
func (p Params) String(name string) (string, bool, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("parameter %q: expected string, got %T", name, v)
	}
	return s, true, nil
}

// Adapter is the four-operation contract the engine invokes, generic over
// the adapter's vertex type.
type Adapter[V any] interface {
	// StartingVertices resolves a root edge of the query into its starting
	// vertex sequence.
	StartingVertices(ctx context.Context, edge string, params Params) (iter.Seq[V], error)

	// Property resolves one scalar property per input vertex.
	Property(ctx context.Context, vertices iter.Seq[V], typeName, property string) (iter.Seq2[V, Value], error)

	// Neighbors resolves, per input vertex, a lazy sequence of neighbors
	// along the named edge.
	Neighbors(ctx context.Context, vertices iter.Seq[V], typeName, edge string, params Params) (iter.Seq2[V, iter.Seq[V]], error)

	// Coerce reports, per input vertex, whether the vertex narrows to the
	// target type.
	Coerce(ctx context.Context, vertices iter.Seq[V], typeName, target string) (iter.Seq2[V, bool], error)
}
