package adapter

import (
	"context"
	"fmt"
	"iter"
)

// Coerce reports, per input vertex, whether the vertex narrows to the target
// type. The schema declares exactly two coercible targets, the two
// repository variants; narrowing to them is mutually exclusive. Any other
// target is a schema mismatch and fails loudly rather than answering false.
func (a *Adapter) Coerce(ctx context.Context, vertices iter.Seq[Vertex], typeName, target string) (iter.Seq2[Vertex, bool], error) {
	var match Kind
	switch target {
	case "Repository":
		match = KindRepository
	case "GitHubRepository":
		match = KindGitHubRepository
	default:
		return nil, fmt.Errorf("unsupported coercion from %s to %s", typeName, target)
	}

	return func(yield func(Vertex, bool) bool) {
		for v := range vertices {
			if !yield(v, v.Kind() == match) {
				return
			}
		}
	}, nil
}
