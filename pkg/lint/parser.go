package lint

import (
	"context"

	"github.com/yaklabco/kotlint/pkg/cst"
)

// Parser parses Kotlin source into a concrete syntax tree.
//
// Implementations (e.g., parser/kotlin) provide the concrete parsing logic
// and must be:
//   - lossless: tree.Text() equals the input for every successful parse,
//   - deterministic for a given (path, content) pair,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw source bytes into a tree. The path is used for
	// messages only. On error no partial tree is returned.
	Parse(ctx context.Context, path string, content []byte) (*cst.Tree, error)
}
