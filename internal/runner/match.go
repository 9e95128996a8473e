package runner

import (
	"strings"

	"github.com/flintsteel/flintsteel/internal/backend"
	"github.com/flintsteel/flintsteel/internal/spec"
)

// blockMatches reports whether an actual block satisfies an expectation.
//
// Identifiers compare equal after stripping an optional namespace prefix
// from both sides, so "minecraft:stone" matches "stone". When the
// identifiers match, every property named in the expectation must be
// present in the actual block with an equal normalized string value.
// Properties absent from the expectation are not checked: the comparison
// is a subset match, not full equality. Null-valued and structurally
// complex expected properties mean "don't care" and are skipped, as is
// the reserved key "properties".
func blockMatches(actual backend.BlockData, expected spec.Block) bool {
	if stripNamespace(actual.ID) != stripNamespace(expected.ID) {
		return false
	}

	for key, want := range expected.NormalizedProperties() {
		got, ok := actual.Properties[key]
		if !ok || got != want {
			return false
		}
	}

	return true
}

// stripNamespace removes a single "namespace:" prefix if present.
func stripNamespace(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// expectedData converts an expectation to BlockData so failures render
// expected and actual blocks through the same canonical form.
func expectedData(expected spec.Block) backend.BlockData {
	return backend.BlockData{
		ID:         expected.ID,
		Properties: expected.NormalizedProperties(),
	}
}
