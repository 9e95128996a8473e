package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flintsteel/flintsteel/internal/backend"
	"github.com/flintsteel/flintsteel/internal/spec"
)

func TestBlockMatches_ExactID(t *testing.T) {
	actual := backend.NewBlockData("minecraft:stone")
	assert.True(t, blockMatches(actual, spec.NewBlock("minecraft:stone")))
	assert.False(t, blockMatches(actual, spec.NewBlock("minecraft:dirt")))
}

func TestBlockMatches_NamespaceStripped(t *testing.T) {
	actual := backend.NewBlockData("minecraft:stone")
	assert.True(t, blockMatches(actual, spec.NewBlock("stone")), "expectation may omit the namespace")
	assert.True(t, blockMatches(backend.NewBlockData("stone"), spec.NewBlock("minecraft:stone")))
	assert.False(t, blockMatches(actual, spec.NewBlock("minecraft:stone_bricks")))
}

func TestBlockMatches_PropertySubset(t *testing.T) {
	actual := backend.BlockData{
		ID: "minecraft:redstone_lamp",
		Properties: map[string]string{
			"lit":    "true",
			"facing": "north",
		},
	}

	// Only the named properties are checked.
	assert.True(t, blockMatches(actual, spec.Block{
		ID:         "minecraft:redstone_lamp",
		Properties: map[string]any{"lit": true},
	}))

	// A wrong value fails even when others match.
	assert.False(t, blockMatches(actual, spec.Block{
		ID:         "minecraft:redstone_lamp",
		Properties: map[string]any{"lit": false, "facing": "north"},
	}))

	// A property absent from the actual block fails.
	assert.False(t, blockMatches(actual, spec.Block{
		ID:         "minecraft:redstone_lamp",
		Properties: map[string]any{"powered": true},
	}))
}

func TestBlockMatches_NoExpectedProperties(t *testing.T) {
	actual := backend.BlockData{
		ID:         "minecraft:oak_slab",
		Properties: map[string]string{"type": "top"},
	}
	assert.True(t, blockMatches(actual, spec.NewBlock("minecraft:oak_slab")),
		"an expectation without properties only checks the identifier")
}

func TestBlockMatches_SkippedExpectedValues(t *testing.T) {
	actual := backend.NewBlockData("minecraft:chest")

	// Nulls, complex values, and the reserved "properties" key all mean
	// "don't care" and never cause a mismatch.
	assert.True(t, blockMatches(actual, spec.Block{
		ID: "minecraft:chest",
		Properties: map[string]any{
			"facing":     nil,
			"nested":     map[string]any{"a": 1},
			"properties": "reserved",
		},
	}))
}

func TestStripNamespace(t *testing.T) {
	assert.Equal(t, "stone", stripNamespace("minecraft:stone"))
	assert.Equal(t, "stone", stripNamespace("stone"))
	assert.Equal(t, "thing", stripNamespace("mymod:thing"))
	assert.Equal(t, "", stripNamespace(""))
}

func TestExpectedData_CanonicalRendering(t *testing.T) {
	d := expectedData(spec.Block{
		ID:         "minecraft:repeater",
		Properties: map[string]any{"facing": "north", "delay": 2},
	})
	assert.Equal(t, "minecraft:repeater[delay=2,facing=north]", d.String())
}
