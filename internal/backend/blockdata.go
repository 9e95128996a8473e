package backend

import (
	"sort"
	"strings"
)

// AirID is the canonical identifier for empty space.
const AirID = "minecraft:air"

// BlockData is a block as reported by a backend: an identifier plus its
// state properties, already normalized to strings.
type BlockData struct {
	ID         string
	Properties map[string]string
}

// NewBlockData creates block data with no properties.
func NewBlockData(id string) BlockData {
	return BlockData{ID: id}
}

// Air returns the deterministic empty value backends report for unwritten
// positions.
func Air() BlockData {
	return NewBlockData(AirID)
}

// IsAir reports whether the block is empty space, with or without a
// namespace prefix.
func (d BlockData) IsAir() bool {
	return d.ID == AirID || d.ID == "air"
}

// String renders the block as "identifier[prop=value,...]" with
// properties sorted by name, giving a stable, diffable form for failure
// messages.
func (d BlockData) String() string {
	if len(d.Properties) == 0 {
		return d.ID
	}

	keys := make([]string, 0, len(d.Properties))
	for key := range d.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(d.ID)
	b.WriteByte('[')
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(d.Properties[key])
	}
	b.WriteByte(']')
	return b.String()
}
