package spec

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// BlockPos is a position in world coordinates [x, y, z].
type BlockPos [3]int

// Offset returns the position translated by d, component-wise.
func (p BlockPos) Offset(d BlockPos) BlockPos {
	return BlockPos{p[0] + d[0], p[1] + d[1], p[2] + d[2]}
}

// String renders the position as "(x, y, z)" for failure messages.
func (p BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p[0], p[1], p[2])
}

// UnmarshalYAML decodes a position from a [x, y, z] sequence.
func (p *BlockPos) UnmarshalYAML(value *yaml.Node) error {
	var coords []int
	if err := value.Decode(&coords); err != nil {
		return err
	}
	if len(coords) != 3 {
		return fmt.Errorf("position must have exactly 3 coordinates, got %d", len(coords))
	}
	copy(p[:], coords)
	return nil
}

// BlockFace identifies which face of a block an interaction targets.
type BlockFace string

// Block faces.
const (
	FaceTop    BlockFace = "top"
	FaceBottom BlockFace = "bottom"
	FaceNorth  BlockFace = "north"
	FaceSouth  BlockFace = "south"
	FaceEast   BlockFace = "east"
	FaceWest   BlockFace = "west"
)

// Valid reports whether the face is one of the six block faces.
func (f BlockFace) Valid() bool {
	switch f {
	case FaceTop, FaceBottom, FaceNorth, FaceSouth, FaceEast, FaceWest:
		return true
	}
	return false
}

// PlayerSlot is a semantic inventory slot name.
type PlayerSlot string

// Player inventory slots.
const (
	Hotbar1    PlayerSlot = "hotbar_1"
	Hotbar2    PlayerSlot = "hotbar_2"
	Hotbar3    PlayerSlot = "hotbar_3"
	Hotbar4    PlayerSlot = "hotbar_4"
	Hotbar5    PlayerSlot = "hotbar_5"
	Hotbar6    PlayerSlot = "hotbar_6"
	Hotbar7    PlayerSlot = "hotbar_7"
	Hotbar8    PlayerSlot = "hotbar_8"
	Hotbar9    PlayerSlot = "hotbar_9"
	OffHand    PlayerSlot = "off_hand"
	Boots      PlayerSlot = "boots"
	Leggings   PlayerSlot = "leggings"
	Chestplate PlayerSlot = "chestplate"
	Helmet     PlayerSlot = "helmet"
)

var playerSlots = map[PlayerSlot]bool{
	Hotbar1: true, Hotbar2: true, Hotbar3: true,
	Hotbar4: true, Hotbar5: true, Hotbar6: true,
	Hotbar7: true, Hotbar8: true, Hotbar9: true,
	OffHand: true, Boots: true, Leggings: true,
	Chestplate: true, Helmet: true,
}

// Valid reports whether the slot is a known inventory slot.
func (s PlayerSlot) Valid() bool {
	return playerSlots[s]
}

// HotbarSlot returns the slot name for hotbar position n (1-9).
// The second return is false if n is out of range.
func HotbarSlot(n int) (PlayerSlot, bool) {
	if n < 1 || n > 9 {
		return "", false
	}
	return PlayerSlot(fmt.Sprintf("hotbar_%d", n)), true
}

// Item is an item identifier with a stack count.
type Item struct {
	ID    string `yaml:"item"`
	Count int    `yaml:"count"`
}

// NewItem creates an item with the default stack count of 1.
func NewItem(id string) Item {
	return Item{ID: id, Count: 1}
}

// Block is a block specification as written in a test file: an identifier
// plus raw property values (string, bool, or number as parsed from YAML).
type Block struct {
	ID         string         `yaml:"id"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// NewBlock creates a block with no properties.
func NewBlock(id string) Block {
	return Block{ID: id}
}

// NormalizedProperties converts the raw property values to their string
// form for comparison against backend-reported block state.
//
// Null values and structurally complex values (lists, nested maps) are
// dropped; they mean "don't care" in an expectation. The literal key
// "properties" is dropped as well; it is reserved by a legacy nested
// encoding and is never itself a block property.
func (b Block) NormalizedProperties() map[string]string {
	if len(b.Properties) == 0 {
		return nil
	}
	out := make(map[string]string, len(b.Properties))
	for key, raw := range b.Properties {
		if key == "properties" {
			continue
		}
		val, ok := normalizeProperty(raw)
		if !ok {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeProperty renders a scalar property value as a string.
// Returns ok=false for nulls and complex values.
func normalizeProperty(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		// YAML only hands back a float for non-integral numbers.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return "", false
	}
}
