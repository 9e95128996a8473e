package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Action is one scheduled operation on a timeline entry.
//
// The variant set is closed: every implementation lives in this file, and
// consumers dispatch with a type switch. OffsetBy is implemented per
// variant so that adding a new action kind is a compile-checked change.
type Action interface {
	// OffsetBy returns a copy of the action with every position-bearing
	// field translated by d. Actions without positions return themselves.
	OffsetBy(d BlockPos) Action

	isAction()
}

// Place writes a single block.
type Place struct {
	Pos   BlockPos `yaml:"pos"`
	Block Block    `yaml:"block"`
}

// Placement is one (position, block) pair inside a PlaceEach.
type Placement struct {
	Pos   BlockPos `yaml:"pos"`
	Block Block    `yaml:"block"`
}

// PlaceEach writes a list of blocks in order. Later placements win on
// duplicate coordinates.
type PlaceEach struct {
	Blocks []Placement `yaml:"blocks"`
}

// Fill writes one block at every integer coordinate inside the inclusive
// axis-aligned box spanned by the two region corners. Corner order does
// not matter.
type Fill struct {
	Region [2]BlockPos `yaml:"region"`
	Block  Block       `yaml:"block"`
}

// Remove clears a position back to air.
type Remove struct {
	Pos BlockPos `yaml:"pos"`
}

// Check is a single block expectation inside an Assert.
type Check struct {
	Pos    BlockPos `yaml:"pos"`
	Expect Block    `yaml:"is"`
}

// Assert verifies block state at one or more positions. All checks must
// hold for the assert to pass.
type Assert struct {
	Checks []Check `yaml:"checks"`
}

// UseItemOn triggers the use-item interaction against a block face.
// If Item is non-empty, it is placed in hotbar slot 1 and selected first.
type UseItemOn struct {
	Pos  BlockPos  `yaml:"pos"`
	Face BlockFace `yaml:"face"`
	Item string    `yaml:"item,omitempty"`
}

// SetSlot sets an inventory slot. An empty Item clears the slot.
type SetSlot struct {
	Slot  PlayerSlot `yaml:"slot"`
	Item  string     `yaml:"item,omitempty"`
	Count int        `yaml:"count,omitempty"`
}

// SelectHotbar switches the active hotbar slot (1-9). Out-of-range values
// are ignored at execution time, leaving the previous selection unchanged.
type SelectHotbar struct {
	Slot int `yaml:"slot"`
}

func (a Place) isAction()        {}
func (a PlaceEach) isAction()    {}
func (a Fill) isAction()         {}
func (a Remove) isAction()       {}
func (a Assert) isAction()       {}
func (a UseItemOn) isAction()    {}
func (a SetSlot) isAction()      {}
func (a SelectHotbar) isAction() {}

// OffsetBy implements Action.
func (a Place) OffsetBy(d BlockPos) Action {
	a.Pos = a.Pos.Offset(d)
	return a
}

// OffsetBy implements Action.
func (a PlaceEach) OffsetBy(d BlockPos) Action {
	blocks := make([]Placement, len(a.Blocks))
	for i, p := range a.Blocks {
		p.Pos = p.Pos.Offset(d)
		blocks[i] = p
	}
	a.Blocks = blocks
	return a
}

// OffsetBy implements Action.
func (a Fill) OffsetBy(d BlockPos) Action {
	a.Region[0] = a.Region[0].Offset(d)
	a.Region[1] = a.Region[1].Offset(d)
	return a
}

// OffsetBy implements Action.
func (a Remove) OffsetBy(d BlockPos) Action {
	a.Pos = a.Pos.Offset(d)
	return a
}

// OffsetBy implements Action.
func (a Assert) OffsetBy(d BlockPos) Action {
	checks := make([]Check, len(a.Checks))
	for i, c := range a.Checks {
		c.Pos = c.Pos.Offset(d)
		checks[i] = c
	}
	a.Checks = checks
	return a
}

// OffsetBy implements Action.
func (a UseItemOn) OffsetBy(d BlockPos) Action {
	a.Pos = a.Pos.Offset(d)
	return a
}

// OffsetBy implements Action. SetSlot carries no position.
func (a SetSlot) OffsetBy(BlockPos) Action { return a }

// OffsetBy implements Action. SelectHotbar carries no position.
func (a SelectHotbar) OffsetBy(BlockPos) Action { return a }

// TimelineEntry pairs a tick number with exactly one action. Multiple
// entries may share a tick; their file order is preserved.
type TimelineEntry struct {
	Tick   int
	Action Action
}

// UnmarshalYAML decodes a timeline entry. The action is encoded as a
// single-key mapping whose key names the variant, e.g.
//
//	- tick: 0
//	  action:
//	    place: {pos: [0, 64, 0], block: {id: "minecraft:stone"}}
func (e *TimelineEntry) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Tick   int       `yaml:"tick"`
		Action yaml.Node `yaml:"action"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Action.Kind == 0 {
		return fmt.Errorf("timeline entry at tick %d: action is required", raw.Tick)
	}

	action, err := decodeAction(&raw.Action)
	if err != nil {
		return fmt.Errorf("timeline entry at tick %d: %w", raw.Tick, err)
	}

	e.Tick = raw.Tick
	e.Action = action
	return nil
}

// decodeAction resolves the single-key action encoding to a concrete
// Action variant.
func decodeAction(node *yaml.Node) (Action, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, fmt.Errorf("action must be a mapping with exactly one key")
	}

	kind := node.Content[0].Value
	payload := node.Content[1]

	switch kind {
	case "place":
		var a Place
		return a, payload.Decode(&a)
	case "place_each":
		var a PlaceEach
		return a, payload.Decode(&a)
	case "fill":
		var a Fill
		return a, payload.Decode(&a)
	case "remove":
		var a Remove
		return a, payload.Decode(&a)
	case "assert":
		var a Assert
		return a, payload.Decode(&a)
	case "use_item_on":
		var a UseItemOn
		return a, payload.Decode(&a)
	case "set_slot":
		var a SetSlot
		if err := payload.Decode(&a); err != nil {
			return nil, err
		}
		if a.Item != "" && a.Count == 0 {
			a.Count = 1
		}
		return a, nil
	case "select_hotbar":
		var a SelectHotbar
		return a, payload.Decode(&a)
	default:
		return nil, fmt.Errorf("unknown action type %q", kind)
	}
}
