// Package spec defines the declarative test specification model: named
// tests with tags, optional player setup, and a timeline of tick-scheduled
// actions. Specs are loaded from YAML files, checked against an embedded
// CUE schema, and treated as immutable afterwards.
package spec

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TestSpec is one loaded test specification.
//
// Name is the uniqueness key across a run. A spec is loaded once and never
// mutated; the runner takes fresh worlds per execution instead of resetting
// spec state.
type TestSpec struct {
	// Version is an optional format version tag.
	Version string `yaml:"version,omitempty"`

	// Name uniquely identifies this test within a run.
	Name string `yaml:"name"`

	// Description explains what the test verifies.
	Description string `yaml:"description,omitempty"`

	// Tags are unordered labels used for filtering.
	Tags []string `yaml:"tags,omitempty"`

	// Dependencies names tests this one builds on. Informational; the
	// runner does not order by dependencies.
	Dependencies []string `yaml:"dependencies,omitempty"`

	// Setup holds optional initial state applied before tick 0.
	Setup *Setup `yaml:"setup,omitempty"`

	// Timeline is the ordered list of tick-scheduled actions.
	Timeline []TimelineEntry `yaml:"timeline,omitempty"`

	// Breakpoints lists ticks reserved for interactive debugging.
	// Parsed and validated but without runtime effect.
	Breakpoints []int `yaml:"breakpoints,omitempty"`
}

// Setup is the optional initial-state block of a spec.
type Setup struct {
	Player *PlayerSetup `yaml:"player,omitempty"`
}

// PlayerSetup configures the test player's starting inventory.
type PlayerSetup struct {
	// Inventory maps slot names to their initial items.
	Inventory map[PlayerSlot]Item `yaml:"inventory,omitempty"`

	// SelectedHotbar is the initially active hotbar slot (1-9).
	// Zero means "leave the default" (slot 1).
	SelectedHotbar int `yaml:"selected_hotbar,omitempty"`
}

// Load reads and parses a spec file.
//
// Parsing is strict: unknown fields are rejected so that typos surface as
// load errors instead of silently dropped configuration. After parsing,
// the spec is validated structurally and against the embedded schema.
func Load(path string) (*TestSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(path, data)
}

// Parse parses spec file contents. The path is used in error messages and
// schema diagnostics only.
func Parse(path string, data []byte) (*TestSpec, error) {
	if err := ValidateSchema(path, data); err != nil {
		return nil, err
	}

	var s TestSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return &s, nil
}

// Validate checks the structural invariants the scheduler relies on:
// non-empty name, non-negative ticks, well-formed actions. Negative ticks
// are rejected here, at the producer, so the aggregator can assume
// validated input.
func (s *TestSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Setup != nil && s.Setup.Player != nil {
		p := s.Setup.Player
		if p.SelectedHotbar != 0 && (p.SelectedHotbar < 1 || p.SelectedHotbar > 9) {
			return fmt.Errorf("setup: selected_hotbar must be 1-9, got %d", p.SelectedHotbar)
		}
		for slot, item := range p.Inventory {
			if !slot.Valid() {
				return fmt.Errorf("setup: unknown inventory slot %q", slot)
			}
			if item.ID == "" {
				return fmt.Errorf("setup: slot %q: item is required", slot)
			}
			if item.Count < 0 {
				return fmt.Errorf("setup: slot %q: count must be non-negative", slot)
			}
		}
	}

	for i, entry := range s.Timeline {
		if entry.Tick < 0 {
			return fmt.Errorf("timeline[%d]: tick must be non-negative, got %d", i, entry.Tick)
		}
		if entry.Action == nil {
			return fmt.Errorf("timeline[%d]: action is required", i)
		}
		if err := validateAction(entry.Action); err != nil {
			return fmt.Errorf("timeline[%d]: %w", i, err)
		}
	}

	for i, tick := range s.Breakpoints {
		if tick < 0 {
			return fmt.Errorf("breakpoints[%d]: tick must be non-negative, got %d", i, tick)
		}
	}

	return nil
}

// validateAction checks per-variant invariants that the YAML shape alone
// cannot express.
func validateAction(a Action) error {
	switch act := a.(type) {
	case Place:
		if act.Block.ID == "" {
			return fmt.Errorf("place: block id is required")
		}
	case PlaceEach:
		for i, p := range act.Blocks {
			if p.Block.ID == "" {
				return fmt.Errorf("place_each: blocks[%d]: block id is required", i)
			}
		}
	case Fill:
		if act.Block.ID == "" {
			return fmt.Errorf("fill: block id is required")
		}
	case Remove:
		// No fields beyond the position.
	case Assert:
		if len(act.Checks) == 0 {
			return fmt.Errorf("assert: at least one check is required")
		}
		for i, c := range act.Checks {
			if c.Expect.ID == "" {
				return fmt.Errorf("assert: checks[%d]: expected block id is required", i)
			}
		}
	case UseItemOn:
		if !act.Face.Valid() {
			return fmt.Errorf("use_item_on: unknown face %q", act.Face)
		}
	case SetSlot:
		if !act.Slot.Valid() {
			return fmt.Errorf("set_slot: unknown slot %q", act.Slot)
		}
		if act.Item != "" && act.Count < 1 {
			return fmt.Errorf("set_slot: count must be positive when an item is set")
		}
	case SelectHotbar:
		// Out-of-range selections are a runtime no-op, not a load error.
	default:
		return fmt.Errorf("unsupported action %T", a)
	}
	return nil
}

// HasTag reports whether the spec carries the given tag.
func (s *TestSpec) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MaxTick returns the highest tick referenced by the timeline, or 0 for an
// empty timeline.
func (s *TestSpec) MaxTick() int {
	max := 0
	for _, entry := range s.Timeline {
		if entry.Tick > max {
			max = entry.Tick
		}
	}
	return max
}
