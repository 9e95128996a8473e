// Package backend defines the capability contract a simulated-world
// implementation must satisfy to be driven by the test runner.
//
// Three roles make up the contract:
//
//   - Adapter constructs isolated worlds and reports backend metadata.
//   - World advances simulated time one tick at a time and exposes block
//     read/write plus player creation.
//   - Player exposes inventory slots, hotbar selection, and the
//     use-item-on-block interaction.
//
// A trivial in-memory implementation and a full simulation engine both
// satisfy the same three interfaces, so the runner is written once and
// behaves identically against either. See the mock package for the
// reference in-memory implementation.
//
// Contract invariants every implementation must uphold:
//
//   - GetBlock never errors; unwritten positions return a deterministic
//     air value.
//   - SetBlock followed by GetBlock at the same position returns a block
//     whose identifier matches what was written (properties may be
//     normalized but must round-trip semantically).
//   - Slot state is independent per Player instance.
//   - SelectHotbar ignores out-of-range input instead of erroring; a
//     fresh player starts on slot 1.
//   - CurrentTick is monotonically non-decreasing and increments by
//     exactly one per DoTick call.
package backend

import (
	"errors"

	"github.com/flintsteel/flintsteel/internal/spec"
)

// ErrUnknownBlock is returned by SetBlock when the backend does not
// recognize the block identifier. The runner treats this as a warning and
// skips the write rather than failing the test.
var ErrUnknownBlock = errors.New("unknown block identifier")

// ErrUnknownItem is the item-side counterpart of ErrUnknownBlock.
var ErrUnknownItem = errors.New("unknown item identifier")

// ServerInfo is backend metadata, used for diagnostics only.
type ServerInfo struct {
	// Version is the simulated game version the backend implements.
	Version string
}

// Adapter constructs isolated test worlds.
type Adapter interface {
	// CreateWorld returns a fresh, fully isolated world. Worlds are
	// disposable: the runner creates one per test and discards it after
	// scoring. A non-nil error aborts only the test being set up.
	CreateWorld() (World, error)

	// Info returns backend metadata for run logs.
	Info() ServerInfo
}

// World is one isolated simulated world.
type World interface {
	// DoTick advances simulated time by exactly one tick, running
	// whatever per-tick behavior the backend implements.
	DoTick()

	// CurrentTick returns the number of ticks executed so far.
	CurrentTick() uint64

	// GetBlock reads the block at pos. Unwritten positions return air.
	GetBlock(pos spec.BlockPos) BlockData

	// SetBlock writes a block unconditionally, triggering any
	// backend-side neighbor or consistency updates. Returns
	// ErrUnknownBlock (possibly wrapped) for unrecognized identifiers.
	SetBlock(pos spec.BlockPos, block spec.Block) error

	// CreatePlayer creates a simulated player in this world. The runner
	// calls this at most once per test.
	CreatePlayer() Player
}

// Player is a simulated player inside a world.
type Player interface {
	// SetSlot puts an item in a slot; a nil item clears it. Returns
	// ErrUnknownItem (possibly wrapped) for unrecognized identifiers.
	SetSlot(slot spec.PlayerSlot, item *spec.Item) error

	// GetSlot returns the item in a slot, or nil if the slot is empty.
	GetSlot(slot spec.PlayerSlot) *spec.Item

	// SelectHotbar switches the active hotbar slot. Values outside 1-9
	// are ignored.
	SelectHotbar(slot int)

	// SelectedHotbar returns the active hotbar slot (1-9, default 1).
	SelectedHotbar() int

	// UseItemOn triggers the backend's use-item interaction against a
	// block face. The result is observed indirectly through subsequent
	// GetBlock calls, never returned directly.
	UseItemOn(pos spec.BlockPos, face spec.BlockFace)
}
