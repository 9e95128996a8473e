// Package mock provides the reference in-memory backend. It satisfies the
// full capability contract with no simulation behavior: blocks live in a
// map, ticks only count, and item use is recorded but has no effect.
//
// The mock exists so the runner and specs can be exercised without a real
// engine, and so tests can verify runner behavior against a backend whose
// semantics are trivial and fully known.
package mock

import (
	"github.com/google/uuid"

	"github.com/flintsteel/flintsteel/internal/backend"
	"github.com/flintsteel/flintsteel/internal/spec"
)

// Adapter creates in-memory worlds.
type Adapter struct {
	info        backend.ServerInfo
	knownBlocks map[string]bool
	knownItems  map[string]bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithVersion overrides the reported backend version.
func WithVersion(v string) Option {
	return func(a *Adapter) {
		a.info.Version = v
	}
}

// WithKnownBlocks restricts the set of block identifiers the mock accepts.
// Writes of any other identifier return backend.ErrUnknownBlock. By
// default every identifier is accepted.
func WithKnownBlocks(ids ...string) Option {
	return func(a *Adapter) {
		a.knownBlocks = make(map[string]bool, len(ids))
		for _, id := range ids {
			a.knownBlocks[id] = true
		}
	}
}

// WithKnownItems restricts the set of item identifiers the mock accepts,
// analogous to WithKnownBlocks.
func WithKnownItems(ids ...string) Option {
	return func(a *Adapter) {
		a.knownItems = make(map[string]bool, len(ids))
		for _, id := range ids {
			a.knownItems[id] = true
		}
	}
}

// NewAdapter creates a mock adapter.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		info: backend.ServerInfo{Version: "1.21"},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreateWorld implements backend.Adapter. It never fails.
func (a *Adapter) CreateWorld() (backend.World, error) {
	return &World{
		id:      uuid.NewString(),
		adapter: a,
		blocks:  make(map[spec.BlockPos]backend.BlockData),
	}, nil
}

// Info implements backend.Adapter.
func (a *Adapter) Info() backend.ServerInfo {
	return a.info
}

// World stores blocks in a map and counts ticks.
type World struct {
	id      string
	adapter *Adapter
	blocks  map[spec.BlockPos]backend.BlockData
	tick    uint64
}

// ID returns the world's unique identity, for diagnostics.
func (w *World) ID() string {
	return w.id
}

// DoTick implements backend.World.
func (w *World) DoTick() {
	w.tick++
}

// CurrentTick implements backend.World.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// GetBlock implements backend.World. Unwritten positions read as air.
func (w *World) GetBlock(pos spec.BlockPos) backend.BlockData {
	if data, ok := w.blocks[pos]; ok {
		return data
	}
	return backend.Air()
}

// SetBlock implements backend.World. Properties are normalized to strings
// at write time so reads round-trip through the same form a real backend
// would report.
func (w *World) SetBlock(pos spec.BlockPos, block spec.Block) error {
	if w.adapter.knownBlocks != nil && !w.adapter.knownBlocks[block.ID] {
		return backend.ErrUnknownBlock
	}
	w.blocks[pos] = backend.BlockData{
		ID:         block.ID,
		Properties: block.NormalizedProperties(),
	}
	return nil
}

// CreatePlayer implements backend.World.
func (w *World) CreatePlayer() backend.Player {
	return &Player{
		adapter:  w.adapter,
		slots:    make(map[spec.PlayerSlot]spec.Item),
		selected: 1,
	}
}

// BlockCount returns the number of written positions, for tests.
func (w *World) BlockCount() int {
	return len(w.blocks)
}

// UseEvent records one UseItemOn call for test inspection.
type UseEvent struct {
	Pos  spec.BlockPos
	Face spec.BlockFace
	// Item is the item in the active hotbar slot at the time of use,
	// or nil if the hand was empty.
	Item *spec.Item
}

// Player keeps inventory in a map and records item-use events instead of
// simulating them.
type Player struct {
	adapter  *Adapter
	slots    map[spec.PlayerSlot]spec.Item
	selected int
	uses     []UseEvent
}

// SetSlot implements backend.Player.
func (p *Player) SetSlot(slot spec.PlayerSlot, item *spec.Item) error {
	if item == nil {
		delete(p.slots, slot)
		return nil
	}
	if p.adapter.knownItems != nil && !p.adapter.knownItems[item.ID] {
		return backend.ErrUnknownItem
	}
	p.slots[slot] = *item
	return nil
}

// GetSlot implements backend.Player.
func (p *Player) GetSlot(slot spec.PlayerSlot) *spec.Item {
	if item, ok := p.slots[slot]; ok {
		return &item
	}
	return nil
}

// SelectHotbar implements backend.Player. Out-of-range values leave the
// previous selection unchanged.
func (p *Player) SelectHotbar(slot int) {
	if slot >= 1 && slot <= 9 {
		p.selected = slot
	}
}

// SelectedHotbar implements backend.Player.
func (p *Player) SelectedHotbar() int {
	return p.selected
}

// UseItemOn implements backend.Player. Use does not consume the stack at
// this layer; the event is recorded for inspection.
func (p *Player) UseItemOn(pos spec.BlockPos, face spec.BlockFace) {
	var held *spec.Item
	if slot, ok := spec.HotbarSlot(p.selected); ok {
		held = p.GetSlot(slot)
	}
	p.uses = append(p.uses, UseEvent{Pos: pos, Face: face, Item: held})
}

// Uses returns the recorded item-use events in order.
func (p *Player) Uses() []UseEvent {
	return p.uses
}
