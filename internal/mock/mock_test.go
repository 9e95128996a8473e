package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintsteel/flintsteel/internal/backend"
	"github.com/flintsteel/flintsteel/internal/spec"
)

func newWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := NewAdapter(opts...).CreateWorld()
	require.NoError(t, err)
	return w.(*World)
}

func TestAdapter_Info(t *testing.T) {
	assert.Equal(t, "1.21", NewAdapter().Info().Version)
	assert.Equal(t, "1.20.4", NewAdapter(WithVersion("1.20.4")).Info().Version)
}

func TestAdapter_WorldsAreIsolated(t *testing.T) {
	a := NewAdapter()
	w1, err := a.CreateWorld()
	require.NoError(t, err)
	w2, err := a.CreateWorld()
	require.NoError(t, err)

	pos := spec.BlockPos{0, 64, 0}
	require.NoError(t, w1.SetBlock(pos, spec.NewBlock("minecraft:stone")))

	assert.Equal(t, "minecraft:stone", w1.GetBlock(pos).ID)
	assert.True(t, w2.GetBlock(pos).IsAir(), "writes must not leak across worlds")
	assert.NotEqual(t, w1.(*World).ID(), w2.(*World).ID())
}

func TestWorld_UnwrittenPositionsAreAir(t *testing.T) {
	w := newWorld(t)
	assert.True(t, w.GetBlock(spec.BlockPos{0, 0, 0}).IsAir())
	assert.True(t, w.GetBlock(spec.BlockPos{-10, -64, 1000}).IsAir(), "negative coordinates read as air too")
}

func TestWorld_SetGetRoundTrip(t *testing.T) {
	w := newWorld(t)
	pos := spec.BlockPos{-3, 64, 7}
	block := spec.Block{
		ID:         "minecraft:repeater",
		Properties: map[string]any{"delay": 2, "facing": "north"},
	}
	require.NoError(t, w.SetBlock(pos, block))

	got := w.GetBlock(pos)
	assert.Equal(t, "minecraft:repeater", got.ID)
	assert.Equal(t, map[string]string{"delay": "2", "facing": "north"}, got.Properties)
	assert.Equal(t, 1, w.BlockCount())
}

func TestWorld_OverwriteWins(t *testing.T) {
	w := newWorld(t)
	pos := spec.BlockPos{0, 64, 0}
	require.NoError(t, w.SetBlock(pos, spec.NewBlock("minecraft:stone")))
	require.NoError(t, w.SetBlock(pos, spec.NewBlock("minecraft:dirt")))

	assert.Equal(t, "minecraft:dirt", w.GetBlock(pos).ID)
	assert.Equal(t, 1, w.BlockCount())
}

func TestWorld_TickCounter(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, uint64(0), w.CurrentTick())
	w.DoTick()
	w.DoTick()
	w.DoTick()
	assert.Equal(t, uint64(3), w.CurrentTick())
}

func TestWorld_KnownBlocksRestriction(t *testing.T) {
	w := newWorld(t, WithKnownBlocks("minecraft:stone"))

	require.NoError(t, w.SetBlock(spec.BlockPos{0, 0, 0}, spec.NewBlock("minecraft:stone")))
	err := w.SetBlock(spec.BlockPos{0, 0, 1}, spec.NewBlock("minecraft:made_up"))
	assert.ErrorIs(t, err, backend.ErrUnknownBlock)
	assert.Equal(t, 1, w.BlockCount(), "rejected writes leave the world unchanged")
}

func TestPlayer_DefaultsToHotbarOne(t *testing.T) {
	p := newWorld(t).CreatePlayer()
	assert.Equal(t, 1, p.SelectedHotbar())
}

func TestPlayer_SlotRoundTrip(t *testing.T) {
	p := newWorld(t).CreatePlayer()

	item := spec.Item{ID: "minecraft:honeycomb", Count: 4}
	require.NoError(t, p.SetSlot(spec.Hotbar3, &item))

	got := p.GetSlot(spec.Hotbar3)
	require.NotNil(t, got)
	assert.Equal(t, item, *got)
	assert.Nil(t, p.GetSlot(spec.Hotbar4), "other slots stay empty")

	require.NoError(t, p.SetSlot(spec.Hotbar3, nil))
	assert.Nil(t, p.GetSlot(spec.Hotbar3), "nil clears the slot")
}

func TestPlayer_SlotsIndependentPerPlayer(t *testing.T) {
	w := newWorld(t)
	p1 := w.CreatePlayer()
	p2 := w.CreatePlayer()

	item := spec.NewItem("minecraft:shield")
	require.NoError(t, p1.SetSlot(spec.OffHand, &item))
	assert.Nil(t, p2.GetSlot(spec.OffHand))
}

func TestPlayer_SelectHotbarIgnoresOutOfRange(t *testing.T) {
	p := newWorld(t).CreatePlayer()

	p.SelectHotbar(5)
	assert.Equal(t, 5, p.SelectedHotbar())

	p.SelectHotbar(0)
	assert.Equal(t, 5, p.SelectedHotbar(), "0 is out of range")
	p.SelectHotbar(10)
	assert.Equal(t, 5, p.SelectedHotbar(), "10 is out of range")
	p.SelectHotbar(-1)
	assert.Equal(t, 5, p.SelectedHotbar())
}

func TestPlayer_UseItemOnRecordsHeldItem(t *testing.T) {
	p := newWorld(t).CreatePlayer().(*Player)

	item := spec.NewItem("minecraft:honeycomb")
	require.NoError(t, p.SetSlot(spec.Hotbar2, &item))
	p.SelectHotbar(2)

	pos := spec.BlockPos{0, 64, 0}
	p.UseItemOn(pos, spec.FaceTop)

	uses := p.Uses()
	require.Len(t, uses, 1)
	assert.Equal(t, pos, uses[0].Pos)
	assert.Equal(t, spec.FaceTop, uses[0].Face)
	require.NotNil(t, uses[0].Item)
	assert.Equal(t, "minecraft:honeycomb", uses[0].Item.ID)
}

func TestPlayer_UseItemOnEmptyHand(t *testing.T) {
	p := newWorld(t).CreatePlayer().(*Player)
	p.UseItemOn(spec.BlockPos{1, 2, 3}, spec.FaceNorth)

	uses := p.Uses()
	require.Len(t, uses, 1)
	assert.Nil(t, uses[0].Item)
}

func TestPlayer_KnownItemsRestriction(t *testing.T) {
	p := newWorld(t, WithKnownItems("minecraft:honeycomb")).CreatePlayer()

	good := spec.NewItem("minecraft:honeycomb")
	require.NoError(t, p.SetSlot(spec.Hotbar1, &good))

	bad := spec.NewItem("minecraft:made_up")
	assert.ErrorIs(t, p.SetSlot(spec.Hotbar2, &bad), backend.ErrUnknownItem)
	assert.Nil(t, p.GetSlot(spec.Hotbar2))
}
