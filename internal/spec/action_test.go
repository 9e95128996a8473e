package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeEntry(t *testing.T, src string) TimelineEntry {
	t.Helper()
	var e TimelineEntry
	require.NoError(t, yaml.Unmarshal([]byte(src), &e))
	return e
}

func TestTimelineEntry_DecodePlace(t *testing.T) {
	e := decodeEntry(t, `
tick: 3
action:
  place:
    pos: [0, 64, 0]
    block:
      id: "minecraft:stone"
`)
	assert.Equal(t, 3, e.Tick)
	place, ok := e.Action.(Place)
	require.True(t, ok, "expected Place, got %T", e.Action)
	assert.Equal(t, BlockPos{0, 64, 0}, place.Pos)
	assert.Equal(t, "minecraft:stone", place.Block.ID)
}

func TestTimelineEntry_DecodePlaceWithProperties(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  place:
    pos: [1, 64, 1]
    block:
      id: "minecraft:repeater"
      properties:
        delay: 2
        facing: "north"
`)
	place := e.Action.(Place)
	assert.Equal(t, map[string]string{
		"delay":  "2",
		"facing": "north",
	}, place.Block.NormalizedProperties())
}

func TestTimelineEntry_DecodePlaceEach(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  place_each:
    blocks:
      - pos: [0, 64, 0]
        block: {id: "minecraft:stone"}
      - pos: [0, 64, 1]
        block: {id: "minecraft:dirt"}
`)
	pe := e.Action.(PlaceEach)
	require.Len(t, pe.Blocks, 2)
	assert.Equal(t, "minecraft:stone", pe.Blocks[0].Block.ID)
	assert.Equal(t, BlockPos{0, 64, 1}, pe.Blocks[1].Pos)
}

func TestTimelineEntry_DecodeFill(t *testing.T) {
	e := decodeEntry(t, `
tick: 1
action:
  fill:
    region: [[0, 64, 0], [2, 64, 2]]
    block: {id: "minecraft:glass"}
`)
	fill := e.Action.(Fill)
	assert.Equal(t, BlockPos{0, 64, 0}, fill.Region[0])
	assert.Equal(t, BlockPos{2, 64, 2}, fill.Region[1])
	assert.Equal(t, "minecraft:glass", fill.Block.ID)
}

func TestTimelineEntry_DecodeRemove(t *testing.T) {
	e := decodeEntry(t, `
tick: 2
action:
  remove: {pos: [0, 64, 0]}
`)
	assert.Equal(t, Remove{Pos: BlockPos{0, 64, 0}}, e.Action)
}

func TestTimelineEntry_DecodeAssert(t *testing.T) {
	e := decodeEntry(t, `
tick: 5
action:
  assert:
    checks:
      - pos: [0, 64, 0]
        is:
          id: "minecraft:lit_redstone_lamp"
`)
	a := e.Action.(Assert)
	require.Len(t, a.Checks, 1)
	assert.Equal(t, "minecraft:lit_redstone_lamp", a.Checks[0].Expect.ID)
}

func TestTimelineEntry_DecodeUseItemOn(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  use_item_on:
    pos: [0, 64, 0]
    face: "top"
    item: "minecraft:honeycomb"
`)
	use := e.Action.(UseItemOn)
	assert.Equal(t, FaceTop, use.Face)
	assert.Equal(t, "minecraft:honeycomb", use.Item)
}

func TestTimelineEntry_DecodeSetSlot(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  set_slot:
    slot: "hotbar_2"
    item: "minecraft:water_bucket"
    count: 3
`)
	set := e.Action.(SetSlot)
	assert.Equal(t, Hotbar2, set.Slot)
	assert.Equal(t, 3, set.Count)
}

func TestTimelineEntry_DecodeSetSlot_DefaultCount(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  set_slot:
    slot: "off_hand"
    item: "minecraft:shield"
`)
	set := e.Action.(SetSlot)
	assert.Equal(t, 1, set.Count, "count defaults to 1 when an item is set")
}

func TestTimelineEntry_DecodeSetSlot_ClearKeepsZeroCount(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  set_slot:
    slot: "hotbar_1"
`)
	set := e.Action.(SetSlot)
	assert.Empty(t, set.Item)
	assert.Zero(t, set.Count)
}

func TestTimelineEntry_DecodeSelectHotbar(t *testing.T) {
	e := decodeEntry(t, `
tick: 0
action:
  select_hotbar: {slot: 4}
`)
	assert.Equal(t, SelectHotbar{Slot: 4}, e.Action)
}

func TestTimelineEntry_UnknownActionKind(t *testing.T) {
	var e TimelineEntry
	err := yaml.Unmarshal([]byte(`
tick: 0
action:
  teleport: {pos: [0, 0, 0]}
`), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown action type "teleport"`)
}

func TestTimelineEntry_MissingAction(t *testing.T) {
	var e TimelineEntry
	err := yaml.Unmarshal([]byte(`tick: 7`), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action is required")
}

func TestTimelineEntry_MultiKeyAction(t *testing.T) {
	var e TimelineEntry
	err := yaml.Unmarshal([]byte(`
tick: 0
action:
  remove: {pos: [0, 0, 0]}
  place: {pos: [0, 0, 0], block: {id: "x"}}
`), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one key")
}

func TestAction_OffsetBy(t *testing.T) {
	d := BlockPos{10, 0, -10}

	place := Place{Pos: BlockPos{1, 64, 1}, Block: NewBlock("minecraft:stone")}
	assert.Equal(t, BlockPos{11, 64, -9}, place.OffsetBy(d).(Place).Pos)

	fill := Fill{Region: [2]BlockPos{{0, 64, 0}, {2, 64, 2}}, Block: NewBlock("x")}
	shifted := fill.OffsetBy(d).(Fill)
	assert.Equal(t, BlockPos{10, 64, -10}, shifted.Region[0])
	assert.Equal(t, BlockPos{12, 64, -8}, shifted.Region[1])

	a := Assert{Checks: []Check{{Pos: BlockPos{5, 64, 5}, Expect: NewBlock("x")}}}
	assert.Equal(t, BlockPos{15, 64, -5}, a.OffsetBy(d).(Assert).Checks[0].Pos)

	use := UseItemOn{Pos: BlockPos{0, 64, 0}, Face: FaceTop}
	assert.Equal(t, BlockPos{10, 64, -10}, use.OffsetBy(d).(UseItemOn).Pos)
}

func TestAction_OffsetBy_DoesNotMutateOriginal(t *testing.T) {
	original := Assert{Checks: []Check{{Pos: BlockPos{1, 1, 1}, Expect: NewBlock("x")}}}
	_ = original.OffsetBy(BlockPos{100, 100, 100})
	assert.Equal(t, BlockPos{1, 1, 1}, original.Checks[0].Pos)

	pe := PlaceEach{Blocks: []Placement{{Pos: BlockPos{2, 2, 2}, Block: NewBlock("x")}}}
	_ = pe.OffsetBy(BlockPos{100, 100, 100})
	assert.Equal(t, BlockPos{2, 2, 2}, pe.Blocks[0].Pos)
}

func TestAction_OffsetBy_PositionlessActions(t *testing.T) {
	d := BlockPos{1, 2, 3}
	set := SetSlot{Slot: Hotbar1, Item: "x", Count: 1}
	assert.Equal(t, Action(set), set.OffsetBy(d))

	sel := SelectHotbar{Slot: 3}
	assert.Equal(t, Action(sel), sel.OffsetBy(d))
}
