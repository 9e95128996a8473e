package runner

import (
	"fmt"

	"github.com/flintsteel/flintsteel/internal/backend"
	"github.com/flintsteel/flintsteel/internal/spec"
)

// execContext is the per-test execution state the dispatcher mutates: the
// world under test and the lazily created player.
type execContext struct {
	world  backend.World
	player backend.Player
	runner *Runner
	test   string
}

// getPlayer returns the test player, creating it on first use. The
// player handle lives for the whole test; it is never recreated.
func (c *execContext) getPlayer() backend.Player {
	if c.player == nil {
		c.player = c.world.CreatePlayer()
	}
	return c.player
}

// setBlock writes a block and applies the skip-and-warn policy for
// unknown identifiers: a single unrecognized block must not abort the
// whole test batch.
func (c *execContext) setBlock(pos spec.BlockPos, block spec.Block) {
	if err := c.world.SetBlock(pos, block); err != nil {
		c.runner.log.Warn("block write skipped",
			"test", c.test,
			"pos", pos.String(),
			"block", block.ID,
			"error", err,
		)
	}
}

// setSlot writes an inventory slot with the same skip-and-warn policy.
func (c *execContext) setSlot(slot spec.PlayerSlot, item *spec.Item) {
	if err := c.getPlayer().SetSlot(slot, item); err != nil {
		id := ""
		if item != nil {
			id = item.ID
		}
		c.runner.log.Warn("slot write skipped",
			"test", c.test,
			"slot", string(slot),
			"item", id,
			"error", err,
		)
	}
}

// executeAction dispatches one scheduled action. For Assert actions the
// returned outcome is non-nil; all other actions yield nil.
//
// The type switch is exhaustive over the closed Action set; an
// unrecognized variant is a programming error.
func (c *execContext) executeAction(action spec.Action, tick int) *AssertionResult {
	switch act := action.(type) {
	case spec.Place:
		c.setBlock(act.Pos, act.Block)

	case spec.PlaceEach:
		// Last write wins on duplicate coordinates.
		for _, placement := range act.Blocks {
			c.setBlock(placement.Pos, placement.Block)
		}

	case spec.Fill:
		// Normalize possibly inverted corners into an inclusive box and
		// fill with single-coordinate writes so every position inherits
		// the backend's per-write side effects.
		min, max := normalizeRegion(act.Region)
		for x := min[0]; x <= max[0]; x++ {
			for y := min[1]; y <= max[1]; y++ {
				for z := min[2]; z <= max[2]; z++ {
					c.setBlock(spec.BlockPos{x, y, z}, act.Block)
				}
			}
		}

	case spec.Remove:
		c.setBlock(act.Pos, spec.NewBlock(backend.AirID))

	case spec.Assert:
		return c.executeAssert(act, tick)

	case spec.UseItemOn:
		player := c.getPlayer()
		// Simple mode: an explicit item goes into hotbar 1 and is
		// selected before the interaction.
		if act.Item != "" {
			item := spec.NewItem(act.Item)
			c.setSlot(spec.Hotbar1, &item)
			player.SelectHotbar(1)
		}
		player.UseItemOn(act.Pos, act.Face)

	case spec.SetSlot:
		if act.Item == "" {
			c.setSlot(act.Slot, nil)
		} else {
			c.setSlot(act.Slot, &spec.Item{ID: act.Item, Count: act.Count})
		}

	case spec.SelectHotbar:
		// Out-of-range values are ignored by the contract.
		c.getPlayer().SelectHotbar(act.Slot)

	default:
		c.runner.log.Error("unhandled action variant",
			"test", c.test,
			"action", fmt.Sprintf("%T", action),
		)
	}

	return nil
}

// executeAssert evaluates every check of an assert. The first mismatch
// fails the whole assert for this tick.
func (c *execContext) executeAssert(act spec.Assert, tick int) *AssertionResult {
	for _, check := range act.Checks {
		actual := c.world.GetBlock(check.Pos)
		if blockMatches(actual, check.Expect) {
			continue
		}

		pos := check.Pos
		expected := expectedData(check.Expect).String()
		got := actual.String()
		return &AssertionResult{
			Tick:     tick,
			Position: &pos,
			Expected: expected,
			Actual:   got,
			Message: fmt.Sprintf("block mismatch at %s: expected %s, got %s",
				pos, expected, got),
		}
	}

	outcome := passed(tick)
	return &outcome
}

// normalizeRegion orders two corners into component-wise (min, max).
func normalizeRegion(region [2]spec.BlockPos) (spec.BlockPos, spec.BlockPos) {
	var min, max spec.BlockPos
	for axis := 0; axis < 3; axis++ {
		a, b := region[0][axis], region[1][axis]
		if a <= b {
			min[axis], max[axis] = a, b
		} else {
			min[axis], max[axis] = b, a
		}
	}
	return min, max
}
