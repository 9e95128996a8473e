// Package timeline merges test specifications into one deterministic
// per-tick action schedule. Each participating spec may be spatially
// offset so that several tests can share a world without coordinate
// collisions.
package timeline

import (
	"sort"

	"github.com/flintsteel/flintsteel/internal/spec"
)

// Input is one (specification, spatial offset) pair to aggregate.
type Input struct {
	Spec   *spec.TestSpec
	Offset spec.BlockPos
}

// Entry is one scheduled action inside a tick bucket.
type Entry struct {
	// SpecIndex is the position of the contributing spec in the
	// aggregation input. Lower indices are applied first within a tick.
	SpecIndex int

	// ValueIndex is the entry's position in its source spec's timeline.
	ValueIndex int

	// Action is the scheduled action with the spec's offset applied.
	Action spec.Action
}

// Aggregate is the merged, tick-indexed schedule. Built once per run
// batch and immutable afterwards.
//
// INVARIANT: entries within a tick bucket preserve merge input order:
// across specs by input position, within a spec by timeline order. The
// same input always produces identical bucket contents and ordering;
// nothing here iterates an unordered structure.
type Aggregate struct {
	buckets map[int][]Entry
	ticks   []int
	maxTick int
}

// Build merges the ordered inputs into an aggregate. Specs with empty
// timelines are valid zero-length participants. Tick validity (ticks are
// non-negative) is the producer's responsibility; Build assumes validated
// input.
func Build(inputs []Input) *Aggregate {
	a := &Aggregate{
		buckets: make(map[int][]Entry),
	}

	for specIdx, input := range inputs {
		for valueIdx, entry := range input.Spec.Timeline {
			a.buckets[entry.Tick] = append(a.buckets[entry.Tick], Entry{
				SpecIndex:  specIdx,
				ValueIndex: valueIdx,
				Action:     entry.Action.OffsetBy(input.Offset),
			})
			if entry.Tick > a.maxTick {
				a.maxTick = entry.Tick
			}
		}
	}

	a.ticks = make([]int, 0, len(a.buckets))
	for tick := range a.buckets {
		a.ticks = append(a.ticks, tick)
	}
	sort.Ints(a.ticks)

	return a
}

// Single builds a zero-offset aggregate for one spec, as the runner uses
// per test.
func Single(s *spec.TestSpec) *Aggregate {
	return Build([]Input{{Spec: s}})
}

// At returns the scheduled entries for a tick in bucket order, or nil if
// the tick is empty. Callers must not mutate the returned slice.
func (a *Aggregate) At(tick int) []Entry {
	return a.buckets[tick]
}

// Ticks returns the occupied ticks in increasing order. Callers must not
// mutate the returned slice.
func (a *Aggregate) Ticks() []int {
	return a.ticks
}

// MaxTick returns the highest tick referenced by any merged entry, or 0
// for an empty aggregate.
func (a *Aggregate) MaxTick() int {
	return a.maxTick
}

// Len returns the total number of scheduled entries.
func (a *Aggregate) Len() int {
	n := 0
	for _, bucket := range a.buckets {
		n += len(bucket)
	}
	return n
}
