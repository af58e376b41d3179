package layout

import (
	"karuta-server/internal/rng"
)

// SlotCapacity is the soft limit of cards per slot for the automatic layout
const SlotCapacity = 5

// Place lays out ids on a side using the tiered heuristic
// The right column receives ceil(n/2) cards as long as capacities allow.
// Slots are appended to, not cleared.
func (f *Field) Place(side Side, ids []int, g rng.Generator) {
	f.place(side, ids, g, 0, (len(ids)+1)/2)
}

// place runs the heuristic with right cards already counted in the right
// column and target as the number the right column should reach
func (f *Field) place(side Side, ids []int, g rng.Generator, right, target int) {
	toPlace := make([]int, len(ids))
	copy(toPlace, ids)
	rng.Shuffle(g, toPlace)

	key := func(row Row, column Column) SlotKey {
		return SlotKey{Side: side, Row: row, Column: column}
	}

	// first open slot in order; the last one takes the overflow
	firstOpen := func(keys ...SlotKey) SlotKey {
		for _, k := range keys[:len(keys)-1] {
			if f.Len(k) < SlotCapacity {
				return k
			}
		}

		return keys[len(keys)-1]
	}

	tiers := Partition(toPlace)

	for i, id := range tiers.A {
		if i%2 == 0 && right < target {
			f.Append(key(Bottom, Right), id)
			right++
		} else {
			f.Append(key(Bottom, Left), id)
		}
	}

	for _, id := range tiers.B {
		if right < target {
			f.Append(firstOpen(key(Bottom, Right), key(Mid, Right)), id)
			right++
		} else {
			f.Append(key(Mid, Left), id)
		}
	}

	for _, id := range tiers.C {
		if right < target {
			f.Append(firstOpen(key(Top, Right), key(Mid, Right), key(Bottom, Right)), id)
			right++
		} else {
			f.Append(firstOpen(key(Top, Left), key(Mid, Left), key(Bottom, Left)), id)
		}
	}
}

// PlaceWithPositions puts every card that has a saved position into that
// slot, then lays out the remainder with the automatic heuristic
// The column balance covers all of ids, saved cards included.
func (f *Field) PlaceWithPositions(side Side, ids []int, positions map[int]Position, g rng.Generator) {
	rest := make([]int, 0, len(ids))
	right := 0
	for _, id := range ids {
		pos, found := positions[id]
		if !found || !pos.Key(side).Valid() {
			rest = append(rest, id)
			continue
		}

		f.Append(pos.Key(side), id)
		if pos.Column == Right {
			right++
		}
	}

	f.place(side, rest, g, right, (len(ids)+1)/2)
}
