package layout

// Field is the slot registry for both sides
// Each slot is an ordered list of card ids
type Field struct {
	slots map[SlotKey][]int
}

// NewField returns an empty field
func NewField() *Field {
	f := &Field{}
	f.Reset()
	return f
}

// Reset empties every slot
func (f *Field) Reset() {
	f.slots = make(map[SlotKey][]int, Rows*4)
	for _, side := range []Side{Own, Opponent} {
		for _, key := range Keys(side) {
			f.slots[key] = []int{}
		}
	}
}

// Slot returns a copy of the card ids in the slot
func (f *Field) Slot(key SlotKey) []int {
	ids := make([]int, len(f.slots[key]))
	copy(ids, f.slots[key])
	return ids
}

// Len returns the number of cards in the slot
func (f *Field) Len(key SlotKey) int {
	return len(f.slots[key])
}

// Append adds a card to the end of a slot
func (f *Field) Append(key SlotKey, id int) {
	f.slots[key] = append(f.slots[key], id)
}

// Insert adds a card at index within the slot
// An index out of range appends
func (f *Field) Insert(key SlotKey, index int, id int) {
	slot := f.slots[key]
	if index < 0 || index >= len(slot) {
		f.slots[key] = append(slot, id)
		return
	}

	slot = append(slot, 0)
	copy(slot[index+1:], slot[index:])
	slot[index] = id
	f.slots[key] = slot
}

// Locate finds the slot and index of a card
func (f *Field) Locate(id int) (SlotKey, int, bool) {
	for key, slot := range f.slots {
		for i, cardID := range slot {
			if cardID == id {
				return key, i, true
			}
		}
	}

	return SlotKey{}, -1, false
}

// Remove takes a card out of whichever slot holds it
func (f *Field) Remove(id int) (SlotKey, int, bool) {
	key, index, found := f.Locate(id)
	if !found {
		return SlotKey{}, -1, false
	}

	slot := f.slots[key]
	f.slots[key] = append(slot[:index:index], slot[index+1:]...)
	return key, index, true
}

// Cards returns every card on a side, in slot order
func (f *Field) Cards(side Side) []int {
	ids := make([]int, 0)
	for _, key := range Keys(side) {
		ids = append(ids, f.slots[key]...)
	}

	return ids
}

// ColumnCount returns how many cards are in a column of a side
func (f *Field) ColumnCount(side Side, column Column) int {
	count := 0
	for row := Top; row <= Bottom; row++ {
		count += len(f.slots[SlotKey{side, row, column}])
	}

	return count
}

// Positions returns the current position of every card on a side
func (f *Field) Positions(side Side) map[int]Position {
	positions := make(map[int]Position)
	for _, key := range Keys(side) {
		for _, id := range f.slots[key] {
			positions[id] = key.Position()
		}
	}

	return positions
}
