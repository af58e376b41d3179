package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Side is one half of the playing field
type Side int

// Side constants
const (
	Own Side = iota
	Opponent
)

// Row is a row of a side, counted from the center line outwards
type Row int

// Row constants
const (
	Top Row = iota
	Mid
	Bottom
)

// Rows is the number of rows per side
const Rows = 3

// Column is the left or right half of a row
type Column int

// Column constants
const (
	Left Column = iota
	Right
)

var sidePrefixes = map[Side]string{Own: "j", Opponent: "t"}
var rowNames = []string{"top", "mid", "bottom"}
var columnNames = []string{"left", "right"}

func (s Side) String() string {
	if s == Opponent {
		return "opponent"
	}

	return "own"
}

// MarshalText encodes the side by name
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts "own" or "opponent"
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "own":
		*s = Own
	case "opponent":
		*s = Opponent
	default:
		return fmt.Errorf("unknown side %q", string(b))
	}

	return nil
}

func (r Row) String() string {
	if r < Top || r > Bottom {
		return fmt.Sprintf("row(%d)", int(r))
	}

	return rowNames[r]
}

// MarshalText encodes the row by name
func (r Row) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the row name
func (r *Row) UnmarshalText(b []byte) error {
	for i, name := range rowNames {
		if name == string(b) {
			*r = Row(i)
			return nil
		}
	}

	return fmt.Errorf("unknown row %q", string(b))
}

func (c Column) String() string {
	if c == Right {
		return "right"
	}

	return "left"
}

// MarshalText encodes the column by name
func (c Column) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts "left" or "right"
func (c *Column) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*c = Left
	case "right":
		*c = Right
	default:
		return fmt.Errorf("unknown column %q", string(b))
	}

	return nil
}

// Position is a slot on a side, without the side
type Position struct {
	Row    Row    `json:"row"`
	Column Column `json:"column"`
}

// SlotKey addresses one of the six slots of a side
type SlotKey struct {
	Side   Side
	Row    Row
	Column Column
}

// Key returns the slot key for this position on a side
func (p Position) Key(side Side) SlotKey {
	return SlotKey{Side: side, Row: p.Row, Column: p.Column}
}

// Position drops the side of the key
func (k SlotKey) Position() Position {
	return Position{Row: k.Row, Column: k.Column}
}

// Valid returns true if all parts of the key are in range
func (k SlotKey) Valid() bool {
	return (k.Side == Own || k.Side == Opponent) &&
		k.Row >= Top && k.Row <= Bottom &&
		(k.Column == Left || k.Column == Right)
}

// String returns the key in the form "j-0-left"
func (k SlotKey) String() string {
	return fmt.Sprintf("%s-%d-%s", sidePrefixes[k.Side], int(k.Row), k.Column)
}

// MarshalText encodes the key as a string
func (k SlotKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseSlotKey parses the output of SlotKey.String()
func ParseSlotKey(s string) (SlotKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return SlotKey{}, fmt.Errorf("invalid slot %q", s)
	}

	var key SlotKey
	switch parts[0] {
	case "j":
		key.Side = Own
	case "t":
		key.Side = Opponent
	default:
		return SlotKey{}, fmt.Errorf("invalid slot %q", s)
	}

	row, err := strconv.Atoi(parts[1])
	if err != nil || row < int(Top) || row > int(Bottom) {
		return SlotKey{}, fmt.Errorf("invalid slot %q", s)
	}
	key.Row = Row(row)

	if err := key.Column.UnmarshalText([]byte(parts[2])); err != nil {
		return SlotKey{}, fmt.Errorf("invalid slot %q", s)
	}

	return key, nil
}

// Keys returns the six slot keys of a side in row order, left before right
func Keys(side Side) []SlotKey {
	keys := make([]SlotKey, 0, Rows*2)
	for row := Top; row <= Bottom; row++ {
		keys = append(keys, SlotKey{side, row, Left}, SlotKey{side, row, Right})
	}

	return keys
}
