package layout

// oneCharIDs are the seven cards decided by their first syllable
var oneCharIDs = map[int]bool{87: true, 18: true, 57: true, 22: true, 70: true, 81: true, 77: true}

// oyamaIDs are the long "big mountain" cards
var oyamaIDs = map[int]bool{31: true, 64: true, 15: true, 50: true, 76: true, 11: true}

// Tier is a placement priority category
type Tier int

// Tier constants
const (
	TierA Tier = iota // decided by one syllable
	TierB             // oyama fuda
	TierC             // everything else
)

// TierOf returns the tier of a card id
func TierOf(id int) Tier {
	switch {
	case oneCharIDs[id]:
		return TierA
	case oyamaIDs[id]:
		return TierB
	default:
		return TierC
	}
}

// Tiers is a partition of card ids
type Tiers struct {
	A []int
	B []int
	C []int
}

// Partition splits ids into tiers, preserving order within each tier
func Partition(ids []int) Tiers {
	var t Tiers
	for _, id := range ids {
		switch TierOf(id) {
		case TierA:
			t.A = append(t.A, id)
		case TierB:
			t.B = append(t.B, id)
		default:
			t.C = append(t.C, id)
		}
	}

	return t
}
