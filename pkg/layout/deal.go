package layout

import (
	"errors"
	"fmt"
	"sort"

	"karuta-server/internal/rng"
)

// MaxCardCount is the most cards that can be dealt to the field
const MaxCardCount = 50

// ErrInvalidCardCount is returned when the requested card count cannot be dealt
var ErrInvalidCardCount = fmt.Errorf("card count must be an even number between 2 and %d", MaxCardCount)

// ErrNotEnoughCards is returned when the catalog is smaller than the deal
var ErrNotEnoughCards = errors.New("not enough cards to deal")

// ValidateCardCount ensures n is even and within 2..MaxCardCount
func ValidateCardCount(n int) error {
	if n < 2 || n > MaxCardCount || n%2 != 0 {
		return ErrInvalidCardCount
	}

	return nil
}

// Deal is the result of splitting the catalog between the sides
type Deal struct {
	Own      []int `json:"own"`
	Opponent []int `json:"opponent"`
	// Blank are the cards dealt to neither side (kara-fuda), in ascending order
	Blank []int `json:"blank"`
}

// NewDeal shuffles ids and deals total cards, half to each side
func NewDeal(ids []int, total int, g rng.Generator) (*Deal, error) {
	if err := ValidateCardCount(total); err != nil {
		return nil, err
	}

	if len(ids) < total {
		return nil, ErrNotEnoughCards
	}

	shuffled := make([]int, len(ids))
	copy(shuffled, ids)
	rng.Shuffle(g, shuffled)

	half := total / 2
	d := &Deal{
		Own:      shuffled[:half:half],
		Opponent: shuffled[half:total:total],
		Blank:    append([]int{}, shuffled[total:]...),
	}

	sort.Ints(d.Blank)
	return d, nil
}
