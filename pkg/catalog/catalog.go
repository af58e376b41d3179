package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Size is the number of cards in a complete catalog
const Size = 100

// ErrUnknownCard is returned when a card id is not in the catalog
var ErrUnknownCard = errors.New("unknown card")

// CountError is returned when the document does not hold exactly Size records
type CountError struct {
	Got int
}

func (c CountError) Error() string {
	return fmt.Sprintf("expected %d cards, got %d", Size, c.Got)
}

// DuplicateError is returned when two records share an id
type DuplicateError struct {
	ID int
}

func (d DuplicateError) Error() string {
	return fmt.Sprintf("duplicate card id %d", d.ID)
}

// Card is a single karuta card
// Kami is the upper verse (read aloud), Shimo is the lower verse printed on the card
type Card struct {
	ID        int    `json:"id" validate:"min=1,max=100"`
	Kami      string `json:"kami" validate:"required"`
	Shimo     string `json:"shimo" validate:"required"`
	ImagePath string `json:"image_path"`
}

// String returns a short label for logs and terminal output
func (c *Card) String() string {
	return fmt.Sprintf("[%d] %s", c.ID, c.Shimo)
}

// Catalog is the immutable set of cards, indexed by id
type Catalog struct {
	cards []*Card
	byID  map[int]*Card
}

var validate = validator.New()

// New validates cards and returns a catalog
// The catalog is sorted by id
func New(cards []*Card) (*Catalog, error) {
	if len(cards) != Size {
		return nil, CountError{Got: len(cards)}
	}

	byID := make(map[int]*Card, len(cards))
	sorted := make([]*Card, 0, len(cards))
	for i, card := range cards {
		if card == nil {
			return nil, fmt.Errorf("record %d is empty", i)
		}

		if err := validate.Struct(card); err != nil {
			return nil, fmt.Errorf("record %d (id %d): %w", i, card.ID, err)
		}

		if _, found := byID[card.ID]; found {
			return nil, DuplicateError{ID: card.ID}
		}

		c := *card
		byID[c.ID] = &c
		sorted = append(sorted, &c)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	return &Catalog{
		cards: sorted,
		byID:  byID,
	}, nil
}

// Load decodes a JSON array of card records
func Load(r io.Reader) (*Catalog, error) {
	var cards []*Card
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("could not parse card data: %w", err)
	}

	return New(cards)
}

// LoadFile loads the catalog from a JSON file
func LoadFile(filename string) (*Catalog, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// Card returns the card with the given id
func (c *Catalog) Card(id int) (*Card, error) {
	card, found := c.byID[id]
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCard, id)
	}

	return card, nil
}

// Cards returns a copy of all cards in id order
func (c *Catalog) Cards() []*Card {
	cards := make([]*Card, len(c.cards))
	copy(cards, c.cards)
	return cards
}

// IDs returns every card id in ascending order
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.cards))
	for i, card := range c.cards {
		ids[i] = card.ID
	}

	return ids
}

// Lookup resolves ids to cards, preserving order
func (c *Catalog) Lookup(ids []int) ([]*Card, error) {
	cards := make([]*Card, len(ids))
	for i, id := range ids {
		card, err := c.Card(id)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// Generated returns a catalog of placeholder cards
// This is suitable for testing and for dealing without a data file
func Generated() *Catalog {
	cards := make([]*Card, Size)
	for i := range cards {
		id := i + 1
		cards[i] = &Card{
			ID:        id,
			Kami:      fmt.Sprintf("kami %d", id),
			Shimo:     fmt.Sprintf("shimo %d", id),
			ImagePath: fmt.Sprintf("images/%03d.png", id),
		}
	}

	c, err := New(cards)
	if err != nil {
		panic(err)
	}

	return c
}
