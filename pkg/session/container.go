package session

import (
	"karuta-server/pkg/layout"
)

// ContainerID names anything a card can sit in
// Slots use the slot key ("j-0-left"), the staging area is Hand
type ContainerID string

// Hand is the staging area used while placing cards manually
const Hand ContainerID = "hand"

// SlotContainer returns the container id for a slot
func SlotContainer(key layout.SlotKey) ContainerID {
	return ContainerID(key.String())
}

// Slot returns the slot key, if the container is a slot
func (c ContainerID) Slot() (layout.SlotKey, bool) {
	key, err := layout.ParseSlotKey(string(c))
	if err != nil {
		return layout.SlotKey{}, false
	}

	return key, true
}

// cards returns a copy of the ids in a container
func (s *Session) cards(c ContainerID) []int {
	if c == Hand {
		return append([]int{}, s.hand...)
	}

	if key, ok := c.Slot(); ok {
		return s.field.Slot(key)
	}

	return nil
}

// locate returns the container holding a card
func (s *Session) locate(cardID int) (ContainerID, bool) {
	if key, _, found := s.field.Locate(cardID); found {
		return SlotContainer(key), true
	}

	for _, id := range s.hand {
		if id == cardID {
			return Hand, true
		}
	}

	return "", false
}

func (s *Session) remove(cardID int) {
	if _, _, found := s.field.Remove(cardID); found {
		return
	}

	for i, id := range s.hand {
		if id == cardID {
			s.hand = append(s.hand[:i:i], s.hand[i+1:]...)
			return
		}
	}
}

func (s *Session) insert(c ContainerID, index int, cardID int) {
	if c == Hand {
		if index < 0 || index >= len(s.hand) {
			s.hand = append(s.hand, cardID)
			return
		}

		s.hand = append(s.hand, 0)
		copy(s.hand[index+1:], s.hand[index:])
		s.hand[index] = cardID
		return
	}

	if key, ok := c.Slot(); ok {
		s.field.Insert(key, index, cardID)
	}
}
