package session

import (
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/layout"
)

// NotStartedMessage is shown in place of the blank list before the first deal
const NotStartedMessage = "The game has not started yet"

// CardView is a card as it should be rendered
type CardView struct {
	*catalog.Card
	FaceDown bool `json:"faceDown"`
	Selected bool `json:"selected"`
}

// State is everything a client needs to render the session
// These values are safe to send to the client
type State struct {
	Phase          Phase                  `json:"phase"`
	Options        Options                `json:"options"`
	Instruction    string                 `json:"instruction"`
	Clock          string                 `json:"clock"`
	DurationLocked bool                   `json:"durationLocked"`
	Slots          map[string][]*CardView `json:"slots"`
	Hand           []*CardView            `json:"hand"`
	Selected       *Selection             `json:"selected"`
	BlankCount     int                    `json:"blankCount"`
	BlankVisible   bool                   `json:"blankVisible"`
	Blank          []*CardView            `json:"blank,omitempty"`
	BlankMessage   string                 `json:"blankMessage,omitempty"`
}

// State returns a snapshot of the session
func (s *Session) State() (*State, error) {
	st := &State{
		Phase:          s.phase,
		Options:        s.options,
		Instruction:    s.instruction(),
		Clock:          s.timer.display,
		DurationLocked: s.timer.running,
		Slots:          make(map[string][]*CardView),
		Selected:       s.Selected(),
		BlankVisible:   s.blankVisible,
	}

	for _, side := range []layout.Side{layout.Own, layout.Opponent} {
		for _, key := range layout.Keys(side) {
			views, err := s.views(s.field.Slot(key))
			if err != nil {
				return nil, err
			}

			st.Slots[key.String()] = views
		}
	}

	hand, err := s.views(s.hand)
	if err != nil {
		return nil, err
	}
	st.Hand = hand

	if s.deal != nil {
		st.BlankCount = len(s.deal.Blank)
	}

	if s.blankVisible {
		if s.deal == nil {
			st.BlankMessage = NotStartedMessage
		} else if st.Blank, err = s.views(s.deal.Blank); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func (s *Session) views(ids []int) ([]*CardView, error) {
	cards, err := s.catalog.Lookup(ids)
	if err != nil {
		return nil, err
	}

	views := make([]*CardView, len(cards))
	for i, card := range cards {
		views[i] = &CardView{
			Card:     card,
			FaceDown: s.faceDown[card.ID],
			Selected: s.selection != nil && s.selection.CardID == card.ID,
		}
	}

	return views, nil
}
