package session

import (
	"karuta-server/pkg/layout"
)

// TapTarget is what the user tapped on
type TapTarget string

// TapTarget constants
const (
	TargetElsewhere TapTarget = ""
	TargetCard      TapTarget = "card"
	TargetContainer TapTarget = "container"
	TargetRowGap    TapTarget = "rowGap"
)

// Tap is a single pointer tap
type Tap struct {
	Target TapTarget `json:"target"`
	// CardID is set when a card was tapped
	CardID int `json:"cardId"`
	// Container is set when a container was tapped
	Container ContainerID `json:"container"`
	// Side and Row identify the row when the gap between its columns was tapped
	Side layout.Side `json:"side"`
	Row  layout.Row  `json:"row"`
	// Ratio is the horizontal position of the tap within the row, 0 to 1
	Ratio float64 `json:"ratio"`
	// X is the horizontal tap coordinate
	X float64 `json:"x"`
	// Midpoints are the horizontal midpoints of the cards rendered in the
	// destination container, keyed by card id
	Midpoints map[int]float64 `json:"midpoints"`
}

type tapHandler func(s *Session, tap Tap) bool

// only one handler is active at a time, setPhase swaps it
var tapHandlers map[Phase]tapHandler

func init() {
	tapHandlers = map[Phase]tapHandler{
		PhaseManualSetup:    placementTap,
		PhaseMemorizing:     placementTap,
		PhasePracticeReview: flipTap,
	}
}

// HandleTap interprets a tap according to the current phase
// Returns true if the state changed. Taps that mean nothing in the current
// phase are ignored.
func (s *Session) HandleTap(tap Tap) bool {
	if s.onTap == nil {
		return false
	}

	return s.onTap(s, tap)
}

func placementTap(s *Session, tap Tap) bool {
	if s.selection == nil {
		return s.selectCard(tap)
	}

	if tap.Target == TargetCard && tap.CardID == s.selection.CardID {
		s.cancelSelection()
		return true
	}

	dest, ok := s.destination(tap)
	if !ok || !s.canDropInto(dest) {
		s.cancelSelection()
		return true
	}

	s.moveSelected(dest, tap)
	s.checkManualPlacementComplete()
	return true
}

func (s *Session) selectCard(tap Tap) bool {
	if tap.Target != TargetCard || !s.phase.interactive() {
		return false
	}

	origin, found := s.locate(tap.CardID)
	if !found || s.faceDown[tap.CardID] {
		return false
	}

	if key, isSlot := origin.Slot(); isSlot && key.Side == layout.Opponent {
		return false
	}

	s.selection = &Selection{CardID: tap.CardID, Origin: origin}
	return true
}

// destination resolves the container a tap is aimed at
func (s *Session) destination(tap Tap) (ContainerID, bool) {
	switch tap.Target {
	case TargetContainer:
		if tap.Container == Hand {
			return Hand, true
		}

		if _, ok := tap.Container.Slot(); ok {
			return tap.Container, true
		}
	case TargetCard:
		return s.locate(tap.CardID)
	case TargetRowGap:
		column := layout.Right
		if tap.Ratio < 0.5 {
			column = layout.Left
		}

		key := layout.SlotKey{Side: tap.Side, Row: tap.Row, Column: column}
		if key.Valid() {
			return SlotContainer(key), true
		}
	}

	return "", false
}

func (s *Session) canDropInto(dest ContainerID) bool {
	if dest == Hand {
		return s.phase == PhaseManualSetup
	}

	key, ok := dest.Slot()
	if !ok || key.Side != layout.Own {
		return false
	}

	return s.phase == PhaseManualSetup || s.timer.running
}

// moveSelected inserts the selected card before the first other card in dest
// whose midpoint lies right of the tap
func (s *Session) moveSelected(dest ContainerID, tap Tap) {
	cardID := s.selection.CardID

	index := -1
	position := 0
	for _, id := range s.cards(dest) {
		if id == cardID {
			continue
		}

		if mid, found := tap.Midpoints[id]; found && tap.X < mid {
			index = position
			break
		}

		position++
	}

	s.remove(cardID)
	s.insert(dest, index, cardID)
	s.cancelSelection()
}

func (s *Session) checkManualPlacementComplete() {
	if s.phase != PhaseManualSetup || len(s.hand) > 0 {
		return
	}

	s.log.Debug("manual placement complete")
	s.startTimer(s.options.Minutes * 60)
}

// flipTap toggles a dealt card between face-down and face-up
func flipTap(s *Session, tap Tap) bool {
	if tap.Target != TargetCard || s.timer.running {
		return false
	}

	if _, _, found := s.field.Locate(tap.CardID); !found {
		return false
	}

	s.faceDown[tap.CardID] = !s.faceDown[tap.CardID]
	return true
}
