package session

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"karuta-server/internal/rng"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/layout"
)

// Selection is the card picked up by the first tap, and where it came from
type Selection struct {
	CardID int         `json:"cardId"`
	Origin ContainerID `json:"origin"`
}

// Session is one game table: the field, the selection, the countdown and the
// blank list. It is not safe for concurrent use, all calls must come from the
// same run loop.
type Session struct {
	catalog   *catalog.Catalog
	rng       rng.Generator
	positions map[int]layout.Position
	log       logrus.FieldLogger

	options Options
	phase   Phase
	onTap   tapHandler

	field     *layout.Field
	hand      []int
	selection *Selection
	faceDown  map[int]bool

	deal         *layout.Deal
	blankVisible bool

	timer countdown
}

// New returns an idle session
// positions are the saved custom positions used by ModeCustom, it may be nil
func New(cat *catalog.Catalog, g rng.Generator, positions map[int]layout.Position) *Session {
	if positions == nil {
		positions = map[int]layout.Position{}
	}

	s := &Session{
		catalog:   cat,
		rng:       g,
		positions: positions,
		log:       logrus.StandardLogger(),
		options:   DefaultOptions(),
		field:     layout.NewField(),
		faceDown:  make(map[int]bool),
	}

	s.setPhase(PhaseIdle)
	s.timer.display = formatClock(s.options.Minutes * 60)
	return s
}

// SetLogger replaces the logger, used to tag a session with its table
func (s *Session) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// SetPositions replaces the saved custom positions
func (s *Session) SetPositions(positions map[int]layout.Position) {
	s.positions = positions
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Selected returns the current selection, or nil
func (s *Session) Selected() *Selection {
	if s.selection == nil {
		return nil
	}

	sel := *s.selection
	return &sel
}

// Field exposes the slot registry for read access
func (s *Session) Field() *layout.Field {
	return s.field
}

// Hand returns the cards waiting to be placed
func (s *Session) Hand() []int {
	return append([]int{}, s.hand...)
}

// IsFaceDown returns true if the card is hidden for practice
func (s *Session) IsFaceDown(cardID int) bool {
	return s.faceDown[cardID]
}

// OwnPositions returns the position of every card on the own side
func (s *Session) OwnPositions() map[int]layout.Position {
	return s.field.Positions(layout.Own)
}

// Start deals a new game
// Invalid options are rejected before anything changes.
func (s *Session) Start(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	deal, err := layout.NewDeal(s.catalog.IDs(), opts.CardCount, s.rng)
	if err != nil {
		return err
	}

	s.stopTimer()
	s.cancelSelection()

	s.options = opts
	s.deal = deal
	s.blankVisible = false
	s.hand = nil
	s.faceDown = make(map[int]bool)
	s.field.Reset()
	s.timer.display = formatClock(opts.Minutes * 60)
	s.setPhase(PhaseIdle)

	s.field.Place(layout.Opponent, deal.Opponent, s.rng)

	switch opts.Mode {
	case ModeManual:
		s.hand = append([]int{}, deal.Own...)
		s.setPhase(PhaseManualSetup)
	case ModeCustom:
		s.field.PlaceWithPositions(layout.Own, deal.Own, s.positions, s.rng)
		s.startTimer(opts.Minutes * 60)
	default:
		s.field.Place(layout.Own, deal.Own, s.rng)
		s.startTimer(opts.Minutes * 60)
	}

	s.log.WithFields(logrus.Fields{
		"cardCount": opts.CardCount,
		"mode":      opts.Mode,
		"minutes":   opts.Minutes,
	}).Info("dealt new game")

	return nil
}

// ToggleBlank shows or hides the list of undealt cards
func (s *Session) ToggleBlank() bool {
	s.blankVisible = !s.blankVisible
	return s.blankVisible
}

func (s *Session) setPhase(p Phase) {
	if s.phase != p {
		s.log.WithField("from", s.phase).WithField("to", p).Debug("phase changed")
	}

	s.phase = p
	s.onTap = tapHandlers[p]
}

func (s *Session) cancelSelection() {
	s.selection = nil
}

// enterPractice hides every dealt card and hands taps to the flipper
func (s *Session) enterPractice() {
	s.cancelSelection()
	for _, side := range []layout.Side{layout.Own, layout.Opponent} {
		for _, id := range s.field.Cards(side) {
			s.faceDown[id] = true
		}
	}

	s.setPhase(PhasePracticeReview)
}

func (s *Session) instruction() string {
	switch {
	case s.selection != nil:
		return "Tap where to place the card (tap the same card or an empty spot to cancel)"
	case s.phase == PhaseManualSetup:
		return "Tap a card in your hand to select it, then tap your field or the hand to place it"
	case s.phase == PhaseMemorizing:
		return "Memorizing: tap a card on your side to select it, then tap where to move it"
	case s.phase == PhasePracticeReview:
		return "Practice: tap a face-down card to check it"
	default:
		return "Press start"
	}
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
