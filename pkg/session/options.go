package session

import (
	"karuta-server/pkg/layout"
)

// MaxMinutes is the longest memorization period that can be selected
const MaxMinutes = 60

// Mode is how the own side is laid out
type Mode string

// Mode constants
const (
	// ModeAuto uses the tiered automatic layout
	ModeAuto Mode = "auto"
	// ModeManual puts the own cards in the hand for the user to place
	ModeManual Mode = "manual"
	// ModeCustom uses saved custom positions, falling back to the automatic layout
	ModeCustom Mode = "custom"
)

// Options configure a game
type Options struct {
	CardCount int  `json:"cardCount"`
	Mode      Mode `json:"mode"`
	Minutes   int  `json:"minutes"`
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		CardCount: layout.MaxCardCount,
		Mode:      ModeAuto,
		Minutes:   15,
	}
}

// Validate returns the first problem with the options
func (o Options) Validate() error {
	if err := layout.ValidateCardCount(o.CardCount); err != nil {
		return err
	}

	switch o.Mode {
	case ModeAuto, ModeManual, ModeCustom:
	default:
		return ErrInvalidMode
	}

	if o.Minutes < 1 || o.Minutes > MaxMinutes {
		return ErrInvalidMinutes
	}

	return nil
}
