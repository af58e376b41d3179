package session

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned when the own-side layout mode is not recognized
var ErrInvalidMode = errors.New("layout mode must be auto, manual or custom")

// ErrInvalidMinutes is returned when the memorization duration is out of range
var ErrInvalidMinutes = fmt.Errorf("minutes must be between 1 and %d", MaxMinutes)
