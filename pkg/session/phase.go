package session

import "fmt"

// Phase is the stage of the game, it decides which taps are legal
type Phase int

// Phase constants
const (
	PhaseIdle Phase = iota
	PhaseManualSetup
	PhaseMemorizing
	PhasePracticeReview
)

var phaseNames = []string{"idle", "manualSetup", "memorizing", "practiceReview"}

func (p Phase) String() string {
	if p < PhaseIdle || p > PhasePracticeReview {
		return fmt.Sprintf("phase(%d)", int(p))
	}

	return phaseNames[p]
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// interactive phases allow cards to be selected and moved
func (p Phase) interactive() bool {
	return p == PhaseManualSetup || p == PhaseMemorizing
}
