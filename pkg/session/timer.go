package session

import "time"

// EndMarker replaces the clock once the countdown has finished
const EndMarker = "finished"

type countdown struct {
	remaining  int
	running    bool
	generation int
	display    string
}

// startTimer clears any running countdown and starts a new one
func (s *Session) startTimer(seconds int) {
	s.stopTimer()
	s.timer.generation++
	s.timer.remaining = seconds
	s.timer.running = true
	s.timer.display = formatClock(seconds)
	s.setPhase(PhaseMemorizing)
}

func (s *Session) stopTimer() {
	s.timer.running = false
}

// TimerRunning returns true while the memorization countdown is active
func (s *Session) TimerRunning() bool {
	return s.timer.running
}

// TimerGeneration increments every time a countdown is started
// A ticker belonging to an older generation must be discarded.
func (s *Session) TimerGeneration() int {
	return s.timer.generation
}

// Clock returns the displayed time, or EndMarker
func (s *Session) Clock() string {
	return s.timer.display
}

// Interval is how often Tick must be called while the timer runs
func (s *Session) Interval() time.Duration {
	return time.Second
}

// Tick advances the countdown by one second
// Returns true if the state changed. When the remaining time drops below
// zero the countdown stops and the session enters practice review.
func (s *Session) Tick() bool {
	if !s.timer.running {
		return false
	}

	s.timer.display = formatClock(s.timer.remaining)
	s.timer.remaining--
	if s.timer.remaining < 0 {
		s.stopTimer()
		s.timer.display = EndMarker
		s.enterPractice()
		s.log.Info("memorization finished")
	}

	return true
}
