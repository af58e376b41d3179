package room

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karuta-server/internal/rng"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/layout"
	"karuta-server/pkg/session"
	"karuta-server/pkg/teiichi"
)

func newPitBoss(t *testing.T) *PitBoss {
	store := teiichi.NewFileStore(filepath.Join(t.TempDir(), "teiichi.json"))
	p := NewPitBoss(catalog.Generated(), store, session.DefaultOptions())
	p.rng = rng.NewSeeded(1)
	return p
}

// expectResponse waits for the next response with the given key, skipping others
func expectResponse(t *testing.T, c *Client, key string) *Response {
	t.Helper()

	timeout := time.After(time.Second * 5)
	for {
		select {
		case msg := <-c.SendChan():
			res := msg.(*Response)
			if res.Key == key {
				return res
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", key)
			return nil
		}
	}
}

// expectState waits for a state that satisfies match
func expectState(t *testing.T, c *Client, match func(*session.State) bool) *session.State {
	t.Helper()

	timeout := time.After(time.Second * 5)
	for {
		select {
		case msg := <-c.SendChan():
			res := msg.(*Response)
			if res.Key != "state" {
				continue
			}

			if state := res.Data.(*session.State); match(state) {
				return state
			}
		case <-timeout:
			t.Fatal("timed out waiting for state")
			return nil
		}
	}
}

// inRunLoop executes fn on the dealer's run loop and waits for it
func inRunLoop(d *Dealer, fn func()) {
	done := make(chan bool)
	d.execInRunLoop <- func() {
		fn()
		close(done)
	}
	<-done
}

func start(cardCount, minutes int, mode session.Mode) *PayloadIn {
	return &PayloadIn{
		Action: "start",
		AdditionalData: AdditionalData{
			"cardCount": float64(cardCount),
			"minutes":   float64(minutes),
			"mode":      string(mode),
		},
		Context: "start",
	}
}

func TestDealer_AddClient(t *testing.T) {
	d := NewDealer(newPitBoss(t), "table")
	c := NewClient(nil, "table")
	c2 := NewClient(nil, "table")

	d.AddClient(c)
	d.AddClient(c2)
	assert.Len(t, d.Clients(), 2)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestDealer_StartAndTap(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(newPitBoss(t), "table")
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, "table")
	d.AddClient(c)

	state := expectState(t, c, func(*session.State) bool { return true })
	a.Equal(session.PhaseIdle, state.Phase)

	d.ReceivedMessage(c, start(21, 1, session.ModeAuto))
	res := expectResponse(t, c, "error")
	a.Equal(layout.ErrInvalidCardCount.Error(), res.Value)
	a.Equal("start", res.Context)

	d.ReceivedMessage(c, start(20, 1, session.ModeAuto))
	a.Equal("OK", expectResponse(t, c, "status").Value)
	state = expectState(t, c, func(s *session.State) bool { return s.Phase == session.PhaseMemorizing })
	a.True(state.DurationLocked)
	a.Equal("01:00", state.Clock)

	var own int
	for _, key := range layout.Keys(layout.Own) {
		if views := state.Slots[key.String()]; len(views) > 0 {
			own = views[0].ID
			break
		}
	}
	require.NotZero(t, own)

	d.ReceivedMessage(c, &PayloadIn{Action: "tap", Tap: &session.Tap{Target: session.TargetCard, CardID: own}})
	state = expectState(t, c, func(s *session.State) bool { return s.Selected != nil })
	a.Equal(own, state.Selected.CardID)

	d.ReceivedMessage(c, &PayloadIn{Action: "toggleBlank"})
	state = expectState(t, c, func(s *session.State) bool { return s.BlankVisible })
	a.Len(state.Blank, 80)

	d.ReceivedMessage(c, &PayloadIn{Action: "tap", Context: "x"})
	a.Equal("tap is missing", expectResponse(t, c, "error").Value)

	d.ReceivedMessage(c, &PayloadIn{Action: "dance"})
	a.Equal("unknown action", expectResponse(t, c, "error").Value)

	d.ReceivedMessage(c, &PayloadIn{Action: "state", Context: "ctx"})
	res = expectResponse(t, c, "state")
	a.Equal("ctx", res.Context)
}

func TestDealer_CountdownRunsToPractice(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(newPitBoss(t), "table")
	d.interval = time.Millisecond
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, "table")
	d.AddClient(c)

	d.ReceivedMessage(c, start(10, 1, session.ModeAuto))
	state := expectState(t, c, func(s *session.State) bool { return s.Phase == session.PhasePracticeReview })
	a.Equal(session.EndMarker, state.Clock)
	a.False(state.DurationLocked)

	for _, views := range state.Slots {
		for _, view := range views {
			a.True(view.FaceDown, "card %d", view.ID)
		}
	}

	inRunLoop(d, func() {
		a.Nil(d.ticker, "the ticker stops with the countdown")
	})
}

func TestDealer_RestartReplacesTicker(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(newPitBoss(t), "table")
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, "table")
	d.AddClient(c)

	d.ReceivedMessage(c, start(10, 5, session.ModeAuto))
	expectResponse(t, c, "status")

	var first *time.Ticker
	inRunLoop(d, func() {
		a.NotNil(d.ticker)
		a.Equal(1, d.tickerGeneration)
		first = d.ticker
	})

	d.ReceivedMessage(c, start(10, 5, session.ModeAuto))
	expectResponse(t, c, "status")

	inRunLoop(d, func() {
		a.NotNil(d.ticker)
		a.Equal(2, d.tickerGeneration)
		a.NotSame(first, d.ticker)
	})

	// manual setup has no countdown until the hand is empty
	d.ReceivedMessage(c, start(10, 5, session.ModeManual))
	expectResponse(t, c, "status")

	inRunLoop(d, func() {
		a.Nil(d.ticker)
	})
}

func TestDealer_SaveLayout(t *testing.T) {
	a := assert.New(t)

	p := newPitBoss(t)
	d := NewDealer(p, "table")
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, "table")
	d.AddClient(c)

	d.ReceivedMessage(c, &PayloadIn{Action: "saveLayout"})
	a.Equal(ErrNothingToSave.Error(), expectResponse(t, c, "error").Value)

	d.ReceivedMessage(c, start(20, 5, session.ModeAuto))
	expectResponse(t, c, "status")

	d.ReceivedMessage(c, &PayloadIn{Action: "saveLayout", Context: "save"})
	res := expectResponse(t, c, "status")
	a.Equal("save", res.Context)

	positions := teiichi.Load(context.Background(), p.store)
	a.Len(positions, 10)

	// a new table picks up the saved positions
	d2 := NewDealer(p, "table2")
	d2.StartShift()
	defer d2.EndShift()

	c2 := NewClient(nil, "table2")
	d2.AddClient(c2)
	d2.ReceivedMessage(c2, start(20, 5, session.ModeCustom))
	expectResponse(t, c2, "status")

	inRunLoop(d2, func() {
		for id, pos := range d2.session.OwnPositions() {
			if saved, found := positions[id]; found {
				a.Equal(saved, pos, "card %d", id)
			}
		}
	})
}

func TestPitBoss_Dispatch(t *testing.T) {
	p := newPitBoss(t)
	p.StartShift()

	c := NewClient(nil, "table")
	p.ClientConnected(c)
	expectResponse(t, c, "state")

	c2 := NewClient(nil, "table")
	p.ClientConnected(c2)
	expectResponse(t, c2, "state")

	c.ReceivedMessage(start(4, 1, session.ModeManual))
	state := expectState(t, c2, func(s *session.State) bool { return s.Phase == session.PhaseManualSetup })
	assert.Len(t, state.Hand, 2)

	p.ClientDisconnected(c)
	p.ClientDisconnected(c2)
}

func TestAdditionalData_Options(t *testing.T) {
	a := assert.New(t)
	defaults := session.DefaultOptions()

	opts, err := AdditionalData{}.options(defaults)
	a.NoError(err)
	a.Equal(defaults, opts)

	opts, err = AdditionalData{"cardCount": float64(12), "mode": "manual", "minutes": float64(3)}.options(defaults)
	a.NoError(err)
	a.Equal(session.Options{CardCount: 12, Mode: session.ModeManual, Minutes: 3}, opts)

	for _, tc := range []struct {
		data AdditionalData
		err  error
	}{
		{AdditionalData{"cardCount": "21"}, layout.ErrInvalidCardCount},
		{AdditionalData{"cardCount": 20.5}, layout.ErrInvalidCardCount},
		{AdditionalData{"cardCount": "abc"}, layout.ErrInvalidCardCount},
		{AdditionalData{"cardCount": nil}, layout.ErrInvalidCardCount},
		{AdditionalData{"minutes": "bad"}, session.ErrInvalidMinutes},
		{AdditionalData{"minutes": 1.5}, session.ErrInvalidMinutes},
		{AdditionalData{"mode": float64(1)}, session.ErrInvalidMode},
	} {
		opts, err := tc.data.options(defaults)
		a.Equal(tc.err, err, "%v", tc.data)
		a.Equal(defaults, opts)
	}
}

func TestDealer_StartRejectsMalformedOptions(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(newPitBoss(t), "table")
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, "table")
	d.AddClient(c)

	d.ReceivedMessage(c, start(20, 1, session.ModeAuto))
	a.Equal("OK", expectResponse(t, c, "status").Value)

	for _, cardCount := range []interface{}{"21", 20.5, "abc"} {
		d.ReceivedMessage(c, &PayloadIn{
			Action:         "start",
			AdditionalData: AdditionalData{"cardCount": cardCount, "minutes": float64(1)},
			Context:        "bad",
		})

		res := expectResponse(t, c, "error")
		a.Equal(layout.ErrInvalidCardCount.Error(), res.Value, "%v", cardCount)
		a.Equal("bad", res.Context)
	}

	inRunLoop(d, func() {
		a.Equal(session.PhaseMemorizing, d.session.Phase())
		a.Len(d.session.Field().Cards(layout.Own), 10)
		a.Len(d.session.Field().Cards(layout.Opponent), 10)
	})
}

func TestClient_ReceivedMessageWithoutDealer(t *testing.T) {
	c := NewClient(nil, "table")
	c.ReceivedMessage(&PayloadIn{Action: "state"})

	select {
	case msg := <-c.SendChan():
		t.Errorf("unexpected message %#v", msg)
	default:
	}
}
