package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"karuta-server/pkg/session"
	"karuta-server/pkg/teiichi"
)

// storeTimeout bounds a single read or write of the custom positions
const storeTimeout = time.Second * 5

// ErrNothingToSave is returned when the own side is empty
var ErrNothingToSave = errors.New("there are no cards on your side to save")

// Dealer runs one table
// The session, and the countdown ticker, are only touched from the run loop.
type Dealer struct {
	pitBoss *PitBoss
	tableID string
	clients map[*Client]bool
	lock    sync.RWMutex
	session *session.Session
	log     logrus.FieldLogger

	ticker           *time.Ticker
	tickerGeneration int
	// interval overrides session.Interval(), for tests
	interval time.Duration

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, tableID string) *Dealer {
	log := logrus.WithField("table", tableID)

	s := session.New(pitBoss.catalog, pitBoss.rng, nil)
	s.SetLogger(log)

	return &Dealer{
		pitBoss:       pitBoss,
		tableID:       tableID,
		clients:       make(map[*Client]bool),
		session:       s,
		log:           log,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	d.loadPositions()

	for {
		var tick <-chan time.Time
		if d.ticker != nil {
			tick = d.ticker.C
		}

		select {
		case fn := <-d.execInRunLoop:
			fn()
			d.syncTicker()
		case <-tick:
			if d.session.Tick() {
				d.sendState()
			}

			d.syncTicker()
		case <-d.close:
			d.stopTicker()
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// syncTicker keeps exactly one ticker alive while the countdown runs
// NOTE: must only be called from the run loop
func (d *Dealer) syncTicker() {
	running := d.session.TimerRunning()
	generation := d.session.TimerGeneration()

	if d.ticker != nil && (!running || generation != d.tickerGeneration) {
		d.stopTicker()
	}

	if running && d.ticker == nil {
		interval := d.interval
		if interval <= 0 {
			interval = d.session.Interval()
		}

		d.ticker = time.NewTicker(interval)
		d.tickerGeneration = generation
		d.log.WithField("generation", generation).Debug("countdown started")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) stopTicker() {
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) loadPositions() {
	if d.pitBoss.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	d.session.SetPositions(teiichi.Load(ctx, d.pitBoss.store))
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		d.sendStateTo(client, "")
	}
}

// RemoveClient removes a client
// Returns true if it was the last client at the table
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendState() {
	state, err := d.session.State()
	if err != nil {
		d.log.WithError(err).Error("could not get session state")
		return
	}

	res := newStateResponse(state)
	for _, client := range d.Clients() {
		client.Send(res)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendStateTo(client *Client, ctx string) {
	state, err := d.session.State()
	if err != nil {
		d.log.WithError(err).Error("could not get session state")
		client.Send(newErrorResponse(ctx, err))
		return
	}

	res := newStateResponse(state)
	res.Context = ctx
	client.Send(res)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "start":
		d.execInRunLoop <- func() {
			opts, err := msg.AdditionalData.options(d.pitBoss.defaults)
			if err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			if err := d.session.Start(opts); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.sendState()
		}
	case "tap":
		if msg.Tap == nil {
			c.Send(newErrorResponse(msg.Context, errors.New("tap is missing")))
			return
		}

		tap := *msg.Tap
		d.execInRunLoop <- func() {
			if d.session.HandleTap(tap) {
				d.sendState()
			}
		}
	case "toggleBlank":
		d.execInRunLoop <- func() {
			d.session.ToggleBlank()
			d.sendState()
		}
	case "saveLayout":
		d.execInRunLoop <- func() {
			if err := d.saveLayout(); err != nil {
				d.log.WithError(err).Warn("could not save layout")
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
		}
	case "state":
		d.execInRunLoop <- func() {
			d.sendStateTo(c, msg.Context)
		}
	default:
		d.log.WithField("action", msg.Action).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, errors.New("unknown action")))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) saveLayout() error {
	if d.pitBoss.store == nil {
		return errors.New("saving layouts is not enabled")
	}

	positions := d.session.OwnPositions()
	if len(positions) == 0 {
		return ErrNothingToSave
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := teiichi.Save(ctx, d.pitBoss.store, positions); err != nil {
		return err
	}

	d.session.SetPositions(positions)
	d.log.WithField("cards", len(positions)).Info("saved custom positions")
	return nil
}
