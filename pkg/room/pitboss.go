package room

import (
	"github.com/sirupsen/logrus"
	"karuta-server/internal/rng"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/session"
	"karuta-server/pkg/teiichi"
)

// PitBoss is responsible for dispatching clients to tables
type PitBoss struct {
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client

	catalog  *catalog.Catalog
	store    teiichi.Store
	rng      rng.Generator
	defaults session.Options
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(cat *catalog.Catalog, store teiichi.Store, defaults session.Options) *PitBoss {
	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		catalog:    cat,
		store:      store,
		rng:        rng.Crypto{},
		defaults:   defaults,
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.tableID]
			if !found {
				dealer = NewDealer(p, client.tableID)
				dealer.StartShift()
				p.dealers[client.tableID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.tableID]
			if !found {
				logrus.WithField("table", client.tableID).WithField("type", "exception").Error("table not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.tableID)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
