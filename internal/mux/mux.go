package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/room"
	"karuta-server/pkg/session"
	"karuta-server/pkg/teiichi"
)

const uuidPattern = "{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	catalog *catalog.Catalog
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
func NewMux(version string, cat *catalog.Catalog, store teiichi.Store, defaults session.Options) *Mux {
	pitBoss := room.NewPitBoss(cat, store, defaults)
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		catalog: cat,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/cards").Handler(this.getCards())
	r.Methods(http.MethodGet).Path("/cards/{id:[0-9]+}").Handler(this.getCardsID())
	r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())
	r.Methods(http.MethodGet).Path("/table/" + uuidPattern + "/ws").Handler(this.getTableUUIDWS())

	return this
}
