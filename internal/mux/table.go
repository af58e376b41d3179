package mux

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type postTableResponse struct {
	UUID string `json:"uuid"`
}

// postTable allocates a new table id
// The table itself is created when the first client connects to it
func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := uuid.New().String()
		logrus.WithField("uuid", u).WithField("remoteAddr", remoteAddr(r)).Debug("allocated table")

		writeJSON(w, http.StatusCreated, postTableResponse{UUID: u})
	}
}
