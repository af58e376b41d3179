package mux

import (
	"net/http"
	"strconv"

	gmux "github.com/gorilla/mux"
	"karuta-server/pkg/catalog"
)

type cardsResponse struct {
	Cards []*catalog.Card `json:"cards"`
	Total int             `json:"total"`
}

func (m *Mux) getCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		cards := m.catalog.Cards()
		total := len(cards)

		from := int(start)
		if from > total {
			from = total
		}

		to := from + rows
		if to > total {
			to = total
		}

		writeJSON(w, http.StatusOK, cardsResponse{
			Cards: cards[from:to],
			Total: total,
		})
	}
}

func (m *Mux) getCardsID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(gmux.Vars(r)["id"])
		card, err := m.catalog.Card(id)
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		writeJSON(w, http.StatusOK, card)
	}
}
