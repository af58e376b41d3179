package teiichi

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"karuta-server/pkg/layout"
)

// Key is where the custom positions are stored
const Key = "karutaTeiichi"

// Positions maps a card id to its custom position on the own side
type Positions map[int]layout.Position

// Load reads the saved positions
// Missing or unreadable data yields empty positions. Corrupt data is deleted.
func Load(ctx context.Context, store Store) Positions {
	log := logrus.WithField("key", Key)

	b, err := store.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warn("could not read custom positions")
		} else {
			log.Debug("no custom positions saved")
		}

		return Positions{}
	}

	var positions Positions
	if err := json.Unmarshal(b, &positions); err != nil || !positions.valid() {
		log.WithError(err).Debug("discarding corrupt custom positions")
		if err := store.Delete(ctx, Key); err != nil {
			log.WithError(err).Warn("could not delete corrupt custom positions")
		}

		return Positions{}
	}

	if positions == nil {
		positions = Positions{}
	}

	log.WithField("cards", len(positions)).Debug("loaded custom positions")
	return positions
}

// Save writes positions, replacing what was saved before
func Save(ctx context.Context, store Store, positions Positions) error {
	b, err := json.Marshal(positions)
	if err != nil {
		return err
	}

	return store.Put(ctx, Key, b)
}

func (p Positions) valid() bool {
	for id, pos := range p {
		if id < 1 || id > 100 || !pos.Key(layout.Own).Valid() {
			return false
		}
	}

	return true
}
