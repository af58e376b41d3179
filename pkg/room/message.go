package room

import (
	"math"

	"karuta-server/pkg/layout"
	"karuta-server/pkg/session"
)

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action         string         `json:"action"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Tap is set for the "tap" action
	Tap *session.Tap `json:"tap"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is a message sent to the client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newStateResponse(state *session.State) *Response {
	return &Response{
		Key:  "state",
		Data: state,
	}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// options overlays the start options found in the payload on defaults
// A key that is missing keeps its default. A key that is present but is not
// a whole number (or a string for mode) is an error.
func (a AdditionalData) options(defaults session.Options) (session.Options, error) {
	opts := defaults

	n, err := a.wholeNumber("cardCount", defaults.CardCount, layout.ErrInvalidCardCount)
	if err != nil {
		return defaults, err
	}
	opts.CardCount = n

	if _, found := a["mode"]; found {
		mode, ok := a.GetString("mode")
		if !ok {
			return defaults, session.ErrInvalidMode
		}

		opts.Mode = session.Mode(mode)
	}

	minutes, err := a.wholeNumber("minutes", defaults.Minutes, session.ErrInvalidMinutes)
	if err != nil {
		return defaults, err
	}
	opts.Minutes = minutes

	return opts, nil
}

// wholeNumber returns the integer stored at key, or def if the key is missing
func (a AdditionalData) wholeNumber(key string, def int, invalid error) (int, error) {
	val, found := a[key]
	if !found {
		return def, nil
	}

	f, ok := val.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, invalid
	}

	return int(f), nil
}
