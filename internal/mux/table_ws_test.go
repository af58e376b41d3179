package mux

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karuta-server/pkg/room"
)

type wsResponse struct {
	Key     string                 `json:"key"`
	Value   string                 `json:"value"`
	Data    map[string]interface{} `json:"data"`
	Context string                 `json:"context"`
}

func readUntil(t *testing.T, conn *websocket.Conn, key string) wsResponse {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	for {
		var res wsResponse
		require.NoError(t, conn.ReadJSON(&res))
		if res.Key == key {
			return res
		}
	}
}

func TestPostTable(t *testing.T) {
	ts := newTestServer(t)

	var resp postTableResponse
	assertPost(t, ts, "/table", &resp, 201)
	assert.Len(t, resp.UUID, 36)
}

func TestTableWebSocket(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)

	var table postTableResponse
	assertPost(t, ts, "/table", &table, 201)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/" + table.UUID + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	a.Equal(http.StatusSwitchingProtocols, resp.StatusCode)

	state := readUntil(t, conn, "state")
	a.Equal("idle", state.Data["phase"])

	require.NoError(t, conn.WriteJSON(room.PayloadIn{
		Action:         "start",
		AdditionalData: room.AdditionalData{"cardCount": 21},
		Context:        "1",
	}))
	res := readUntil(t, conn, "error")
	a.Equal("card count must be an even number between 2 and 50", res.Value)
	a.Equal("1", res.Context)

	require.NoError(t, conn.WriteJSON(room.PayloadIn{
		Action:         "start",
		AdditionalData: room.AdditionalData{"cardCount": 20, "mode": "manual", "minutes": 1},
		Context:        "2",
	}))
	a.Equal("OK", readUntil(t, conn, "status").Value)

	state = readUntil(t, conn, "state")
	a.Equal("manualSetup", state.Data["phase"])
	a.Len(state.Data["hand"], 10)
}

func TestTableWebSocket_BadUUID(t *testing.T) {
	ts := newTestServer(t)
	assertGet(t, ts, "/table/not-a-uuid/ws", nil, 404)
}
