package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSubscriber struct {
	ch chan []byte
}

func (s *chanSubscriber) Subscribe(ctx context.Context) (<-chan []byte, func() error, error) {
	return s.ch, func() error { return nil }, nil
}

func TestWebsocketForwardsUpdates(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan []byte, 1)}
	s := newTestServer(t, true, func(d *Deps) { d.Subscriber = sub })

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	sub.ch <- []byte(`{"type":"section_updated","section":"projects"}`)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"section_updated","section":"projects"}`, string(msg))
}

func TestWebsocketRejectsForeignOrigin(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan []byte)}
	s := newTestServer(t, true, func(d *Deps) {
		d.Subscriber = sub
		d.AllowedOrigins = []string{"https://site.example"}
	})

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
