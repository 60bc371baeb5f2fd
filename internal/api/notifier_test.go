package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/api/middleware"
	"folio/internal/editor"
	"folio/internal/events"
	"folio/internal/portfolio"
)

type recordingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return p.err
}

type scheduled struct{ section, action, correlationID string }

type recordingScheduler struct{ calls []scheduled }

func (s *recordingScheduler) Schedule(_ context.Context, section, action, correlationID string) {
	s.calls = append(s.calls, scheduled{section, action, correlationID})
}

func TestChangeNotifierFansOut(t *testing.T) {
	pub := &recordingPublisher{}
	sched := &recordingScheduler{}
	n := &ChangeNotifier{Publisher: pub, Snapshots: sched, Logger: discardLogger()}

	ctx := middleware.WithCorrelationID(context.Background(), "req-1")
	n.Notify(ctx, editor.Change{Section: "projects", Key: "ast_proj_data", Action: editor.ActionAdd, ID: "42"})

	require.Len(t, pub.payloads, 1)
	var msg events.SectionUpdated
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, "section_updated", msg.Type)
	assert.Equal(t, "projects", msg.Section)
	assert.Equal(t, "add", msg.Action)
	assert.Equal(t, "42", msg.ID)

	assert.Equal(t, []scheduled{{"projects", "add", "req-1"}}, sched.calls)
}

func TestChangeNotifierPublishFailureStillSchedules(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	sched := &recordingScheduler{}
	n := &ChangeNotifier{Publisher: pub, Snapshots: sched, Logger: discardLogger()}

	n.Notify(context.Background(), editor.Change{Section: "hero", Action: editor.ActionReplace})
	assert.Len(t, sched.calls, 1)
}

func TestSiteEditsReachNotifier(t *testing.T) {
	sched := &recordingScheduler{}
	n := &ChangeNotifier{Publisher: events.Nop{}, Snapshots: sched, Logger: discardLogger()}
	s := newTestServerWithOptions(t, portfolio.Options{ConfirmDelete: true, OnChange: n.Notify}, nil)

	assertStatus(t, s.do(t, http.MethodDelete, "/v1/skills/1?confirm=true", nil, true), http.StatusNoContent)
	assertStatus(t, s.do(t, http.MethodDelete, "/v1/skills/2", nil, true), http.StatusConflict)

	require.Len(t, sched.calls, 1)
	assert.Equal(t, "skills", sched.calls[0].section)
	assert.Equal(t, "delete", sched.calls[0].action)
	assert.NotEmpty(t, sched.calls[0].correlationID)
}
