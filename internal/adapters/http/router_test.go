package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/webicast/internal/app"
	"github.com/mentorlink/webicast/internal/config"
	"github.com/mentorlink/webicast/internal/core"
)

func newTestRouter(t *testing.T) (*gin.Engine, core.RoomDirectory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Mode:       "test",
		ReadLimit:  1024,
		PingPeriod: time.Minute,
		WriteWait:  time.Second,
		SendBuffer: 1,
	}
	rooms := app.NewRoomDirectory()
	orch := app.NewOrchestrator(app.NewRegistry(), rooms, nil, nil)
	return SetupRouter(context.Background(), cfg, orch), rooms
}

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doGET(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStreamsListing(t *testing.T) {
	r, rooms := newTestRouter(t)

	w := doGET(t, r, "/api/streams")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	require.True(t, rooms.Insert(core.Room{
		Session: "web-7",
		RoomID:  "web-7",
		Title:   "Mock Interviews",
		Host:    "h1",
	}))
	rooms.AddViewer("web-7", "v1")
	rooms.AddViewer("web-7", "v2")

	w = doGET(t, r, "/api/streams")
	assert.Equal(t, http.StatusOK, w.Code)

	var listing []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing, 1)
	assert.Equal(t, map[string]any{
		"sessionId":   "web-7",
		"roomId":      "web-7",
		"title":       "Mock Interviews",
		"viewerCount": float64(2),
	}, listing[0])
}
