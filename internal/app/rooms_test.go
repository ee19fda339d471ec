package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

func testRoom(session domain.SessionID, host core.ConnID) core.Room {
	return core.Room{
		Session: session,
		RoomID:  domain.RoomID(session),
		Title:   "Career AMA",
		Host:    host,
	}
}

func TestRoomDirectoryInsert(t *testing.T) {
	d := NewRoomDirectory()

	require.True(t, d.Insert(testRoom("A", "h1")))
	assert.False(t, d.Insert(testRoom("A", "h2")), "second insert for the same session loses")

	room, ok := d.Get("A")
	require.True(t, ok)
	assert.Equal(t, core.ConnID("h1"), room.Host)
	assert.Equal(t, domain.RoomID("A"), room.RoomID)
}

func TestRoomDirectoryGetReturnsSnapshot(t *testing.T) {
	d := NewRoomDirectory()
	require.True(t, d.Insert(testRoom("A", "h1")))

	room, ok := d.Get("A")
	require.True(t, ok)
	room.Viewers = append(room.Viewers, "intruder")

	again, _ := d.Get("A")
	assert.Empty(t, again.Viewers, "mutating a snapshot must not touch the directory")
}

func TestRoomDirectoryViewers(t *testing.T) {
	d := NewRoomDirectory()
	require.True(t, d.Insert(testRoom("A", "h1")))

	room, added, ok := d.AddViewer("A", "v1")
	require.True(t, ok)
	assert.True(t, added)
	assert.Len(t, room.Viewers, 1)

	_, added, ok = d.AddViewer("A", "v1")
	require.True(t, ok)
	assert.False(t, added, "re-adding the same viewer reports not added")

	_, _, ok = d.AddViewer("missing", "v1")
	assert.False(t, ok)

	room, removed := d.RemoveViewer("A", "v1")
	assert.True(t, removed)
	assert.Empty(t, room.Viewers)

	_, removed = d.RemoveViewer("A", "v1")
	assert.False(t, removed)

	_, removed = d.RemoveViewer("missing", "v1")
	assert.False(t, removed)
}

func TestRoomDirectoryLocate(t *testing.T) {
	d := NewRoomDirectory()
	require.True(t, d.Insert(testRoom("A", "h1")))
	d.AddViewer("A", "v1")

	room, occ, ok := d.Locate("h1")
	require.True(t, ok)
	assert.Equal(t, core.OccupantHost, occ)
	assert.Equal(t, domain.SessionID("A"), room.Session)

	_, occ, ok = d.Locate("v1")
	require.True(t, ok)
	assert.Equal(t, core.OccupantViewer, occ)

	_, _, ok = d.Locate("nobody")
	assert.False(t, ok)
}

func TestRoomDirectoryLocatePrefersHostRole(t *testing.T) {
	// The same connection hosting one room and viewing another must be
	// reported as host first so disconnect handling tears its room down.
	d := NewRoomDirectory()
	require.True(t, d.Insert(testRoom("A", "dual")))
	require.True(t, d.Insert(testRoom("B", "h2")))
	d.AddViewer("B", "dual")

	room, occ, ok := d.Locate("dual")
	require.True(t, ok)
	assert.Equal(t, core.OccupantHost, occ)
	assert.Equal(t, domain.SessionID("A"), room.Session)
}

func TestRoomDirectoryDelete(t *testing.T) {
	d := NewRoomDirectory()
	require.True(t, d.Insert(testRoom("A", "h1")))
	d.AddViewer("A", "v1")

	room, ok := d.Delete("A")
	require.True(t, ok)
	assert.Equal(t, []core.ConnID{"v1"}, room.Viewers, "deletion returns the final membership")

	_, ok = d.Get("A")
	assert.False(t, ok)
	_, ok = d.Delete("A")
	assert.False(t, ok)
}

func TestRoomDirectoryList(t *testing.T) {
	d := NewRoomDirectory()
	assert.Empty(t, d.List())

	require.True(t, d.Insert(testRoom("A", "h1")))
	require.True(t, d.Insert(testRoom("B", "h2")))
	d.AddViewer("A", "v1")
	d.AddViewer("A", "v2")

	infos := d.List()
	require.Len(t, infos, 2)
	counts := map[domain.SessionID]int{}
	for _, info := range infos {
		counts[info.Session] = info.ViewerCount
		assert.Equal(t, "Career AMA", info.Title)
	}
	assert.Equal(t, map[domain.SessionID]int{"A": 2, "B": 0}, counts)
}
