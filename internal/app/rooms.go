package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

type roomState struct {
	session domain.SessionID
	roomID  domain.RoomID
	title   string
	host    core.ConnID
	viewers map[core.ConnID]struct{}
}

func (r *roomState) snapshot() core.Room {
	out := core.Room{
		Session: r.session,
		RoomID:  r.roomID,
		Title:   r.title,
		Host:    r.host,
		Viewers: make([]core.ConnID, 0, len(r.viewers)),
	}
	for v := range r.viewers {
		out.Viewers = append(out.Viewers, v)
	}
	return out
}

// RoomDirectoryImpl is an in-memory core.RoomDirectory. Room state lives only
// here and vanishes with the process.
type RoomDirectoryImpl struct {
	mu    sync.RWMutex
	rooms map[domain.SessionID]*roomState
}

func NewRoomDirectory() core.RoomDirectory {
	return &RoomDirectoryImpl{rooms: make(map[domain.SessionID]*roomState)}
}

func (d *RoomDirectoryImpl) Insert(room core.Room) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.rooms[room.Session]; ok {
		return false
	}
	st := &roomState{
		session: room.Session,
		roomID:  room.RoomID,
		title:   room.Title,
		host:    room.Host,
		viewers: make(map[core.ConnID]struct{}, len(room.Viewers)),
	}
	for _, v := range room.Viewers {
		st.viewers[v] = struct{}{}
	}
	d.rooms[room.Session] = st
	log.Info().Str("module", "app.rooms").Str("session", string(room.Session)).Str("host", string(room.Host)).Msg("room created")
	return true
}

func (d *RoomDirectoryImpl) Get(id domain.SessionID) (core.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	st, ok := d.rooms[id]
	if !ok {
		return core.Room{}, false
	}
	return st.snapshot(), true
}

func (d *RoomDirectoryImpl) Delete(id domain.SessionID) (core.Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.rooms[id]
	if !ok {
		return core.Room{}, false
	}
	delete(d.rooms, id)
	log.Info().Str("module", "app.rooms").Str("session", string(id)).Msg("room removed")
	return st.snapshot(), true
}

func (d *RoomDirectoryImpl) AddViewer(id domain.SessionID, conn core.ConnID) (core.Room, bool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.rooms[id]
	if !ok {
		return core.Room{}, false, false
	}
	_, present := st.viewers[conn]
	if !present {
		st.viewers[conn] = struct{}{}
		log.Info().Str("module", "app.rooms").Str("session", string(id)).Str("conn", string(conn)).Msg("viewer added")
	}
	return st.snapshot(), !present, true
}

func (d *RoomDirectoryImpl) RemoveViewer(id domain.SessionID, conn core.ConnID) (core.Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.rooms[id]
	if !ok {
		return core.Room{}, false
	}
	if _, present := st.viewers[conn]; !present {
		return st.snapshot(), false
	}
	delete(st.viewers, conn)
	log.Info().Str("module", "app.rooms").Str("session", string(id)).Str("conn", string(conn)).Msg("viewer removed")
	return st.snapshot(), true
}

func (d *RoomDirectoryImpl) Locate(conn core.ConnID) (core.Room, core.Occupant, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, st := range d.rooms {
		if st.host == conn {
			return st.snapshot(), core.OccupantHost, true
		}
	}
	for _, st := range d.rooms {
		if _, ok := st.viewers[conn]; ok {
			return st.snapshot(), core.OccupantViewer, true
		}
	}
	return core.Room{}, 0, false
}

func (d *RoomDirectoryImpl) List() []core.RoomInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(d.rooms))
	for _, st := range d.rooms {
		out = append(out, core.RoomInfo{
			Session:     st.session,
			RoomID:      st.roomID,
			Title:       st.title,
			ViewerCount: len(st.viewers),
		})
	}
	return out
}
