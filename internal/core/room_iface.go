package core

import "github.com/mentorlink/webicast/internal/domain"

// Room is a point-in-time snapshot of one live broadcast room.
// The directory owns the mutable state; snapshots are copies and stay valid
// after the room changes or disappears.
type Room struct {
	Session domain.SessionID
	RoomID  domain.RoomID
	Title   string
	Host    ConnID
	Viewers []ConnID
}

// Occupant describes how a connection participates in a room.
type Occupant int

const (
	OccupantHost Occupant = iota + 1
	OccupantViewer
)

// RoomInfo is a read-only view for APIs (no connection ids).
type RoomInfo struct {
	Session     domain.SessionID `json:"sessionId"`
	RoomID      domain.RoomID    `json:"roomId"`
	Title       string           `json:"title"`
	ViewerCount int              `json:"viewerCount"`
}

// RoomDirectory is the process-wide source of truth for live rooms, keyed
// by session id. At most one room exists per session. All methods are safe
// for concurrent use; callers needing a multi-step sequence serialize it
// per session themselves.
type RoomDirectory interface {
	// Insert registers a room; false if the session already has one.
	Insert(Room) bool
	Get(domain.SessionID) (Room, bool)
	// Delete removes the room and returns its final snapshot.
	Delete(domain.SessionID) (Room, bool)
	// AddViewer has set semantics: adding a present viewer is a no-op with
	// added=false. ok=false means no live room for the session.
	AddViewer(domain.SessionID, ConnID) (room Room, added bool, ok bool)
	// RemoveViewer reports whether the connection was a viewer of the room.
	RemoveViewer(domain.SessionID, ConnID) (Room, bool)
	// Locate finds the room a connection participates in, host first.
	Locate(ConnID) (Room, Occupant, bool)
	List() []RoomInfo
}
