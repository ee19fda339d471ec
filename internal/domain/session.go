// Package domain contains entities without logic, just meta-data
package domain

type (
	SessionID string
	RoomID    string
	UserID    string
)

// Session mirrors the persisted webinar record a live room correlates with.
// The session store owns the record; the signaling core reads it and flips
// the live flag.
type Session struct {
	ID       SessionID
	Title    string
	HostID   UserID
	IsLive   bool
	LiveRoom RoomID
}
