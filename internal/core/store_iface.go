package core

import (
	"context"
	"errors"

	"github.com/mentorlink/webicast/internal/domain"
)

// ErrSessionNotFound is returned by stores when no session matches the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the persisted record backing a broadcast session.
// GetSession carries owner and title; MarkLive/ClearLive flip the live flag.
// A missing session is reported as ErrSessionNotFound; any other error is a
// store failure.
type SessionStore interface {
	GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	IsLive(ctx context.Context, id domain.SessionID) (bool, error)
	MarkLive(ctx context.Context, id domain.SessionID, room domain.RoomID) error
	ClearLive(ctx context.Context, id domain.SessionID) error
}
