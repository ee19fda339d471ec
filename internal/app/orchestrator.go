package app

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

// Orchestrator drives the room lifecycle: it authorizes intents, mutates the
// room directory, keeps the session store's live flag in step with it, and
// notifies affected connections. Every per-session sequence runs under a
// session lock, so two near-simultaneous starts for the same session resolve
// to exactly one winner.
type Orchestrator struct {
	Registry *Registry
	Rooms    core.RoomDirectory
	Verifier core.Verifier
	Store    core.SessionStore

	locks *keyLock
}

func NewOrchestrator(reg *Registry, rooms core.RoomDirectory, verifier core.Verifier, store core.SessionStore) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		Rooms:    rooms,
		Verifier: verifier,
		Store:    store,
		locks:    newKeyLock(),
	}
}

// Start transitions a session to live with the requester as host.
// The directory insert and the store's live flag are treated as a unit: a
// failed MarkLive rolls the insert back.
func (o *Orchestrator) Start(ctx context.Context, sessionID domain.SessionID, credential string, conn core.ConnID) (core.Room, error) {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	p, err := o.Verifier.Verify(ctx, credential)
	if err != nil {
		return core.Room{}, err
	}
	if p.Role != domain.RoleHost {
		log.Warn().Str("module", "app.orchestrator").Str("session", string(sessionID)).Str("role", p.Role.String()).Msg("start-stream rejected")
		return core.Room{}, domain.Forbidden("Not authorized")
	}

	sess, err := o.Store.GetSession(ctx, sessionID)
	if err != nil {
		return core.Room{}, mapStoreErr(err, "Webinar not found")
	}
	if sess.HostID != p.ID {
		return core.Room{}, domain.Forbidden("Not authorized to host this webinar")
	}

	if _, ok := o.Rooms.Get(sessionID); ok {
		return core.Room{}, domain.Conflict("Webinar is already live")
	}
	if _, occ, ok := o.Rooms.Locate(conn); ok && occ == core.OccupantHost {
		return core.Room{}, domain.Conflict("Connection already hosts a live stream")
	}

	room := core.Room{
		Session: sessionID,
		RoomID:  domain.RoomID(sessionID),
		Title:   sess.Title,
		Host:    conn,
	}
	if !o.Rooms.Insert(room) {
		return core.Room{}, domain.Conflict("Webinar is already live")
	}
	if err := o.Store.MarkLive(ctx, sessionID, room.RoomID); err != nil {
		o.Rooms.Delete(sessionID)
		log.Error().Err(err).Str("module", "app.orchestrator").Str("session", string(sessionID)).Msg("mark live failed, start rolled back")
		return core.Room{}, domain.StoreFailure("Could not persist live state")
	}

	log.Info().Str("module", "app.orchestrator").Str("session", string(sessionID)).Str("host", string(conn)).Msg("stream started")
	return room, nil
}

// Join adds the requester to a live room's viewer set. Re-joining is a no-op.
// The host is notified before the requester's acknowledgment is returned.
func (o *Orchestrator) Join(ctx context.Context, sessionID domain.SessionID, credential string, conn core.ConnID) (core.Room, error) {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	p, err := o.Verifier.Verify(ctx, credential)
	if err != nil {
		return core.Room{}, err
	}
	if p.Role != domain.RoleViewer {
		log.Warn().Str("module", "app.orchestrator").Str("session", string(sessionID)).Str("role", p.Role.String()).Msg("join-stream rejected")
		return core.Room{}, domain.Forbidden("Not authorized")
	}

	live, err := o.Store.IsLive(ctx, sessionID)
	if err != nil {
		return core.Room{}, mapStoreErr(err, "Webinar is not live")
	}
	if !live {
		return core.Room{}, domain.NotFound("Webinar is not live")
	}

	room, ok := o.Rooms.Get(sessionID)
	if !ok {
		return core.Room{}, domain.NotFound("Stream not found")
	}
	if room.Host == conn {
		return core.Room{}, domain.BadRequest("Host cannot join own stream as viewer")
	}

	room, added, ok := o.Rooms.AddViewer(sessionID, conn)
	if !ok {
		return core.Room{}, domain.NotFound("Stream not found")
	}

	// Re-joining is idempotent; the host hears about a viewer once.
	if added {
		o.notify(room.Host, &domain.NewViewerEvent{Type: domain.EvtNewViewer, ConnectionID: string(conn)})
		log.Info().Str("module", "app.orchestrator").Str("session", string(sessionID)).Str("conn", string(conn)).Msg("viewer joined")
	}
	return room, nil
}

// End tears a live room down on the host's request. ClearLive and the
// directory removal are a unit: if the store write fails the room stays live
// and the requester gets a store error.
func (o *Orchestrator) End(ctx context.Context, sessionID domain.SessionID, credential string, conn core.ConnID) error {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	p, err := o.Verifier.Verify(ctx, credential)
	if err != nil {
		return err
	}
	if p.Role != domain.RoleHost {
		return domain.Forbidden("Not authorized")
	}

	room, ok := o.Rooms.Get(sessionID)
	if !ok {
		return domain.NotFound("Stream not found")
	}
	if room.Host != conn {
		return domain.Forbidden("Not authorized to end this stream")
	}

	if err := o.Store.ClearLive(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("session", string(sessionID)).Msg("clear live failed, room kept")
		return domain.StoreFailure("Could not persist live state")
	}

	o.Rooms.Delete(sessionID)
	o.broadcastEnded(room, domain.ReasonHostEnded)
	log.Info().Str("module", "app.orchestrator").Str("session", string(sessionID)).Msg("stream ended by host")
	return nil
}

// Relay forwards an opaque payload to a named connection. Delivery is
// best-effort: an absent target drops the message with no error to the
// sender.
func (o *Orchestrator) Relay(from, to core.ConnID, payload json.RawMessage) {
	conn, ok := o.Registry.Get(to)
	if !ok {
		log.Debug().Str("module", "app.orchestrator").Str("to", string(to)).Msg("signal target gone, dropped")
		return
	}
	o.send(conn, &domain.SignalEvent{Type: domain.EvtSignal, From: string(from), Signal: payload})
}

// OnDisconnect removes the connection from the registry and from any room it
// participates in. A host disconnect tears the room down; a viewer disconnect
// only notifies the host. Idempotent: an unknown connection is a no-op.
func (o *Orchestrator) OnDisconnect(ctx context.Context, conn core.ConnID) {
	o.Registry.Unregister(conn)

	for {
		room, occ, ok := o.Rooms.Locate(conn)
		if !ok {
			return
		}
		o.cleanupMembership(ctx, room.Session, occ, conn)
	}
}

func (o *Orchestrator) cleanupMembership(ctx context.Context, sessionID domain.SessionID, occ core.Occupant, conn core.ConnID) {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	// The room may have changed while we waited for the session lock.
	switch occ {
	case core.OccupantHost:
		room, ok := o.Rooms.Get(sessionID)
		if !ok || room.Host != conn {
			return
		}
		if err := o.Store.ClearLive(ctx, sessionID); err != nil {
			// The host is gone; tear down locally and leave the flag to operators.
			log.Error().Err(err).Str("module", "app.orchestrator").Str("session", string(sessionID)).Msg("clear live failed on host disconnect")
		}
		o.Rooms.Delete(sessionID)
		o.broadcastEnded(room, domain.ReasonHostDisconnected)
		log.Info().Str("module", "app.orchestrator").Str("session", string(sessionID)).Msg("stream ended, host disconnected")
	case core.OccupantViewer:
		room, removed := o.Rooms.RemoveViewer(sessionID, conn)
		if !removed {
			return
		}
		o.notify(room.Host, &domain.ViewerLeftEvent{Type: domain.EvtViewerLeft, ConnectionID: string(conn)})
	}
}

// LiveStreams lists the current rooms for read-only APIs.
func (o *Orchestrator) LiveStreams() []core.RoomInfo {
	return o.Rooms.List()
}

// broadcastEnded notifies every viewer and the host. The host's connection
// may already be unregistered; those sends drop silently.
func (o *Orchestrator) broadcastEnded(room core.Room, reason string) {
	ended := &domain.StreamEndedEvent{Type: domain.EvtStreamEnded, Reason: reason}
	for _, v := range room.Viewers {
		o.notify(v, ended)
	}
	o.notify(room.Host, ended)
}

func (o *Orchestrator) notify(to core.ConnID, v any) {
	conn, ok := o.Registry.Get(to)
	if !ok {
		return
	}
	o.send(conn, v)
}

func (o *Orchestrator) send(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Msg("marshal notification")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "app.orchestrator").Msg("notification dropped")
	}
}

func mapStoreErr(err error, notFoundMsg string) error {
	if errors.Is(err, core.ErrSessionNotFound) {
		return domain.NotFound(notFoundMsg)
	}
	return domain.StoreFailure("Session store unavailable")
}
