package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

func (ctl *SignalWSController) handleStart(ctx context.Context, cid core.ConnID, c *WsSignalConn, data []byte) {
	var p domain.StartStreamEvent
	if err := json.Unmarshal(data, &p); err != nil || p.SessionID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("bad start-stream payload")
		ctl.sendError(c, domain.BadRequest("Invalid payload"))
		return
	}

	room, err := ctl.Orch.Start(ctx, p.SessionID, p.Credential, cid)
	if err != nil {
		ctl.sendError(c, err)
		return
	}

	ctl.sendJSON(c, &domain.StreamStartedEvent{
		Type:      domain.EvtStreamStarted,
		RoomID:    room.RoomID,
		SessionID: room.Session,
		Title:     room.Title,
	})
}

func (ctl *SignalWSController) handleJoin(ctx context.Context, cid core.ConnID, c *WsSignalConn, data []byte) {
	var p domain.JoinStreamEvent
	if err := json.Unmarshal(data, &p); err != nil || p.SessionID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("bad join-stream payload")
		ctl.sendError(c, domain.BadRequest("Invalid payload"))
		return
	}

	room, err := ctl.Orch.Join(ctx, p.SessionID, p.Credential, cid)
	if err != nil {
		ctl.sendError(c, err)
		return
	}

	// The host was already notified; ack the joiner last.
	ctl.sendJSON(c, &domain.StreamJoinedEvent{
		Type:      domain.EvtStreamJoined,
		RoomID:    room.RoomID,
		HostID:    string(room.Host),
		SessionID: room.Session,
		Title:     room.Title,
	})
}

func (ctl *SignalWSController) handleEnd(ctx context.Context, cid core.ConnID, c *WsSignalConn, data []byte) {
	var p domain.EndStreamEvent
	if err := json.Unmarshal(data, &p); err != nil || p.SessionID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("bad end-stream payload")
		ctl.sendError(c, domain.BadRequest("Invalid payload"))
		return
	}

	if err := ctl.Orch.End(ctx, p.SessionID, p.Credential, cid); err != nil {
		ctl.sendError(c, err)
		return
	}

	ctl.sendJSON(c, &domain.StreamEndConfirmedEvent{Type: domain.EvtStreamEndConfirm})
}
