package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, cid core.ConnID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(cid)).Msg("readPump closing")
		cancel()
		c.Close()
		// Use a fresh context: teardown must complete even though the
		// connection's context just ended.
		ctl.Orch.OnDisconnect(context.Background(), cid)
	}()

	c.conn.SetReadLimit(ctl.cfg.ReadLimit)
	// Classic gorilla pairing: pings every PingPeriod, pong expected within
	// 10/9 of that.
	pongWait := ctl.cfg.PingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(cid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleEvent(ctx, cid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleEvent(ctx context.Context, cid core.ConnID, c *WsSignalConn, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Malformed intents are ignored by contract.
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("bad json, ignored")
		return
	}

	switch env.Type {
	case domain.EvtStartStream:
		ctl.handleStart(ctx, cid, c, data)
	case domain.EvtJoinStream:
		ctl.handleJoin(ctx, cid, c, data)
	case domain.EvtEndStream:
		ctl.handleEnd(ctx, cid, c, data)
	case domain.EvtSignal:
		ctl.handleRelay(cid, c, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event, ignored")
	}
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

// sendError reports a failed intent back to the requester. Non-domain errors
// are masked the way the platform always did.
func (ctl *SignalWSController) sendError(c *WsSignalConn, err error) {
	msg := "Server error"
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
	}
	ctl.sendJSON(c, domain.NewErrorEvent(msg))
}
