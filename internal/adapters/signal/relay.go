package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

// handleRelay forwards an opaque signaling payload to a named connection.
// There is no delivery guarantee and no error to the sender.
func (ctl *SignalWSController) handleRelay(cid core.ConnID, c *WsSignalConn, data []byte) {
	var p domain.SignalEvent
	if err := json.Unmarshal(data, &p); err != nil || p.To == "" {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("bad signal payload, ignored")
		return
	}
	ctl.Orch.Relay(cid, core.ConnID(p.To), p.Signal)
}
