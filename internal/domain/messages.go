package domain

import "encoding/json"

// Event types from client.
const (
	EvtStartStream = "start-stream"
	EvtJoinStream  = "join-stream"
	EvtSignal      = "signal"
	EvtEndStream   = "end-stream"
)

// Event types to client.
const (
	EvtStreamStarted    = "stream-started"
	EvtStreamJoined     = "stream-joined"
	EvtNewViewer        = "new-viewer"
	EvtStreamEnded      = "stream-ended"
	EvtStreamEndConfirm = "stream-end-confirmed"
	EvtViewerLeft       = "viewer-left"
	EvtError            = "error"
)

// Teardown reasons carried by stream-ended.
const (
	ReasonHostEnded        = "Host ended the stream"
	ReasonHostDisconnected = "Host disconnected"
)

// Envelope is the minimal shape every inbound event shares.
type Envelope struct {
	Type string `json:"type"`
}

// Client -> server events.

type StartStreamEvent struct {
	Type       string    `json:"type"`
	SessionID  SessionID `json:"sessionId"`
	Credential string    `json:"credential"`
}

type JoinStreamEvent struct {
	Type       string    `json:"type"`
	SessionID  SessionID `json:"sessionId"`
	Credential string    `json:"credential"`
}

type EndStreamEvent struct {
	Type       string    `json:"type"`
	SessionID  SessionID `json:"sessionId"`
	Credential string    `json:"credential"`
}

// SignalEvent is both the inbound relay request ({to, signal}) and the
// outbound delivery ({from, signal}). The signal payload is opaque and is
// forwarded verbatim.
type SignalEvent struct {
	Type   string          `json:"type"`
	To     string          `json:"to,omitempty"`
	From   string          `json:"from,omitempty"`
	Signal json.RawMessage `json:"signal"`
}

// Server -> client events.

type StreamStartedEvent struct {
	Type      string    `json:"type"`
	RoomID    RoomID    `json:"roomId"`
	SessionID SessionID `json:"sessionId"`
	Title     string    `json:"title"`
}

type StreamJoinedEvent struct {
	Type      string    `json:"type"`
	RoomID    RoomID    `json:"roomId"`
	HostID    string    `json:"hostId"`
	SessionID SessionID `json:"sessionId"`
	Title     string    `json:"title"`
}

type NewViewerEvent struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId"`
}

type ViewerLeftEvent struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId"`
}

type StreamEndedEvent struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type StreamEndConfirmedEvent struct {
	Type string `json:"type"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorEvent builds the error reply for a failed intent.
func NewErrorEvent(msg string) *ErrorEvent {
	return &ErrorEvent{Type: EvtError, Message: msg}
}
