package domain

// Role is the closed set of participant roles a credential can resolve to.
type Role int

const (
	RoleUnknown Role = iota
	RoleHost
	RoleViewer
)

func (r Role) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RoleViewer:
		return "viewer"
	default:
		return "unknown"
	}
}

// Principal is the verified identity attached to an intent.
// It is resolved once by the verifier and never persisted here.
type Principal struct {
	ID   UserID
	Role Role
}
