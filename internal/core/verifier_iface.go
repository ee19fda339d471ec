package core

import (
	"context"

	"github.com/mentorlink/webicast/internal/domain"
)

// Verifier resolves a bearer credential to a principal.
// Implementations may block on I/O; failures surface as domain errors.
type Verifier interface {
	Verify(ctx context.Context, credential string) (domain.Principal, error)
}
