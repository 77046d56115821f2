// Package credentials persists the access/refresh token pair across client
// restarts. A redundant Store composes a primary and a secondary Backend so
// that one backend being unavailable degrades to re-authentication instead
// of a crash.
package credentials

import (
	"context"

	"github.com/apexfit/apexfit-go/internal/client/models"
)

// Backend is a single durable location for the token pair.
//
// Contract:
//   - Get returns (nil, nil) when no pair is stored.
//   - Set persists both tokens atomically; implementations must never leave
//     a partially written pair behind.
//   - Clear removes the pair and is a no-op when nothing is stored.
type Backend interface {
	Name() string
	Get(ctx context.Context) (*models.Credentials, error)
	Set(ctx context.Context, creds models.Credentials) error
	Clear(ctx context.Context) error
}
