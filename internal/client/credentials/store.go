package credentials

import (
	"context"

	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/common"
	"github.com/apexfit/apexfit-go/internal/logging"
)

// Store is the redundant credential store. Writes go to the primary backend
// and are mirrored to the secondary; reads prefer the primary and fall back
// to the secondary. Backend failures are logged and swallowed so a broken
// store degrades to "no credentials" instead of crashing a request path.
type Store struct {
	primary   Backend
	secondary Backend
	log       logging.Logger
}

func NewStore(primary, secondary Backend, log logging.Logger) *Store {
	return &Store{primary: primary, secondary: secondary, log: log.With("component", "credentials")}
}

// Get returns the stored pair, or nil when no readable backend holds one.
func (s *Store) Get(ctx context.Context) *models.Credentials {
	c, err := s.primary.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "credential read failed, trying fallback", "backend", s.primary.Name(), "error", err)
	}
	if c != nil {
		return c
	}

	c, err = s.secondary.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "credential read failed", "backend", s.secondary.Name(), "error", err)
		return nil
	}
	return c
}

// Set persists the pair to both backends. An incomplete pair is rejected
// before touching either backend; backend write failures are logged and
// swallowed.
func (s *Store) Set(ctx context.Context, creds models.Credentials) error {
	if !creds.Complete() {
		return common.ErrIncompleteTokenPair
	}
	if err := s.primary.Set(ctx, creds); err != nil {
		s.log.Warn(ctx, "credential write failed", "backend", s.primary.Name(), "error", err)
	}
	if err := s.secondary.Set(ctx, creds); err != nil {
		s.log.Warn(ctx, "credential write failed", "backend", s.secondary.Name(), "error", err)
	}
	return nil
}

// Clear removes the pair from both backends unconditionally, even if one
// already lacks it.
func (s *Store) Clear(ctx context.Context) {
	if err := s.primary.Clear(ctx); err != nil {
		s.log.Warn(ctx, "credential clear failed", "backend", s.primary.Name(), "error", err)
	}
	if err := s.secondary.Clear(ctx); err != nil {
		s.log.Warn(ctx, "credential clear failed", "backend", s.secondary.Name(), "error", err)
	}
}

// Has reports whether a complete pair is currently readable.
func (s *Store) Has(ctx context.Context) bool {
	c := s.Get(ctx)
	return c != nil && c.Complete()
}
