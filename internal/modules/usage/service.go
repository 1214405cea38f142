package usage

import (
	"context"
	"log"
	"time"
)

// Service tracks generation usage. A nil *Service (no database
// configured) disables both the quota guard and the log.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseQuota deducts one generation from the client's monthly allowance.
// If the client row does not exist yet it is initialised and the
// generation is immediately consumed. Returns ErrQuotaExhausted when the
// quota for the current month is exhausted.
func (s *Service) UseQuota(ctx context.Context, clientID string) error {
	if s == nil {
		return nil
	}
	err := s.store.UseQuota(ctx, clientID)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureClient(ctx, clientID); initErr != nil {
		return initErr
	}
	return s.store.UseQuota(ctx, clientID)
}

// Log records one completed generation. Best effort: failures are
// logged and never surfaced to the request.
func (s *Service) Log(ctx context.Context, r Record) {
	if s == nil {
		return
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if err := s.store.InsertRecord(ctx, r); err != nil {
		log.Printf("[usage] log failed: %v", err)
	}
}
