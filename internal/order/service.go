package order

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service wraps the repository with the status state machine and the
// lookups the storefront exposes.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Track looks an order up by its human-readable number. The phone number
// must match so a guessed order number alone leaks nothing.
func (s *Service) Track(ctx context.Context, orderNumber, phone string) (*Order, error) {
	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if phone == "" || o.Customer.Phone != phone {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerKey string) ([]Order, error) {
	return s.repo.ListByOwner(ctx, ownerKey)
}

func (s *Service) ListByPhone(ctx context.Context, phone string) ([]Order, error) {
	return s.repo.ListByPhone(ctx, phone)
}

// UpdateStatus validates the transition against the current status before
// touching the row.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus Status) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == newStatus {
		return nil
	}

	if !CanTransition(current.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, current.Status, newStatus); err != nil {
		return err
	}

	log.Info().
		Str("order_id", id).
		Stringer("old_status", current.Status).
		Stringer("new_status", newStatus).
		Msg("order status updated")
	return nil
}
