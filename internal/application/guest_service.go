package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

// GuestService handles guest lookups and guarded deletion. Guests are
// created through the reservation flow (upsert-by-document), never directly.
type GuestService struct {
	store  Store
	logger *zap.Logger
}

// NewGuestService creates a GuestService.
func NewGuestService(store Store, logger *zap.Logger) *GuestService {
	return &GuestService{store: store, logger: logger}
}

// GetGuest retrieves a single guest by ID.
func (s *GuestService) GetGuest(ctx context.Context, id uuid.UUID) (*GuestDTO, error) {
	g, err := s.store.Guests().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toGuestDTO(g)
	return &dto, nil
}

// GetGuestByDocument retrieves a guest by the document natural key.
func (s *GuestService) GetGuestByDocument(ctx context.Context, document string) (*GuestDTO, error) {
	if document == "" {
		return nil, domain.NewGuestInvalidError("guest document is required")
	}
	g, err := s.store.Guests().FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	dto := toGuestDTO(g)
	return &dto, nil
}

// ListGuests retrieves paginated guests ordered by name.
func (s *GuestService) ListGuests(ctx context.Context, page, limit int) (*domain.PaginatedResult[GuestDTO], error) {
	guests, total, err := s.store.Guests().List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]GuestDTO, len(guests))
	for i, g := range guests {
		dtos[i] = toGuestDTO(g)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// DeleteGuest removes a guest with no reservation history. Terminal
// reservations still reference the guest, so they must be deleted first.
func (s *GuestService) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx TxStore) error {
		if _, err := tx.Guests().FindByID(ctx, id); err != nil {
			return err
		}
		referenced, err := tx.Reservations().CountByGuest(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}
		if referenced > 0 {
			return domain.NewIntegrityViolationError(
				fmt.Sprintf("guest is referenced by %d reservations", referenced),
			)
		}
		return tx.Guests().Delete(ctx, id)
	})
}
