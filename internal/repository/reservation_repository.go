package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
)

// GormReservationRepository is the GORM-based implementation of
// reservation.Repository. Overlap and coverage queries run against the
// transaction scope the repository is bound to, so inside WithRoomLock they
// observe writes made earlier in the same transaction.
type GormReservationRepository struct {
	db *gorm.DB
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewReservationNotFoundError(id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model)
}

// List retrieves reservations matching the filter, newest first.
func (r *GormReservationRepository) List(ctx context.Context, filter reservationDomain.Filter, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&ReservationModel{})
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.GuestID != nil {
		query = query.Where("guest_id = ?", *filter.GuestID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i, m := range models {
		res, err := toDomainReservation(&m)
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = res
	}
	return reservations, total, nil
}

// HasOverlap reports whether any active reservation for the room overlaps
// [checkin, checkout). Half-open semantics: touching boundaries do not
// conflict.
func (r *GormReservationRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, checkin, checkout time.Time, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatusStrings()).
		Where("checkin < ? AND checkout > ?", checkout, checkin)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", err)
	}
	return count > 0, nil
}

// ExistsActiveCovering reports whether any active reservation for the room
// covers the given date.
func (r *GormReservationRepository) ExistsActiveCovering(ctx context.Context, roomID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatusStrings()).
		Where("checkin <= ? AND checkout > ?", date, date).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check date coverage: %w", err)
	}
	return count > 0, nil
}

// CountByRoom returns the number of reservations referencing a room,
// terminal ones included.
func (r *GormReservationRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations by room: %w", err)
	}
	return count, nil
}

// CountByGuest returns the number of reservations referencing a guest,
// terminal ones included.
func (r *GormReservationRepository) CountByGuest(ctx context.Context, guestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("guest_id = ?", guestID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations by guest: %w", err)
	}
	return count, nil
}

// CountByStatus returns reservation counts grouped by status.
func (r *GormReservationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count reservations by status: %w", err)
	}
	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// CompletedRevenueCents returns the summed price of completed reservations.
func (r *GormReservationRepository) CompletedRevenueCents(ctx context.Context) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select("COALESCE(SUM(total_price_cents), 0)").
		Where("status = ?", string(reservationDomain.StatusCompleted)).
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum completed revenue: %w", err)
	}
	return revenue, nil
}

// Save persists a new reservation.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update persists changes to an existing reservation with optimistic locking.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before persisting).
	expectedVersion := res.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"room_id":           model.RoomID,
			"checkin":           model.Checkin,
			"checkout":          model.Checkout,
			"occupants":         model.Occupants,
			"total_price_cents": model.TotalPriceCents,
			"status":            model.Status,
			"notes":             model.Notes,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConcurrencyConflictError("reservation was modified by another transaction")
	}
	return nil
}

// Delete removes a reservation.
func (r *GormReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ReservationModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewReservationNotFoundError(id.String())
	}
	return nil
}
