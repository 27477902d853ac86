package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

// GormRoomRepository is the GORM-based implementation of room.Repository.
type GormRoomRepository struct {
	db *gorm.DB
}

// FindByID retrieves a room by its unique identifier.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewRoomNotFoundError(id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model)
}

// FindByNumber retrieves a room by its human-readable number.
func (r *GormRoomRepository) FindByNumber(ctx context.Context, number string) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewRoomNotFoundError(number)
		}
		return nil, fmt.Errorf("failed to find room by number: %w", err)
	}
	return toDomainRoom(&model)
}

// List retrieves all rooms ordered by category then number.
func (r *GormRoomRepository) List(ctx context.Context) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).Order("category, number").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return toDomainRooms(models)
}

// FindAvailable retrieves rooms not in maintenance and free of active
// reservations overlapping [checkin, checkout).
func (r *GormRoomRepository) FindAvailable(ctx context.Context, checkin, checkout time.Time) ([]*roomDomain.Room, error) {
	occupied := r.db.Model(&ReservationModel{}).
		Select("room_id").
		Where("status IN ?", activeStatusStrings()).
		Where("checkin < ? AND checkout > ?", checkout, checkin)

	var models []RoomModel
	if err := r.db.WithContext(ctx).
		Where("status <> ?", string(roomDomain.StatusMaintenance)).
		Where("id NOT IN (?)", occupied).
		Order("category, number").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}
	return toDomainRooms(models)
}

// CountByStatus returns room counts grouped by coarse status.
func (r *GormRoomRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&RoomModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms by status: %w", err)
	}
	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, rm *roomDomain.Room) error {
	model := toRoomModel(rm)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError(fmt.Sprintf("room number %s is already in use", rm.Number()))
		}
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update persists changes to an existing room.
func (r *GormRoomRepository) Update(ctx context.Context, rm *roomDomain.Room) error {
	model := toRoomModel(rm)
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"number":      model.Number,
			"category":    model.Category,
			"floor":       model.Floor,
			"description": model.Description,
			"capacity":    model.Capacity,
			"rate_cents":  model.RateCents,
			"status":      model.Status,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.NewValidationError(fmt.Sprintf("room number %s is already in use", rm.Number()))
		}
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewRoomNotFoundError(model.ID.String())
	}
	return nil
}

// Delete removes a room. The reservations table holds a non-null foreign
// key on rooms, so a delete racing a concurrent booking surfaces as an
// integrity violation rather than an opaque failure.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RoomModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domain.NewIntegrityViolationError("room is referenced by reservations")
		}
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewRoomNotFoundError(id.String())
	}
	return nil
}

func toDomainRooms(models []RoomModel) ([]*roomDomain.Room, error) {
	rooms := make([]*roomDomain.Room, len(models))
	for i, m := range models {
		rm, err := toDomainRoom(&m)
		if err != nil {
			return nil, err
		}
		rooms[i] = rm
	}
	return rooms, nil
}
