package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
	guestDomain "github.com/pousada-alegrim/service-reservations/internal/domain/guest"
)

// GormGuestRepository is the GORM-based implementation of guest.Repository.
type GormGuestRepository struct {
	db *gorm.DB
}

// FindByID retrieves a guest by its unique identifier.
func (r *GormGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewGuestNotFoundError(id.String())
		}
		return nil, fmt.Errorf("failed to find guest by ID: %w", err)
	}
	return toDomainGuest(&model), nil
}

// FindByDocument retrieves a guest by the document natural key.
func (r *GormGuestRepository) FindByDocument(ctx context.Context, document string) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("document = ?", document).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewGuestNotFoundError(document)
		}
		return nil, fmt.Errorf("failed to find guest by document: %w", err)
	}
	return toDomainGuest(&model), nil
}

// List retrieves guests ordered by full name, with pagination.
func (r *GormGuestRepository) List(ctx context.Context, page, limit int) ([]*guestDomain.Guest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&GuestModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count guests: %w", err)
	}

	var models []GuestModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("full_name").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list guests: %w", err)
	}

	guests := make([]*guestDomain.Guest, len(models))
	for i, m := range models {
		guests[i] = toDomainGuest(&m)
	}
	return guests, total, nil
}

// Upsert inserts the guest, or refreshes contact fields on the existing row
// with the same document. The ON CONFLICT clause makes concurrent first-time
// bookings with one document converge on a single record without a
// check-then-insert race.
func (r *GormGuestRepository) Upsert(ctx context.Context, g *guestDomain.Guest) (*guestDomain.Guest, error) {
	model := toGuestModel(g)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document"}},
		// Empty incoming contact fields keep the stored values.
		DoUpdates: clause.Assignments(map[string]interface{}{
			"full_name":  gorm.Expr("excluded.full_name"),
			"email":      gorm.Expr("COALESCE(NULLIF(excluded.email, ''), guests.email)"),
			"phone":      gorm.Expr("COALESCE(NULLIF(excluded.phone, ''), guests.phone)"),
			"address":    gorm.Expr("COALESCE(NULLIF(excluded.address, ''), guests.address)"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert guest: %w", err)
	}

	// Re-read by document: on conflict the persisted row keeps its original ID.
	return r.FindByDocument(ctx, g.Document())
}

// Delete removes a guest. A non-null foreign key from reservations protects
// referenced guests; a racing delete surfaces as an integrity violation.
func (r *GormGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&GuestModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domain.NewIntegrityViolationError("guest is referenced by reservations")
		}
		return fmt.Errorf("failed to delete guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewGuestNotFoundError(id.String())
	}
	return nil
}
