package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
	guestDomain "github.com/pousada-alegrim/service-reservations/internal/domain/guest"
)

type guestRepository struct {
	access func() (*dataset, func())
}

func (r *guestRepository) FindByID(_ context.Context, id uuid.UUID) (*guestDomain.Guest, error) {
	data, release := r.access()
	defer release()

	g, ok := data.guests[id]
	if !ok {
		return nil, domain.NewGuestNotFoundError(id.String())
	}
	return cloneGuest(g), nil
}

func (r *guestRepository) FindByDocument(_ context.Context, document string) (*guestDomain.Guest, error) {
	data, release := r.access()
	defer release()

	for _, g := range data.guests {
		if g.Document() == document {
			return cloneGuest(g), nil
		}
	}
	return nil, domain.NewGuestNotFoundError(document)
}

func (r *guestRepository) List(_ context.Context, page, limit int) ([]*guestDomain.Guest, int64, error) {
	data, release := r.access()
	defer release()

	all := make([]*guestDomain.Guest, 0, len(data.guests))
	for _, g := range data.guests {
		all = append(all, cloneGuest(g))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName() < all[j].FullName() })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []*guestDomain.Guest{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *guestRepository) Upsert(_ context.Context, g *guestDomain.Guest) (*guestDomain.Guest, error) {
	data, release := r.access()
	defer release()

	for id, existing := range data.guests {
		if existing.Document() == g.Document() {
			refreshed := cloneGuest(existing)
			refreshed.UpdateContact(g.FullName(), g.Email(), g.Phone(), g.Address(), g.UpdatedAt())
			data.guests[id] = refreshed
			return cloneGuest(refreshed), nil
		}
	}
	data.guests[g.ID()] = cloneGuest(g)
	return cloneGuest(g), nil
}

func (r *guestRepository) Delete(_ context.Context, id uuid.UUID) error {
	data, release := r.access()
	defer release()

	if _, ok := data.guests[id]; !ok {
		return domain.NewGuestNotFoundError(id.String())
	}
	delete(data.guests, id)
	return nil
}
