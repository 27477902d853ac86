package guest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

func TestNewGuest(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	g, err := NewGuest("Maria Souza", "12345678900", "maria@example.com", "+55 11 99999-0000", "Rua das Flores 10", now)
	require.NoError(t, err)
	assert.Equal(t, "12345678900", g.Document())

	_, err = NewGuest("", "12345678900", "", "", "", now)
	assert.Equal(t, domain.KindGuestInvalid, domain.KindOf(err))

	_, err = NewGuest("Maria Souza", "", "", "", "", now)
	assert.Equal(t, domain.KindGuestInvalid, domain.KindOf(err))
}

func TestUpdateContactKeepsIdentity(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	g, err := NewGuest("Maria Souza", "12345678900", "maria@example.com", "", "", now)
	require.NoError(t, err)

	later := now.Add(48 * time.Hour)
	g.UpdateContact("Maria S. Oliveira", "", "+55 11 98888-1111", "", later)

	assert.Equal(t, "Maria S. Oliveira", g.FullName())
	assert.Equal(t, "maria@example.com", g.Email(), "empty fields keep prior values")
	assert.Equal(t, "+55 11 98888-1111", g.Phone())
	assert.Equal(t, "12345678900", g.Document(), "document never changes")
	assert.Equal(t, later, g.UpdatedAt())
}
