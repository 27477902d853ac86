package reservation

import (
	"fmt"
	"time"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

// Currency is the currency code applied to all reservation prices. Rates and
// totals are carried as integer cents, so currency-precision rounding is
// exact by construction.
const Currency = "BRL"

// DefaultMaxStayNights bounds the stay length when no explicit limit is
// configured.
const DefaultMaxStayNights = 30

// Nights returns the number of nights in the half-open range
// [checkin, checkout). Inputs are expected to be UTC dates.
func Nights(checkin, checkout time.Time) int {
	return int(checkout.Sub(checkin) / (24 * time.Hour))
}

// ValidateRange checks that [checkin, checkout) is a well-formed stay of at
// least one night and at most maxNights. A non-positive maxNights falls back
// to DefaultMaxStayNights.
func ValidateRange(checkin, checkout time.Time, maxNights int) error {
	if maxNights <= 0 {
		maxNights = DefaultMaxStayNights
	}
	nights := Nights(checkin, checkout)
	if nights <= 0 {
		return domain.NewInvalidRangeError("check-out must be after check-in")
	}
	if nights > maxNights {
		return domain.NewInvalidRangeError(
			fmt.Sprintf("stay of %d nights exceeds the maximum of %d", nights, maxNights),
		)
	}
	return nil
}

// Price computes the total price in cents for a stay: nightly rate times the
// number of nights. The rate is the room's rate at booking (or edit) time;
// later rate changes never reprice existing reservations.
func Price(rateCents int64, checkin, checkout time.Time) (int64, error) {
	nights := Nights(checkin, checkout)
	if nights <= 0 {
		return 0, domain.NewInvalidRangeError("check-out must be after check-in")
	}
	if rateCents <= 0 {
		return 0, domain.NewValidationError("nightly rate must be positive")
	}
	return rateCents * int64(nights), nil
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night. Touching boundaries do not
// overlap: one stay may check out the day another checks in.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
