package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
)

// GuestHandler handles HTTP requests for the guest registry. Guests are
// created implicitly by bookings; this surface is read and cleanup only.
type GuestHandler struct {
	guests       *application.GuestService
	reservations *application.ReservationService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(guests *application.GuestService, reservations *application.ReservationService) *GuestHandler {
	return &GuestHandler{guests: guests, reservations: reservations}
}

// RegisterRoutes registers all guest routes on the given router group.
func (h *GuestHandler) RegisterRoutes(r *gin.RouterGroup) {
	guests := r.Group("/api/v1/guests")
	{
		guests.GET("", h.ListGuests)
		guests.GET("/document/:document", h.GetGuestByDocument)
		guests.GET("/:id", h.GetGuest)
		guests.GET("/:id/reservations", h.GuestReservations)
		guests.DELETE("/:id", h.DeleteGuest)
	}
}

// ListGuests handles GET /api/v1/guests.
func (h *GuestHandler) ListGuests(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.guests.ListGuests(c.Request.Context(), page, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetGuest handles GET /api/v1/guests/:id.
func (h *GuestHandler) GetGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid guest ID")
		return
	}

	result, err := h.guests.GetGuest(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// GetGuestByDocument handles GET /api/v1/guests/document/:document.
func (h *GuestHandler) GetGuestByDocument(c *gin.Context) {
	document := c.Param("document")
	if document == "" {
		BadRequest(c, "document is required")
		return
	}

	result, err := h.guests.GetGuestByDocument(c.Request.Context(), document)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// GuestReservations handles GET /api/v1/guests/:id/reservations.
func (h *GuestHandler) GuestReservations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid guest ID")
		return
	}

	filter := reservationDomain.Filter{GuestID: &id}
	page, limit := parsePagination(c)

	result, err := h.reservations.ListReservations(c.Request.Context(), filter, page, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// DeleteGuest handles DELETE /api/v1/guests/:id. Guests with active
// reservations cannot be removed.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid guest ID")
		return
	}

	if err := h.guests.DeleteGuest(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	NoContent(c)
}
