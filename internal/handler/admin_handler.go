package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pousada-alegrim/service-reservations/internal/application"
)

// AdminHandler handles the operational dashboard endpoints.
type AdminHandler struct {
	reservations *application.ReservationService
	rooms        *application.RoomService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reservations *application.ReservationService, rooms *application.RoomService) *AdminHandler {
	return &AdminHandler{reservations: reservations, rooms: rooms}
}

// RegisterRoutes registers admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/stats", h.Stats)
	}
}

type statsResponse struct {
	Reservations *application.ReservationStatsDTO `json:"reservations"`
	Rooms        *application.RoomStatsDTO        `json:"rooms"`
}

// Stats handles GET /api/v1/admin/stats. It combines reservation counts by
// status, completed revenue and room occupancy into one dashboard payload.
func (h *AdminHandler) Stats(c *gin.Context) {
	reservationStats, err := h.reservations.GetStats(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	roomStats, err := h.rooms.GetStats(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, statsResponse{Reservations: reservationStats, Rooms: roomStats})
}
