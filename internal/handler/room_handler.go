package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
)

// RoomHandler handles HTTP requests for room administration.
type RoomHandler struct {
	rooms        *application.RoomService
	reservations *application.ReservationService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rooms *application.RoomService, reservations *application.ReservationService) *RoomHandler {
	return &RoomHandler{rooms: rooms, reservations: reservations}
}

// RegisterRoutes registers all room routes on the given router group.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup) {
	rooms := r.Group("/api/v1/rooms")
	{
		rooms.POST("", h.CreateRoom)
		rooms.GET("", h.ListRooms)
		rooms.GET("/available", h.AvailableRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.PUT("/:id/maintenance", h.SetMaintenance)
		rooms.GET("/:id/reservations", h.RoomReservations)
		rooms.DELETE("/:id", h.DeleteRoom)
	}
}

// CreateRoom handles POST /api/v1/rooms.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req application.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.rooms.CreateRoom(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// ListRooms handles GET /api/v1/rooms.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	result, err := h.rooms.ListRooms(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// AvailableRooms handles GET /api/v1/rooms/available?checkin=...&checkout=...
// Returns rooms with no active reservation overlapping the requested stay.
func (h *RoomHandler) AvailableRooms(c *gin.Context) {
	checkin, err := parseDate(c.Query("checkin"))
	if err != nil {
		BadRequest(c, "invalid checkin date, expected YYYY-MM-DD")
		return
	}
	checkout, err := parseDate(c.Query("checkout"))
	if err != nil {
		BadRequest(c, "invalid checkout date, expected YYYY-MM-DD")
		return
	}

	result, err := h.rooms.AvailableRooms(c.Request.Context(), checkin, checkout)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// GetRoom handles GET /api/v1/rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid room ID")
		return
	}

	result, err := h.rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// UpdateRoom handles PUT /api/v1/rooms/:id.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid room ID")
		return
	}

	var req application.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.rooms.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// SetMaintenance handles PUT /api/v1/rooms/:id/maintenance. The maintenance
// flag is sticky: it overrides occupancy until explicitly cleared.
func (h *RoomHandler) SetMaintenance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid room ID")
		return
	}

	var body struct {
		Maintenance *bool `json:"maintenance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.rooms.SetMaintenance(c.Request.Context(), id, *body.Maintenance)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// RoomReservations handles GET /api/v1/rooms/:id/reservations.
func (h *RoomHandler) RoomReservations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid room ID")
		return
	}

	filter := reservationDomain.Filter{RoomID: &id}
	page, limit := parsePagination(c)

	result, err := h.reservations.ListReservations(c.Request.Context(), filter, page, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id. Rooms with active
// reservations cannot be removed.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid room ID")
		return
	}

	if err := h.rooms.DeleteRoom(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	NoContent(c)
}
