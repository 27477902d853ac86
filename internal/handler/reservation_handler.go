package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
)

// ReservationHandler handles HTTP requests for reservation operations.
type ReservationHandler struct {
	service *application.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers all reservation routes on the given router group.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup) {
	reservations := r.Group("/api/v1/reservations")
	{
		reservations.POST("", h.CreateReservation)
		reservations.GET("", h.ListReservations)
		reservations.GET("/:id", h.GetReservation)
		reservations.POST("/:id/confirm", h.ConfirmReservation)
		reservations.POST("/:id/cancel", h.CancelReservation)
		reservations.POST("/:id/complete", h.CompleteReservation)
		reservations.PATCH("/:id", h.EditReservation)
		reservations.DELETE("/:id", h.DeleteReservation)
	}
}

type createReservationRequest struct {
	RoomID    string                  `json:"room_id" binding:"required"`
	GuestID   string                  `json:"guest_id"`
	Guest     *application.GuestInput `json:"guest"`
	Checkin   string                  `json:"checkin" binding:"required"`
	Checkout  string                  `json:"checkout" binding:"required"`
	Occupants int                     `json:"occupants" binding:"required"`
	Note      string                  `json:"note"`
}

// CreateReservation handles POST /api/v1/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		BadRequest(c, "invalid room ID")
		return
	}

	in := application.CreateReservationInput{
		RoomID:    roomID,
		Guest:     req.Guest,
		Occupants: req.Occupants,
		Note:      callerNote(c, req.Note),
	}

	if req.GuestID != "" {
		guestID, err := uuid.Parse(req.GuestID)
		if err != nil {
			BadRequest(c, "invalid guest ID")
			return
		}
		in.GuestID = &guestID
	}

	if in.Checkin, err = parseDate(req.Checkin); err != nil {
		BadRequest(c, "invalid checkin date, expected YYYY-MM-DD")
		return
	}
	if in.Checkout, err = parseDate(req.Checkout); err != nil {
		BadRequest(c, "invalid checkout date, expected YYYY-MM-DD")
		return
	}

	result, err := h.service.CreateReservation(c.Request.Context(), in)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// ListReservations handles GET /api/v1/reservations with optional room_id,
// guest_id and status filters.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var filter reservationDomain.Filter

	if raw := c.Query("room_id"); raw != "" {
		roomID, err := uuid.Parse(raw)
		if err != nil {
			BadRequest(c, "invalid room_id filter")
			return
		}
		filter.RoomID = &roomID
	}
	if raw := c.Query("guest_id"); raw != "" {
		guestID, err := uuid.Parse(raw)
		if err != nil {
			BadRequest(c, "invalid guest_id filter")
			return
		}
		filter.GuestID = &guestID
	}
	if raw := c.Query("status"); raw != "" {
		status, err := reservationDomain.ParseStatus(raw)
		if err != nil {
			BadRequest(c, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	page, limit := parsePagination(c)

	result, err := h.service.ListReservations(c.Request.Context(), filter, page, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetReservation handles GET /api/v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid reservation ID")
		return
	}

	result, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// ConfirmReservation handles POST /api/v1/reservations/:id/confirm.
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.changeStatus(c, reservationDomain.StatusConfirmed)
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	h.changeStatus(c, reservationDomain.StatusCancelled)
}

// CompleteReservation handles POST /api/v1/reservations/:id/complete.
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.changeStatus(c, reservationDomain.StatusCompleted)
}

func (h *ReservationHandler) changeStatus(c *gin.Context, target reservationDomain.Status) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid reservation ID")
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.ChangeStatus(c.Request.Context(), id, target, callerNote(c, body.Note))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// callerNote tags an audit note with the caller identity when the request
// carries one, so reservation notes record who acted.
func callerNote(c *gin.Context, note string) string {
	caller, ok := GetCallerID(c)
	if !ok {
		return note
	}
	if note == "" {
		return "requested by " + caller
	}
	return note + " (by " + caller + ")"
}

type editReservationRequest struct {
	RoomID   *string `json:"room_id"`
	Checkin  *string `json:"checkin"`
	Checkout *string `json:"checkout"`
}

// EditReservation handles PATCH /api/v1/reservations/:id. Omitted fields
// keep their current values; changed dates or room recompute the price.
func (h *ReservationHandler) EditReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid reservation ID")
		return
	}

	var req editReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var in application.EditReservationInput
	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			BadRequest(c, "invalid room ID")
			return
		}
		in.RoomID = &roomID
	}
	if req.Checkin != nil {
		checkin, err := parseDate(*req.Checkin)
		if err != nil {
			BadRequest(c, "invalid checkin date, expected YYYY-MM-DD")
			return
		}
		in.Checkin = &checkin
	}
	if req.Checkout != nil {
		checkout, err := parseDate(*req.Checkout)
		if err != nil {
			BadRequest(c, "invalid checkout date, expected YYYY-MM-DD")
			return
		}
		in.Checkout = &checkout
	}

	result, err := h.service.EditReservation(c.Request.Context(), id, in)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// DeleteReservation handles DELETE /api/v1/reservations/:id. Only pending
// and cancelled reservations can be removed.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid reservation ID")
		return
	}

	if err := h.service.DeleteReservation(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	NoContent(c)
}
