package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with items and pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: message, Kind: string(domain.KindValidation)})
}

// Error maps a domain error kind to an HTTP status and writes the response.
// Non-domain errors surface as opaque 500s.
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}
	c.JSON(status, errorBody{Error: err.Error(), Kind: string(kind)})
}

var statusByKind = map[domain.Kind]int{
	domain.KindValidation:          http.StatusBadRequest,
	domain.KindInvalidRange:        http.StatusBadRequest,
	domain.KindGuestInvalid:        http.StatusBadRequest,
	domain.KindRoomNotFound:        http.StatusNotFound,
	domain.KindGuestNotFound:       http.StatusNotFound,
	domain.KindReservationNotFound: http.StatusNotFound,
	domain.KindRoomUnavailable:     http.StatusConflict,
	domain.KindInvalidTransition:   http.StatusConflict,
	domain.KindConcurrencyConflict: http.StatusConflict,
	domain.KindIntegrityViolation:  http.StatusConflict,
}

// parseDate parses a calendar date in YYYY-MM-DD form.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
