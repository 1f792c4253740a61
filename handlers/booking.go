package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spacebook/middleware"
	"spacebook/models"
	"spacebook/services/booking"
	"spacebook/utils"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusForKind maps engine failure kinds to HTTP statuses. The engine
// itself never formats presentation text.
func statusForKind(kind booking.Kind) int {
	switch kind {
	case booking.KindInvalidDate,
		booking.KindStartInPast,
		booking.KindEndBeforeStart,
		booking.KindDurationOutOfRange,
		booking.KindTooFarInAdvance:
		return http.StatusBadRequest
	case booking.KindUnauthorized, booking.KindSelfBookingForbidden:
		return http.StatusForbidden
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindDateRangeUnavailable, booking.KindInvalidTransition:
		return http.StatusConflict
	case booking.KindRepositoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) renderError(c *gin.Context, err error) {
	kind := booking.KindOf(err)
	if kind == "" {
		h.Logger.Error("unexpected booking error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	utils.JSONError(c, statusForKind(kind), err.Error(), string(kind))
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input struct {
		PropertyID string `json:"property_id" binding:"required"`
		StartDate  string `json:"start_date" binding:"required"`
		EndDate    string `json:"end_date" binding:"required"`
		Message    string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		PropertyID:  input.PropertyID,
		RequesterID: userID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Message:     input.Message,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking.ToResponse(*created)})
}

// AcceptBooking handles PUT/POST /api/bookings/:id/accept.
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	h.transition(c, h.Service.AcceptBooking)
}

// RejectBooking handles PUT/POST /api/bookings/:id/reject.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	h.transition(c, h.Service.RejectBooking)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, bookingID, actingUserID string) (*models.Booking, error)) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	bookingID := c.Param("id")
	updated, err := op(c.Request.Context(), bookingID, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking.ToResponse(*updated)})
}

// MyBookings handles GET /api/bookings/me.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	h.listing(c, h.Service.ListForRequester)
}

// OwnerBookings handles GET /api/bookings/owner.
func (h *BookingHandler) OwnerBookings(c *gin.Context) {
	h.listing(c, h.Service.ListForOwner)
}

func (h *BookingHandler) listing(c *gin.Context, op func(ctx context.Context, userID string) ([]models.Booking, error)) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	bookings, err := op(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": booking.ToResponses(bookings)})
}
