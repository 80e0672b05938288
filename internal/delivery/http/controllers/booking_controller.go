package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// BookRequest is the request body for POST /events/{eventID}/bookings.
type BookRequest struct {
	Seats int `json:"seats"`
}

// Validate implements Validator. Zero seats is invalid input, not a no-op booking.
func (b BookRequest) Validate() []string {
	var errs []string
	if b.Seats <= 0 {
		errs = append(errs, "seats must be a positive integer")
	}
	return errs
}

// ListAllBookingsResponse is the paginated payload for GET /admin/bookings.
type ListAllBookingsResponse struct {
	Bookings   []*domain.Booking      `json:"bookings"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// Book godoc
// @Summary Book seats for an event
// @Description Atomically reserves the requested seats against the event's remaining capacity. Requires the user role. A capacity rejection reports the actual remaining seat count and is only worth retrying with fewer seats.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param booking body BookRequest true "Seats to reserve"
// @Success 201 {object} helpers.APIResponse "data contains the booking confirmation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (insufficient capacity, message includes remaining)"
// @Failure 503 {object} helpers.APIResponse "error.code: try_again (safe to retry with identical input)"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) Book(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseID(w, r, "eventID")
	if !ok {
		return
	}
	var req BookRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	conf, err := c.Service.Book(r.Context(), id.UserID, eventID, req.Seats)
	if err != nil {
		var capErr *domain.CapacityError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, fmt.Sprintf("event %d not found", eventID))
		case errors.As(err, &capErr):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict,
				fmt.Sprintf("requested %d seats exceed remaining capacity, %d remaining", capErr.Requested, capErr.Remaining))
		case errors.Is(err, domain.ErrInvalidSeats):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrTryAgain):
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeTryAgain, "booking could not complete, please try again")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// ListMyBookings godoc
// @Summary List the current user's bookings
// @Description Returns all bookings made by the authenticated user, each with its event details.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the booking list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/bookings [get]
func (c *BookingController) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bookings, err := c.Service.ListMyBookings(r.Context(), id.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// ListAllBookings godoc
// @Summary List all bookings (admin)
// @Description Returns the full booking ledger, newest first, paginated. Admin role required.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains bookings and pagination metadata"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/bookings [get]
func (c *BookingController) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	bookings, total, err := c.Service.ListAllBookings(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListAllBookingsResponse{
		Bookings:   bookings,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
