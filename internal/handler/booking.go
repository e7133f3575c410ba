package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/driveeasy/driveeasy-api/internal/middleware"
	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/payload"
	"github.com/driveeasy/driveeasy-api/internal/usecase"
	"github.com/driveeasy/driveeasy-api/shared/httpx"
	"github.com/driveeasy/driveeasy-api/shared/validation"
)

// BookingHandler serves the /api/bookings endpoints.
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func NewBookingHandler(
	bookingUsecase usecase.BookingUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
		logger:         logger,
	}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())

	var req payload.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), callerID, usecase.CreateBookingParams{
		CarID:     req.CarID,
		RenterID:  req.RenterID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		TotalCost: req.TotalCost,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotSelf):
			httpx.Message(w, http.StatusForbidden, "Forbidden: You can only book for yourself")
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			httpx.Message(w, http.StatusBadRequest, "End time must be after start time")
		case errors.Is(err, usecase.ErrCostMismatch):
			httpx.Message(w, http.StatusBadRequest, "Total cost does not match the car rate for the selected time range")
		case errors.Is(err, usecase.ErrCarUnavailable):
			httpx.Message(w, http.StatusBadRequest, "Car is not available for the selected dates")
		case errors.Is(err, usecase.ErrCarNotFound):
			httpx.Message(w, http.StatusNotFound, "Car not found")
		default:
			h.logger.Error().Err(err).Msg("failed to create booking")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, payload.CreateBookingResponse{
		Message:   "Booking created successfully",
		BookingID: booking.ID.Hex(),
	})
}

// ListForUser handles GET /api/bookings/user, returning the caller's bookings
// joined with their cars.
func (h *BookingHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())

	bookings, err := h.bookingUsecase.ListBookingsForUser(r.Context(), callerID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list bookings for user")
		httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if bookings == nil {
		bookings = []model.BookingWithCar{}
	}

	httpx.JSON(w, http.StatusOK, bookings)
}

// GetByID handles GET /api/bookings/{id}.
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	booking, err := h.bookingUsecase.GetBooking(r.Context(), callerID, id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			httpx.Message(w, http.StatusNotFound, "Booking not found")
		case errors.Is(err, usecase.ErrNotBookingRenter):
			httpx.Message(w, http.StatusForbidden, "You are not authorized to view this booking")
		default:
			h.logger.Error().Err(err).Str("booking_id", id).Msg("failed to fetch booking")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	httpx.JSON(w, http.StatusOK, booking)
}
