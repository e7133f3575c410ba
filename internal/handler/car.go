package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/driveeasy/driveeasy-api/internal/middleware"
	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/payload"
	"github.com/driveeasy/driveeasy-api/internal/usecase"
	"github.com/driveeasy/driveeasy-api/shared/httpx"
	"github.com/driveeasy/driveeasy-api/shared/validation"
)

// CarHandler serves the /api/cars endpoints.
type CarHandler struct {
	carUsecase usecase.CarUsecase
	validator  *validation.Validator
	logger     *zerolog.Logger
}

func NewCarHandler(
	carUsecase usecase.CarUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *CarHandler {
	return &CarHandler{
		carUsecase: carUsecase,
		validator:  validator,
		logger:     logger,
	}
}

// List handles GET /api/cars. Public.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carUsecase.ListCars(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list cars")
		httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if cars == nil {
		cars = []model.Car{}
	}

	httpx.JSON(w, http.StatusOK, cars)
}

// GetByID handles GET /api/cars/{id}. Public.
func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	car, err := h.carUsecase.GetCar(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCarID):
			httpx.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid car ID: %s", id))
		case errors.Is(err, usecase.ErrCarNotFound):
			httpx.Message(w, http.StatusNotFound, "Car not found")
		default:
			h.logger.Error().Err(err).Str("car_id", id).Msg("failed to fetch car")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	httpx.JSON(w, http.StatusOK, car)
}

// ListByOwner handles GET /api/cars/owner?ownerId=. The caller may only list
// their own cars.
func (h *CarHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())

	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		httpx.Message(w, http.StatusBadRequest, "Owner ID is required")
		return
	}

	cars, err := h.carUsecase.ListCarsByOwner(r.Context(), callerID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCarID):
			httpx.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid owner ID: %s", ownerID))
		case errors.Is(err, usecase.ErrNotSelf):
			httpx.Message(w, http.StatusForbidden, "Forbidden: You can only view your own cars")
		default:
			h.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list cars by owner")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	if cars == nil {
		cars = []model.Car{}
	}

	httpx.JSON(w, http.StatusOK, cars)
}

// Create handles POST /api/cars: multipart listing fields plus up to five car
// images, one driver's license and one national id document.
func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fields, err := parseCarFields(r)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	req := payload.CreateCarRequest{
		CarFields: fields,
		OwnerID:   r.FormValue("ownerId"),
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	form := r.MultipartForm
	imageHeaders := form.File["carImages"]
	licenseHeaders := form.File["driverLicense"]
	nationalIDHeaders := form.File["nationalId"]

	if len(imageHeaders) == 0 || len(licenseHeaders) != 1 || len(nationalIDHeaders) != 1 {
		httpx.Message(w, http.StatusBadRequest, "Car images, driver's license, and national ID are required")
		return
	}
	if len(imageHeaders) > 5 {
		httpx.Message(w, http.StatusBadRequest, "Maximum 5 car images allowed")
		return
	}

	carImages, err := readUploads(imageHeaders)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	driverLicense, err := readUpload(licenseHeaders[0])
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	nationalID, err := readUpload(nationalIDHeaders[0])
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	car, err := h.carUsecase.CreateCar(r.Context(), callerID, usecase.CreateCarParams{
		Fields:        fields,
		OwnerID:       req.OwnerID,
		CarImages:     carImages,
		DriverLicense: driverLicense,
		NationalID:    nationalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCarID):
			httpx.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid owner ID: %s", req.OwnerID))
		case errors.Is(err, usecase.ErrNotSelf):
			httpx.Message(w, http.StatusForbidden, "Forbidden: You can only list cars for yourself")
		default:
			h.logger.Error().Err(err).Msg("failed to create car")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, payload.CreateCarResponse{
		Message: "Car added successfully",
		CarID:   car.ID.Hex(),
	})
}

// Update handles PUT /api/cars/{id}. File fields are replaced only when
// re-uploaded.
func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fields, err := parseCarFields(r)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(fields); err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params := usecase.UpdateCarParams{Fields: fields}

	form := r.MultipartForm
	if imageHeaders := form.File["carImages"]; len(imageHeaders) > 0 {
		if len(imageHeaders) > 5 {
			httpx.Message(w, http.StatusBadRequest, "Maximum 5 car images allowed")
			return
		}
		carImages, err := readUploads(imageHeaders)
		if err != nil {
			httpx.Message(w, http.StatusBadRequest, err.Error())
			return
		}
		params.CarImages = carImages
	}
	if licenseHeaders := form.File["driverLicense"]; len(licenseHeaders) > 0 {
		driverLicense, err := readUpload(licenseHeaders[0])
		if err != nil {
			httpx.Message(w, http.StatusBadRequest, err.Error())
			return
		}
		params.DriverLicense = &driverLicense
	}
	if nationalIDHeaders := form.File["nationalId"]; len(nationalIDHeaders) > 0 {
		nationalID, err := readUpload(nationalIDHeaders[0])
		if err != nil {
			httpx.Message(w, http.StatusBadRequest, err.Error())
			return
		}
		params.NationalID = &nationalID
	}

	if _, err := h.carUsecase.UpdateCar(r.Context(), callerID, id, params); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCarID):
			httpx.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid car ID: %s", id))
		case errors.Is(err, usecase.ErrCarNotFound):
			httpx.Message(w, http.StatusNotFound, "Car not found")
		case errors.Is(err, usecase.ErrNotCarOwner):
			httpx.Message(w, http.StatusForbidden, "Forbidden: You can only edit your own cars")
		default:
			h.logger.Error().Err(err).Str("car_id", id).Msg("failed to update car")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	httpx.Message(w, http.StatusOK, "Car updated successfully")
}

// Delete handles DELETE /api/cars/{id}.
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.carUsecase.DeleteCar(r.Context(), callerID, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCarID):
			httpx.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid car ID: %s", id))
		case errors.Is(err, usecase.ErrCarNotFound):
			httpx.Message(w, http.StatusNotFound, "Car not found")
		case errors.Is(err, usecase.ErrNotCarOwner):
			httpx.Message(w, http.StatusForbidden, "Forbidden: You can only delete your own cars")
		default:
			h.logger.Error().Err(err).Str("car_id", id).Msg("failed to delete car")
			httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	httpx.Message(w, http.StatusOK, "Car deleted successfully")
}

// parseCarFields coerces the multipart listing fields into a typed struct.
func parseCarFields(r *http.Request) (payload.CarFields, error) {
	var fields payload.CarFields

	passengers, err := strconv.Atoi(r.FormValue("passengers"))
	if err != nil {
		return fields, fmt.Errorf("passengers must be an integer")
	}

	rate, err := strconv.ParseFloat(r.FormValue("rate"), 64)
	if err != nil {
		return fields, fmt.Errorf("rate must be a number")
	}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		return fields, fmt.Errorf("year must be an integer")
	}

	if len(r.MultipartForm.Value["availability"]) == 0 {
		return fields, fmt.Errorf("availability is required")
	}

	fields = payload.CarFields{
		Model:              r.FormValue("model"),
		Type:               r.FormValue("type"),
		Passengers:         passengers,
		Rate:               rate,
		Location:           r.FormValue("location"),
		Description:        r.FormValue("description"),
		RegistrationNumber: r.FormValue("registrationNumber"),
		Color:              r.FormValue("color"),
		Year:               year,
		Availability:       r.FormValue("availability") == "true",
		OwnerPhone:         r.FormValue("ownerPhone"),
	}

	return fields, nil
}
