package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/driveeasy/driveeasy-api/internal/middleware"
	"github.com/driveeasy/driveeasy-api/internal/payload"
	"github.com/driveeasy/driveeasy-api/internal/usecase"
	"github.com/driveeasy/driveeasy-api/shared/httpx"
	"github.com/driveeasy/driveeasy-api/shared/validation"
)

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// SignUp handles POST /api/auth/signup. The body is multipart: email and
// password fields plus a license document, a pin (proof of identity) document
// and up to five supplementary images.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := payload.SignUpRequest{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	form := r.MultipartForm
	licenseHeaders := form.File["license"]
	pinHeaders := form.File["pin"]
	imageHeaders := form.File["images"]

	if len(licenseHeaders) != 1 || len(pinHeaders) != 1 {
		httpx.Message(w, http.StatusBadRequest, "License and proof of identity are required")
		return
	}
	if len(imageHeaders) > 5 {
		httpx.Message(w, http.StatusBadRequest, "Maximum 5 images allowed")
		return
	}

	license, err := readUpload(licenseHeaders[0])
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	pin, err := readUpload(pinHeaders[0])
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	images, err := readUploads(imageHeaders)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	user, session, err := h.authUsecase.SignUp(r.Context(), usecase.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		License:  license,
		Pin:      pin,
		Images:   images,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			httpx.Message(w, http.StatusBadRequest, "User already exists")
			return
		}

		h.logger.Error().Err(err).Msg("failed to sign up user")
		httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	httpx.JSON(w, http.StatusCreated, payload.AuthResponse{
		ID:     user.ID.Hex(),
		Email:  user.Email,
		Token:  session.Token,
		Expiry: session.ExpiresAt.UnixMilli(),
	})
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	user, session, err := h.authUsecase.SignIn(r.Context(), usecase.SignInParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			httpx.Message(w, http.StatusBadRequest, "Invalid email or password")
			return
		}

		h.logger.Error().Err(err).Msg("failed to sign in user")
		httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	httpx.JSON(w, http.StatusOK, payload.AuthResponse{
		ID:     user.ID.Hex(),
		Email:  user.Email,
		Token:  session.Token,
		Expiry: session.ExpiresAt.UnixMilli(),
	})
}

// Refresh handles POST /api/auth/refresh. The caller presents a still-valid
// bearer token and receives a fresh one.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.Message(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	session, err := h.authUsecase.Refresh(r.Context(), callerID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			httpx.Message(w, http.StatusNotFound, "User not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to refresh token")
		httpx.Message(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	httpx.JSON(w, http.StatusOK, payload.RefreshResponse{
		Token:  session.Token,
		Expiry: session.ExpiresAt.UnixMilli(),
	})
}
