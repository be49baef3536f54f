package handlers

import (
	"net/http"

	"github.com/endurancehub/endurance-hub/internal/application/auth"
	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/logger"
	"github.com/endurancehub/endurance-hub/internal/transport/http/dto"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	in := auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	if req.Profile != nil {
		in.Profile = &auth.AthleteProfileInput{
			DateOfBirth:      req.Profile.DateOfBirth,
			HeightCm:         req.Profile.HeightCm,
			WeightKg:         req.Profile.WeightKg,
			RestingHeartRate: req.Profile.RestingHeartRate,
			Bio:              req.Profile.Bio,
		}
	}

	res, err := h.svc.Register(r.Context(), in)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("role", res.User.Role).
		Msg("user_registered")

	response.Created(w, dto.AuthData{
		User:   dto.NewUserView(res.User),
		Tokens: dto.NewTokensView(res.Tokens),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		// Validation failures here look exactly like bad credentials so a
		// probing client learns nothing about account existence.
		response.WriteError(w, r, domain.ErrInvalidCredentials())
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.AuthData{
		User:   dto.NewUserView(res.User),
		Tokens: dto.NewTokensView(res.Tokens),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	tokens, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTokensView(tokens))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req dto.LogoutRequest
	// A missing or malformed body still logs out.
	_ = response.DecodeJSON(r, &req)

	if err := h.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"status": "logged_out"})
}

// Me returns the live identity resolved by the access guard.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	full, err := h.svc.GetUserByID(r.Context(), u.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUserView(full))
}
