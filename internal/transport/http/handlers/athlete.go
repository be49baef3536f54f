package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/endurancehub/endurance-hub/internal/application/athlete"
	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/transport/http/dto"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

type AthleteHandler struct {
	svc *athlete.Service
}

func NewAthleteHandler(svc *athlete.Service) *AthleteHandler {
	return &AthleteHandler{svc: svc}
}

func athleteActor(r *http.Request) (athlete.Actor, bool) {
	u, ok := middleware.AuthUserFromContext(r.Context())
	return athlete.Actor{ID: u.ID, Role: u.Role}, ok
}

func (h *AthleteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAthleteRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), athlete.CreateInput{
		UserID: req.UserID,
		ProfileFields: athlete.ProfileFields{
			DateOfBirth:      req.DateOfBirth,
			HeightCm:         req.HeightCm,
			WeightKg:         req.WeightKg,
			RestingHeartRate: req.RestingHeartRate,
			Bio:              req.Bio,
		},
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewAthleteView(a))
}

func (h *AthleteHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := athleteActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	out, err := h.svc.List(r.Context(), actor, r.URL.Query().Get("user_id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAthleteViews(out))
}

func (h *AthleteHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := athleteActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	a, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAthleteView(a))
}

func (h *AthleteHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := athleteActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	var req dto.UpdateAthleteRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Update(r.Context(), actor, chi.URLParam(r, "id"), athlete.ProfileFields{
		DateOfBirth:      req.DateOfBirth,
		HeightCm:         req.HeightCm,
		WeightKg:         req.WeightKg,
		RestingHeartRate: req.RestingHeartRate,
		Bio:              req.Bio,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAthleteView(a))
}

func (h *AthleteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
