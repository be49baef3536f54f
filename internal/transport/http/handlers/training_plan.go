package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/endurancehub/endurance-hub/internal/application/plans"
	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/transport/http/dto"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

type TrainingPlanHandler struct {
	svc *plans.TrainingService
}

func NewTrainingPlanHandler(svc *plans.TrainingService) *TrainingPlanHandler {
	return &TrainingPlanHandler{svc: svc}
}

func planActor(r *http.Request) (plans.Actor, bool) {
	u, ok := middleware.AuthUserFromContext(r.Context())
	return plans.Actor{ID: u.ID, Role: u.Role}, ok
}

func (h *TrainingPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	var req dto.CreateTrainingPlanRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), actor, plans.CreateTrainingInput{
		AthleteID:      req.AthleteID,
		SpecialistID:   req.SpecialistID,
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IntensityLevel: req.IntensityLevel,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewTrainingPlanView(p))
}

func (h *TrainingPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	q := r.URL.Query()
	out, err := h.svc.List(r.Context(), actor, plans.ListFilter{
		AthleteID:    q.Get("athlete_id"),
		SpecialistID: q.Get("specialist_id"),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTrainingPlanViews(out))
}

// ListForAthlete serves the athlete-scoped alias route; the path id takes
// the place of the athlete_id query filter.
func (h *TrainingPlanHandler) ListForAthlete(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	out, err := h.svc.List(r.Context(), actor, plans.ListFilter{
		AthleteID:    chi.URLParam(r, "id"),
		SpecialistID: r.URL.Query().Get("specialist_id"),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTrainingPlanViews(out))
}

func (h *TrainingPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	p, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTrainingPlanView(p))
}

func (h *TrainingPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	var req dto.UpdateTrainingPlanRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), actor, chi.URLParam(r, "id"), plans.UpdateTrainingInput{
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IntensityLevel: req.IntensityLevel,
		SpecialistID:   req.SpecialistID,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTrainingPlanView(p))
}

func (h *TrainingPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	if err := h.svc.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
