package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/endurancehub/endurance-hub/internal/application/plans"
	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/transport/http/dto"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

type NutritionPlanHandler struct {
	svc *plans.NutritionService
}

func NewNutritionPlanHandler(svc *plans.NutritionService) *NutritionPlanHandler {
	return &NutritionPlanHandler{svc: svc}
}

func (h *NutritionPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	var req dto.CreateNutritionPlanRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), actor, plans.CreateNutritionInput{
		AthleteID:          req.AthleteID,
		SpecialistID:       req.SpecialistID,
		Title:              req.Title,
		Description:        req.Description,
		CaloriesPerDay:     req.CaloriesPerDay,
		MacronutrientRatio: req.MacronutrientRatio,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewNutritionPlanView(p))
}

func (h *NutritionPlanHandler) List(w http.ResponseWriter, r *http.Request) {
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

	response.OK(w, dto.NewNutritionPlanViews(out))
}

// ListForAthlete serves the athlete-scoped alias route; the path id takes
// the place of the athlete_id query filter.
func (h *NutritionPlanHandler) ListForAthlete(w http.ResponseWriter, r *http.Request) {
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

	response.OK(w, dto.NewNutritionPlanViews(out))
}

func (h *NutritionPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	response.OK(w, dto.NewNutritionPlanView(p))
}

func (h *NutritionPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := planActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	var req dto.UpdateNutritionPlanRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), actor, chi.URLParam(r, "id"), plans.UpdateNutritionInput{
		Title:              req.Title,
		Description:        req.Description,
		CaloriesPerDay:     req.CaloriesPerDay,
		MacronutrientRatio: req.MacronutrientRatio,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		SpecialistID:       req.SpecialistID,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewNutritionPlanView(p))
}

func (h *NutritionPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
