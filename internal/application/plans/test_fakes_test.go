package plans

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type fakeTrainingRepo struct {
	mu   sync.Mutex
	byID map[string]domain.TrainingPlan
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{byID: map[string]domain.TrainingPlan{}}
}

func (f *fakeTrainingRepo) add(p domain.TrainingPlan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
}

func (f *fakeTrainingRepo) Create(ctx context.Context, p domain.TrainingPlan) (domain.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeTrainingRepo) GetByID(ctx context.Context, id string) (domain.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return domain.TrainingPlan{}, domain.ErrTrainingPlanNotFound()
	}
	return p, nil
}

func (f *fakeTrainingRepo) List(ctx context.Context, flt ListFilter) ([]domain.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TrainingPlan
	for _, p := range f.byID {
		if flt.AthleteID != "" && p.AthleteID != flt.AthleteID {
			continue
		}
		if flt.SpecialistID != "" && p.SpecialistID != flt.SpecialistID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeTrainingRepo) Update(ctx context.Context, p domain.TrainingPlan) (domain.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeTrainingRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeNutritionRepo struct {
	mu   sync.Mutex
	byID map[string]domain.NutritionPlan
}

func newFakeNutritionRepo() *fakeNutritionRepo {
	return &fakeNutritionRepo{byID: map[string]domain.NutritionPlan{}}
}

func (f *fakeNutritionRepo) add(p domain.NutritionPlan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
}

func (f *fakeNutritionRepo) Create(ctx context.Context, p domain.NutritionPlan) (domain.NutritionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeNutritionRepo) GetByID(ctx context.Context, id string) (domain.NutritionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return domain.NutritionPlan{}, domain.ErrNutritionPlanNotFound()
	}
	return p, nil
}

func (f *fakeNutritionRepo) List(ctx context.Context, flt ListFilter) ([]domain.NutritionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.NutritionPlan
	for _, p := range f.byID {
		if flt.AthleteID != "" && p.AthleteID != flt.AthleteID {
			continue
		}
		if flt.SpecialistID != "" && p.SpecialistID != flt.SpecialistID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeNutritionRepo) Update(ctx context.Context, p domain.NutritionPlan) (domain.NutritionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeNutritionRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeAthleteRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Athlete
}

func newFakeAthleteRepo() *fakeAthleteRepo {
	return &fakeAthleteRepo{byID: map[string]domain.Athlete{}}
}

func (f *fakeAthleteRepo) add(a domain.Athlete) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
}

func (f *fakeAthleteRepo) GetByID(ctx context.Context, id string) (domain.Athlete, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return domain.Athlete{}, domain.ErrAthleteNotFound()
	}
	return a, nil
}

func (f *fakeAthleteRepo) GetByUserID(ctx context.Context, userID string) (domain.Athlete, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.UserID == userID {
			return a, nil
		}
	}
	return domain.Athlete{}, domain.ErrAthleteNotFound()
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.User{}}
}

func (f *fakeUserRepo) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

/*
Harness: one athlete profile (a1 owned by user-ath), one specialist
(user-spec), one admin (user-admin).
*/

type fixture struct {
	training  *TrainingService
	nutrition *NutritionService

	trainingRepo  *fakeTrainingRepo
	nutritionRepo *fakeNutritionRepo
	athletes      *fakeAthleteRepo
	users         *fakeUserRepo

	admin      Actor
	specialist Actor
	athlete    Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	trainingRepo := newFakeTrainingRepo()
	nutritionRepo := newFakeNutritionRepo()
	athletes := newFakeAthleteRepo()
	users := newFakeUserRepo()

	users.add(domain.User{ID: "user-admin", Role: "ADMIN"})
	users.add(domain.User{ID: "user-spec", Role: "SPECIALIST"})
	users.add(domain.User{ID: "user-ath", Role: "ATHLETE"})
	athletes.add(domain.Athlete{ID: "a1", UserID: "user-ath"})

	return &fixture{
		training:      NewTrainingService(trainingRepo, athletes, users),
		nutrition:     NewNutritionService(nutritionRepo, athletes, users),
		trainingRepo:  trainingRepo,
		nutritionRepo: nutritionRepo,
		athletes:      athletes,
		users:         users,
		admin:         Actor{ID: "user-admin", Role: "ADMIN"},
		specialist:    Actor{ID: "user-spec", Role: "SPECIALIST"},
		athlete:       Actor{ID: "user-ath", Role: "ATHLETE"},
	}
}

func window() (time.Time, time.Time) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}
