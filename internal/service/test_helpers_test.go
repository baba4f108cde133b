package service_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/db"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutri.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Load(store.NewSQLDocuments(newTestDB(t)))
	require.NoError(t, err)
	return s
}

func fixedClock(date string, hour int) clock.Fixed {
	d, err := time.Parse(clock.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return clock.Fixed{At: d.Add(time.Duration(hour) * time.Hour), Loc: time.UTC}
}

func meal(date string, kcal, protein, carbs, fat float64) model.MealItem {
	return model.MealItem{ID: date + "-meal", Name: "meal", Calories: kcal, Protein: protein, Carbs: carbs, Fat: fat, DateStr: date}
}

func workout(date string, burned float64) model.ExerciseItem {
	return model.ExerciseItem{ID: date + "-ex", Name: "workout", DurationMinutes: 30, CaloriesBurned: burned, DateStr: date}
}

type fakeEstimator struct {
	food       []model.FoodEstimate
	exercises  []model.ExerciseEstimate
	recipes    []model.Recipe
	err        error
	foodCalls  int
	exCalls    int
	lastWeight float64
	lastRecipe model.RecipeRequest
}

func (f *fakeEstimator) AnalyzeFood(_ context.Context, _ string) ([]model.FoodEstimate, error) {
	f.foodCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.food, nil
}

func (f *fakeEstimator) AnalyzeExercise(_ context.Context, _ string, weightKg float64) ([]model.ExerciseEstimate, error) {
	f.exCalls++
	f.lastWeight = weightKg
	if f.err != nil {
		return nil, f.err
	}
	return f.exercises, nil
}

func (f *fakeEstimator) SuggestRecipes(_ context.Context, req model.RecipeRequest) ([]model.Recipe, error) {
	f.lastRecipe = req
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes, nil
}

var errAI = errors.New("ai unavailable")
