package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

func TestPreviewAndConfirmMeals(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	c := fixedClock("2026-10-15", 12)
	est := &fakeEstimator{food: []model.FoodEstimate{
		{Name: "Rice", Description: "1 cup", Calories: 205, Protein: 4, Carbs: 45, Fat: 0.4},
		{Name: "Adobo", Description: "1 serving", Calories: 400, Protein: 30, Carbs: 5, Fat: 28},
	}}

	preview, err := service.PreviewMeals(context.Background(), est, "rice and adobo")
	require.NoError(t, err)
	require.Len(t, preview, 2)
	assert.Empty(t, s.Meals(), "preview must not persist")

	items, err := service.ConfirmMeals(s, c, preview)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1 cup", items[0].PortionDescription)
	assert.Equal(t, "2026-10-15", items[0].DateStr)
	assert.Equal(t, c.Now().UnixMilli(), items[0].Timestamp)
	assert.NotEmpty(t, items[0].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Len(t, s.Meals(), 2)
}

func TestMealFailuresCommitNothing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := service.PreviewMeals(context.Background(), &fakeEstimator{err: errAI}, "toast")
	assert.ErrorIs(t, err, errAI)

	_, err = service.PreviewMeals(context.Background(), &fakeEstimator{}, "   ")
	assert.Error(t, err)

	_, err = service.ConfirmMeals(s, fixedClock("2026-10-15", 1), nil)
	assert.ErrorIs(t, err, service.ErrNothingToConfirm)
	assert.Empty(t, s.Meals())
}

func TestSelectEstimates(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c"}
	got, err := service.SelectEstimates(items, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)

	_, err = service.SelectEstimates(items, []int{3})
	assert.Error(t, err)
}

func TestExerciseUsesProfileWeight(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	weight := 82.0
	_, err := service.UpdateProfile(s, service.ProfileInput{Weight: &weight})
	require.NoError(t, err)

	est := &fakeEstimator{exercises: []model.ExerciseEstimate{{Name: "Running", DurationMinutes: 30, CaloriesBurned: 350}}}
	preview, err := service.PreviewExercises(context.Background(), est, s, "30 min run")
	require.NoError(t, err)
	assert.Equal(t, 82.0, est.lastWeight)

	items, err := service.ConfirmExercises(s, fixedClock("2026-10-15", 7), preview)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 350.0, items[0].CaloriesBurned)
	assert.Len(t, s.Exercises(), 1)

	_, err = service.ConfirmExercises(s, fixedClock("2026-10-15", 7), nil)
	assert.ErrorIs(t, err, service.ErrNothingToConfirm)
}

func TestSuggestRecipesUsesLastTenMeals(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	meals := make([]model.MealItem, 0, 12)
	for i := 0; i < 12; i++ {
		m := meal("2026-10-15", 100, 1, 1, 1)
		m.ID = string(rune('a' + i))
		m.Name = "meal-" + m.ID
		meals = append(meals, m)
	}
	require.NoError(t, s.AppendMeals(meals...))

	est := &fakeEstimator{recipes: []model.Recipe{{Name: "Sinigang", Calories: 300, Protein: 25, Carbs: 10, Fat: 12}}}
	recipes, err := service.SuggestRecipes(context.Background(), est, s)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	require.Len(t, est.lastRecipe.RecentMeals, 10)
	assert.Equal(t, "meal-c", est.lastRecipe.RecentMeals[0])
	assert.Equal(t, "meal-l", est.lastRecipe.RecentMeals[9])
	assert.Equal(t, 25, est.lastRecipe.Age)
	assert.Equal(t, 2000.0, est.lastRecipe.TargetCalories)

	item, err := service.AddRecipeMeal(s, fixedClock("2026-10-15", 19), recipes[0])
	require.NoError(t, err)
	assert.Equal(t, "1 serving", item.PortionDescription)
	assert.Equal(t, "Sinigang", item.Name)
	assert.Len(t, s.Meals(), 13)
}
