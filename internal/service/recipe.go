package service

import (
	"context"
	"fmt"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

const (
	recipeContextMeals = 10
	recipePortion      = "1 serving"
)

// RecentMealNames returns the names of the last n meals in insertion order.
func RecentMealNames(meals []model.MealItem, n int) []string {
	if len(meals) > n {
		meals = meals[len(meals)-n:]
	}
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.Name)
	}
	return out
}

func SuggestRecipes(ctx context.Context, est Estimator, s *store.Store) ([]model.Recipe, error) {
	p := s.Profile()
	recipes, err := est.SuggestRecipes(ctx, model.RecipeRequest{
		Age:            p.Age,
		TargetCalories: p.TargetCalories,
		RecentMeals:    RecentMealNames(s.Meals(), recipeContextMeals),
	})
	if err != nil {
		return nil, fmt.Errorf("suggest recipes: %w", err)
	}
	return recipes, nil
}

func AddRecipeMeal(s *store.Store, c clock.Clock, r model.Recipe) (model.MealItem, error) {
	now := c.Now()
	item := model.MealItem{
		ID:                 newID(),
		Name:               r.Name,
		PortionDescription: recipePortion,
		Calories:           r.Calories,
		Protein:            r.Protein,
		Carbs:              r.Carbs,
		Fat:                r.Fat,
		Timestamp:          now.UnixMilli(),
		DateStr:            clock.Bucket(now, c.Location()),
	}
	if err := s.AppendMeals(item); err != nil {
		return model.MealItem{}, fmt.Errorf("add recipe meal: %w", err)
	}
	return item, nil
}
