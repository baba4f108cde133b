package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

func PreviewMeals(ctx context.Context, est Estimator, text string) ([]model.FoodEstimate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("meal description is required")
	}
	items, err := est.AnalyzeFood(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze food: %w", err)
	}
	return items, nil
}

// ConfirmMeals stamps every estimate with an id and the current time and
// appends them in one write.
func ConfirmMeals(s *store.Store, c clock.Clock, estimates []model.FoodEstimate) ([]model.MealItem, error) {
	if len(estimates) == 0 {
		return nil, ErrNothingToConfirm
	}
	now := c.Now()
	date := clock.Bucket(now, c.Location())
	items := make([]model.MealItem, 0, len(estimates))
	for _, e := range estimates {
		items = append(items, model.MealItem{
			ID:                 newID(),
			Name:               e.Name,
			PortionDescription: e.Description,
			Calories:           e.Calories,
			Protein:            e.Protein,
			Carbs:              e.Carbs,
			Fat:                e.Fat,
			Timestamp:          now.UnixMilli(),
			DateStr:            date,
		})
	}
	if err := s.AppendMeals(items...); err != nil {
		return nil, fmt.Errorf("confirm meals: %w", err)
	}
	return items, nil
}

// SelectEstimates drops the zero-based indexes in skip, mirroring removal
// from the preview list before confirming.
func SelectEstimates[T any](items []T, skip []int) ([]T, error) {
	drop := map[int]bool{}
	for _, i := range skip {
		if i < 0 || i >= len(items) {
			return nil, fmt.Errorf("item %d out of range (1-%d)", i+1, len(items))
		}
		drop[i] = true
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		if !drop[i] {
			out = append(out, item)
		}
	}
	return out, nil
}
