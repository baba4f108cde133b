package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

// PreviewExercises estimates burn using the profile's current weight.
func PreviewExercises(ctx context.Context, est Estimator, s *store.Store, text string) ([]model.ExerciseEstimate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("exercise description is required")
	}
	items, err := est.AnalyzeExercise(ctx, text, s.Profile().CurrentWeight)
	if err != nil {
		return nil, fmt.Errorf("analyze exercise: %w", err)
	}
	return items, nil
}

func ConfirmExercises(s *store.Store, c clock.Clock, estimates []model.ExerciseEstimate) ([]model.ExerciseItem, error) {
	if len(estimates) == 0 {
		return nil, ErrNothingToConfirm
	}
	now := c.Now()
	date := clock.Bucket(now, c.Location())
	items := make([]model.ExerciseItem, 0, len(estimates))
	for _, e := range estimates {
		items = append(items, model.ExerciseItem{
			ID:              newID(),
			Name:            e.Name,
			DurationMinutes: e.DurationMinutes,
			CaloriesBurned:  e.CaloriesBurned,
			Timestamp:       now.UnixMilli(),
			DateStr:         date,
		})
	}
	if err := s.AppendExercises(items...); err != nil {
		return nil, fmt.Errorf("confirm exercises: %w", err)
	}
	return items, nil
}
