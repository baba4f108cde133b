package service

import (
	"sort"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

type TodayStatus struct {
	Date              string               `json:"date"`
	IntakeCalories    float64              `json:"intake_calories"`
	ExerciseCalories  float64              `json:"exercise_calories"`
	NetCalories       float64              `json:"net_calories"`
	ProteinG          float64              `json:"protein_g"`
	CarbsG            float64              `json:"carbs_g"`
	FatG              float64              `json:"fat_g"`
	TargetCalories    float64              `json:"target_calories"`
	RemainingCalories float64              `json:"remaining_calories"`
	Progress          float64              `json:"progress"`
	OverTarget        bool                 `json:"over_target"`
	Meals             []model.MealItem     `json:"meals"`
	Exercises         []model.ExerciseItem `json:"exercises"`
}

// TodaySummary builds the dashboard for one day. Remaining is allowed to go
// negative; Progress is the net floored at zero.
func TodaySummary(meals []model.MealItem, exercises []model.ExerciseItem, profile model.UserProfile, date string) TodayStatus {
	agg := AggregateDay(meals, exercises, date)
	status := TodayStatus{
		Date:              date,
		IntakeCalories:    agg.FoodCalories,
		ExerciseCalories:  agg.ExerciseCalories,
		NetCalories:       agg.NetCalories,
		ProteinG:          agg.Protein,
		CarbsG:            agg.Carbs,
		FatG:              agg.Fat,
		TargetCalories:    profile.TargetCalories,
		RemainingCalories: profile.TargetCalories - agg.NetCalories,
		Progress:          max(0, agg.NetCalories),
		OverTarget:        agg.NetCalories > profile.TargetCalories,
		Meals:             MealsOn(meals, date),
		Exercises:         ExercisesOn(exercises, date),
	}
	return status
}

// MealsOn returns the meals bucketed on date, newest first.
func MealsOn(meals []model.MealItem, date string) []model.MealItem {
	out := make([]model.MealItem, 0)
	for _, m := range meals {
		if m.DateStr == date {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

func ExercisesOn(exercises []model.ExerciseItem, date string) []model.ExerciseItem {
	out := make([]model.ExerciseItem, 0)
	for _, e := range exercises {
		if e.DateStr == date {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}
