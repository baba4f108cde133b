package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

type DayAggregate struct {
	Date             string  `json:"date"`
	FoodCalories     float64 `json:"food_calories"`
	ExerciseCalories float64 `json:"exercise_calories"`
	NetCalories      float64 `json:"net_calories"`
	Protein          float64 `json:"protein_g"`
	Carbs            float64 `json:"carbs_g"`
	Fat              float64 `json:"fat_g"`
	MealCount        int     `json:"meal_count"`
	ExerciseCount    int     `json:"exercise_count"`
}

func (d DayAggregate) HasRecords() bool {
	return d.MealCount > 0 || d.ExerciseCount > 0
}

// AggregateDay sums the records whose dateStr equals date. Net is not
// clamped here.
func AggregateDay(meals []model.MealItem, exercises []model.ExerciseItem, date string) DayAggregate {
	agg := DayAggregate{Date: date}
	for _, m := range meals {
		if m.DateStr != date {
			continue
		}
		agg.addMeal(m)
	}
	for _, e := range exercises {
		if e.DateStr != date {
			continue
		}
		agg.addExercise(e)
	}
	agg.NetCalories = agg.FoodCalories - agg.ExerciseCalories
	return agg
}

func (d *DayAggregate) addMeal(m model.MealItem) {
	d.FoodCalories += m.Calories
	d.Protein += m.Protein
	d.Carbs += m.Carbs
	d.Fat += m.Fat
	d.MealCount++
}

func (d *DayAggregate) addExercise(e model.ExerciseItem) {
	d.ExerciseCalories += e.CaloriesBurned
	d.ExerciseCount++
}

// aggregateByDate buckets every record in one pass.
func aggregateByDate(meals []model.MealItem, exercises []model.ExerciseItem) map[string]*DayAggregate {
	out := map[string]*DayAggregate{}
	get := func(date string) *DayAggregate {
		agg, ok := out[date]
		if !ok {
			agg = &DayAggregate{Date: date}
			out[date] = agg
		}
		return agg
	}
	for _, m := range meals {
		get(m.DateStr).addMeal(m)
	}
	for _, e := range exercises {
		get(e.DateStr).addExercise(e)
	}
	for _, agg := range out {
		agg.NetCalories = agg.FoodCalories - agg.ExerciseCalories
	}
	return out
}

type TrendWindow int

const (
	TrendWeek  TrendWindow = 7
	TrendMonth TrendWindow = 30
)

func (w TrendWindow) String() string {
	switch w {
	case TrendWeek:
		return "week"
	case TrendMonth:
		return "month"
	default:
		return strconv.Itoa(int(w)) + " days"
	}
}

func ParseTrendWindow(value string) (TrendWindow, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "week", "7", "7d":
		return TrendWeek, nil
	case "month", "30", "30d":
		return TrendMonth, nil
	default:
		return 0, fmt.Errorf("invalid range %q (use week or month)", value)
	}
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Intake  float64 `json:"intake"`
	Burned  float64 `json:"burned"`
	Net     float64 `json:"net"`
	Protein float64 `json:"protein_g"`
	Carbs   float64 `json:"carbs_g"`
	Fat     float64 `json:"fat_g"`
}

// BuildTrend returns one point per day of the window ending at today, oldest
// first. Net is floored at zero.
func BuildTrend(meals []model.MealItem, exercises []model.ExerciseItem, window TrendWindow, today time.Time) []TrendPoint {
	if window <= 0 {
		return []TrendPoint{}
	}
	byDate := aggregateByDate(meals, exercises)
	days := clock.DaysBack(today, int(window))
	out := make([]TrendPoint, 0, len(days))
	for _, d := range days {
		date := d.Format(clock.DateLayout)
		p := TrendPoint{Date: date, Label: trendLabel(d, window)}
		if agg, ok := byDate[date]; ok {
			p.Intake = agg.FoodCalories
			p.Burned = agg.ExerciseCalories
			p.Net = max(0, agg.NetCalories)
			p.Protein = agg.Protein
			p.Carbs = agg.Carbs
			p.Fat = agg.Fat
		}
		out = append(out, p)
	}
	return out
}

func trendLabel(d time.Time, window TrendWindow) string {
	if window == TrendWeek {
		return d.Weekday().String()[:3]
	}
	return strconv.Itoa(d.Day())
}

type MacroSummary struct {
	Protein float64 `json:"protein_g"`
	Carbs   float64 `json:"carbs_g"`
	Fat     float64 `json:"fat_g"`
}

func SummarizeMacros(points []TrendPoint) MacroSummary {
	var s MacroSummary
	for _, p := range points {
		s.Protein += p.Protein
		s.Carbs += p.Carbs
		s.Fat += p.Fat
	}
	return s
}

func (s MacroSummary) Total() float64 {
	return s.Protein + s.Carbs + s.Fat
}

func (s MacroSummary) HasData() bool {
	return s.Total() > 0
}

// Shares returns each macro's percentage of the gram total. ok is false when
// there is nothing to divide.
func (s MacroSummary) Shares() (protein, carbs, fat float64, ok bool) {
	total := s.Total()
	if total <= 0 {
		return 0, 0, 0, false
	}
	return s.Protein / total * 100, s.Carbs / total * 100, s.Fat / total * 100, true
}
