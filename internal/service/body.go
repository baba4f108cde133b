package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// BMI returns weight / (height in metres)^2, or 0 when height is not
// positive.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

func BMICategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

type BMIReport struct {
	HeightCm float64     `json:"height_cm"`
	WeightKg float64     `json:"weight_kg"`
	BMI      float64     `json:"bmi"`
	Category BMICategory `json:"category"`
}

func BMIForProfile(p model.UserProfile) BMIReport {
	bmi := BMI(p.Height, p.CurrentWeight)
	return BMIReport{HeightCm: p.Height, WeightKg: p.CurrentWeight, BMI: bmi, Category: BMICategoryFor(bmi)}
}

// RecordWeight replaces any log dated today with the new weight, keeps the
// logs sorted by date and mirrors the weight into the profile.
func RecordWeight(logs []model.WeightLog, profile model.UserProfile, today string, weightKg float64, id string) ([]model.WeightLog, model.UserProfile) {
	out := make([]model.WeightLog, 0, len(logs)+1)
	for _, l := range logs {
		if l.Date == today {
			continue
		}
		out = append(out, l)
	}
	out = append(out, model.WeightLog{ID: id, Date: today, Weight: weightKg})
	sortWeightLogs(out)
	profile.CurrentWeight = weightKg
	return out, profile
}

func sortWeightLogs(logs []model.WeightLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
}

type WeightInput struct {
	Weight float64
	Unit   string
}

func LogWeight(s *store.Store, c clock.Clock, in WeightInput) (model.WeightLog, error) {
	weightKg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return model.WeightLog{}, err
	}
	today := clock.Today(c)
	logs, profile := RecordWeight(s.WeightLogs(), s.Profile(), today, weightKg, newID())
	if err := s.SetWeightState(logs, profile); err != nil {
		return model.WeightLog{}, fmt.Errorf("log weight: %w", err)
	}
	for _, l := range logs {
		if l.Date == today {
			return l, nil
		}
	}
	return model.WeightLog{}, fmt.Errorf("log weight: entry for %s not stored", today)
}

// WeightHistory returns the last n logs in ascending date order. n <= 0
// returns all of them.
func WeightHistory(logs []model.WeightLog, n int) []model.WeightLog {
	sorted := append([]model.WeightLog{}, logs...)
	sortWeightLogs(sorted)
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if err := validatePositiveFloat("weight", value); err != nil {
		return 0, err
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
