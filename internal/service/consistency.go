package service

import (
	"time"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

type ConsistencyStatus string

const (
	StatusEmpty  ConsistencyStatus = "empty"
	StatusGreen  ConsistencyStatus = "green"
	StatusYellow ConsistencyStatus = "yellow"
	StatusRed    ConsistencyStatus = "red"
)

const (
	greenRatioMax  = 1.10
	yellowRatioMax = 1.30
)

// ClassifyDay grades a day's net intake against the calorie target. Days
// without any record are empty whatever their totals.
func ClassifyDay(net, target float64, hasRecords bool) ConsistencyStatus {
	if !hasRecords {
		return StatusEmpty
	}
	net = max(0, net)
	if target <= 0 {
		if net > 0 {
			return StatusRed
		}
		return StatusGreen
	}
	ratio := net / target
	switch {
	case ratio <= greenRatioMax:
		return StatusGreen
	case ratio <= yellowRatioMax:
		return StatusYellow
	default:
		return StatusRed
	}
}

type CalendarDay struct {
	Date   string            `json:"date"`
	Day    int               `json:"day"`
	Net    float64           `json:"net"`
	Status ConsistencyStatus `json:"status"`
}

type CalendarMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// LeadingBlanks is the weekday of the 1st with Sunday as 0.
	LeadingBlanks int           `json:"leading_blanks"`
	Days          []CalendarDay `json:"days"`
}

func MonthCalendar(meals []model.MealItem, exercises []model.ExerciseItem, target float64, anyDay time.Time) CalendarMonth {
	y, m, _ := anyDay.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, anyDay.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := aggregateByDate(meals, exercises)
	cal := CalendarMonth{
		Year:          y,
		Month:         m,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDay, 0, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(y, m, day, 0, 0, 0, 0, anyDay.Location()).Format(clock.DateLayout)
		cell := CalendarDay{Date: date, Day: day, Status: StatusEmpty}
		if agg, ok := byDate[date]; ok {
			cell.Net = max(0, agg.NetCalories)
			cell.Status = ClassifyDay(agg.NetCalories, target, agg.HasRecords())
		}
		cal.Days = append(cal.Days, cell)
	}
	return cal
}
