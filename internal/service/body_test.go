package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

func TestBMIAndCategory(t *testing.T) {
	t.Parallel()

	bmi := service.BMI(170, 70)
	assert.InDelta(t, 24.22, bmi, 0.01)
	assert.Equal(t, service.BMINormal, service.BMICategoryFor(bmi))

	assert.Equal(t, 0.0, service.BMI(0, 70))
	assert.Equal(t, 0.0, service.BMI(-10, 70))

	assert.Equal(t, service.BMIUnderweight, service.BMICategoryFor(18.49))
	assert.Equal(t, service.BMINormal, service.BMICategoryFor(18.5))
	assert.Equal(t, service.BMIOverweight, service.BMICategoryFor(25))
	assert.Equal(t, service.BMIObese, service.BMICategoryFor(30))
}

func TestRecordWeightUpsertsByDate(t *testing.T) {
	t.Parallel()

	profile := model.DefaultProfile()
	logs, profile := service.RecordWeight(nil, profile, "2026-10-15", 70, "a")
	logs, profile = service.RecordWeight(logs, profile, "2026-10-15", 72, "b")

	require.Len(t, logs, 1)
	assert.Equal(t, model.WeightLog{ID: "b", Date: "2026-10-15", Weight: 72}, logs[0])
	assert.Equal(t, 72.0, profile.CurrentWeight)
}

func TestRecordWeightKeepsLogsSorted(t *testing.T) {
	t.Parallel()

	logs := []model.WeightLog{
		{ID: "3", Date: "2026-10-20", Weight: 69},
		{ID: "1", Date: "2026-10-01", Weight: 71},
	}
	out, _ := service.RecordWeight(logs, model.DefaultProfile(), "2026-10-10", 70, "2")
	require.Len(t, out, 3)
	assert.Equal(t, []string{"2026-10-01", "2026-10-10", "2026-10-20"}, []string{out[0].Date, out[1].Date, out[2].Date})
	// input slice untouched
	assert.Equal(t, "2026-10-20", logs[0].Date)
}

func TestLogWeightPersists(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	c := fixedClock("2026-10-15", 8)

	_, err := service.LogWeight(s, c, service.WeightInput{Weight: 70})
	require.NoError(t, err)
	entry, err := service.LogWeight(s, c, service.WeightInput{Weight: 160, Unit: "lb"})
	require.NoError(t, err)

	assert.InDelta(t, 72.57, entry.Weight, 0.01)
	require.Len(t, s.WeightLogs(), 1)
	assert.InDelta(t, 72.57, s.Profile().CurrentWeight, 0.01)

	_, err = service.LogWeight(s, c, service.WeightInput{Weight: 0})
	assert.Error(t, err)
	_, err = service.LogWeight(s, c, service.WeightInput{Weight: 70, Unit: "stone"})
	assert.Error(t, err)
}

func TestWeightHistoryLastN(t *testing.T) {
	t.Parallel()

	logs := []model.WeightLog{
		{Date: "2026-10-03"}, {Date: "2026-10-01"}, {Date: "2026-10-02"},
	}
	got := service.WeightHistory(logs, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-10-02", got[0].Date)
	assert.Equal(t, "2026-10-03", got[1].Date)
	assert.Len(t, service.WeightHistory(logs, 0), 3)
}
