package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

type DoctorReport struct {
	Fallbacks            []store.Fallback `json:"fallbacks"`
	DuplicateWeightDates int              `json:"duplicate_weight_dates"`
	UnsortedWeightLogs   bool             `json:"unsorted_weight_logs"`
	MismatchedMeals      int              `json:"mismatched_meals"`
	MismatchedExercises  int              `json:"mismatched_exercises"`
	FixedWeightLogs      int              `json:"fixed_weight_logs,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.Fallbacks) == 0 && r.DuplicateWeightDates == 0 && !r.UnsortedWeightLogs &&
		r.MismatchedMeals == 0 && r.MismatchedExercises == 0
}

// RunDoctor inspects the loaded documents. With fix set it rewrites the
// weight logs deduplicated by date (last entry wins) and sorted.
func RunDoctor(s *store.Store, loc *time.Location, fix bool) (DoctorReport, error) {
	report := DoctorReport{Fallbacks: s.Fallbacks()}

	logs := s.WeightLogs()
	seen := map[string]int{}
	for i, l := range logs {
		seen[l.Date]++
		if i > 0 && logs[i-1].Date > l.Date {
			report.UnsortedWeightLogs = true
		}
	}
	for _, n := range seen {
		if n > 1 {
			report.DuplicateWeightDates++
		}
	}

	for _, m := range s.Meals() {
		if clock.Bucket(time.UnixMilli(m.Timestamp), loc) != m.DateStr {
			report.MismatchedMeals++
		}
	}
	for _, e := range s.Exercises() {
		if clock.Bucket(time.UnixMilli(e.Timestamp), loc) != e.DateStr {
			report.MismatchedExercises++
		}
	}

	if fix && (report.DuplicateWeightDates > 0 || report.UnsortedWeightLogs) {
		fixed := dedupeWeightLogs(logs)
		if err := s.SetWeightState(fixed, s.Profile()); err != nil {
			return report, fmt.Errorf("doctor fix weight logs: %w", err)
		}
		report.FixedWeightLogs = len(logs) - len(fixed)
	}
	return report, nil
}

func dedupeWeightLogs(logs []model.WeightLog) []model.WeightLog {
	last := map[string]int{}
	for i, l := range logs {
		last[l.Date] = i
	}
	out := make([]model.WeightLog, 0, len(last))
	for i, l := range logs {
		if last[l.Date] == i {
			out = append(out, l)
		}
	}
	sortWeightLogs(out)
	return out
}

func writeChecksum(path string) (string, error) {
	checksum, err := fileSHA256(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write checksum file: %w", err)
	}
	return checksum, nil
}

func verifyChecksum(path string) error {
	expected, err := os.ReadFile(path + ".sha256")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read checksum file: %w", err)
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(expected)) != actual {
		return fmt.Errorf("backup checksum mismatch")
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
