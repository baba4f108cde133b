package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

// BackupDocument is the portable backup file. Its keys are shared with the
// browser version of the tracker.
type BackupDocument struct {
	Profile    model.UserProfile    `json:"profile"`
	Meals      []model.MealItem     `json:"meals"`
	Exercises  []model.ExerciseItem `json:"exercises"`
	WeightLogs []model.WeightLog    `json:"weightLogs"`
	ExportDate string               `json:"exportDate"`
}

type BackupInfo struct {
	Path      string `json:"path"`
	Checksum  string `json:"checksum"`
	SizeBytes int64  `json:"size_bytes"`
}

type ImportSummary struct {
	Meals      int      `json:"meals"`
	Exercises  int      `json:"exercises"`
	WeightLogs int      `json:"weight_logs"`
	Profile    bool     `json:"profile"`
	Replaced   []string `json:"replaced"`
}

func ExportBackup(s *store.Store, now time.Time) BackupDocument {
	snap := s.Snapshot()
	return BackupDocument{
		Profile:    snap.Profile,
		Meals:      snap.Meals,
		Exercises:  snap.Exercises,
		WeightLogs: snap.WeightLogs,
		ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func BackupFileName(now time.Time) string {
	return fmt.Sprintf("nutritracker_backup_%s.json", now.Format("2006-01-02"))
}

// WriteBackup writes doc as indented JSON plus a .sha256 sidecar.
func WriteBackup(path string, doc BackupDocument) (BackupInfo, error) {
	if strings.TrimSpace(path) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return BackupInfo{}, fmt.Errorf("encode backup: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum, err := writeChecksum(path)
	if err != nil {
		return BackupInfo{}, err
	}
	return BackupInfo{Path: path, Checksum: checksum, SizeBytes: int64(len(raw))}, nil
}

// ReadBackup reads a backup file, verifying its sidecar checksum when one
// exists.
func ReadBackup(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if err := verifyChecksum(path); err != nil {
		return nil, err
	}
	return raw, nil
}

// ImportBackup replaces each collection that is present in raw with the
// right JSON kind. Everything is written in one step; on any error the
// store is untouched.
func ImportBackup(s *store.Store, raw []byte) (ImportSummary, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ImportSummary{}, fmt.Errorf("invalid backup file: %w", err)
	}

	var (
		patch   store.Patch
		summary = ImportSummary{Replaced: []string{}}
	)
	if v, ok := fields["meals"]; ok && jsonKind(v) == '[' {
		var meals []model.MealItem
		if err := json.Unmarshal(v, &meals); err != nil {
			return ImportSummary{}, fmt.Errorf("invalid backup meals: %w", err)
		}
		patch.Meals = &meals
		summary.Meals = len(meals)
		summary.Replaced = append(summary.Replaced, "meals")
	}
	if v, ok := fields["exercises"]; ok && jsonKind(v) == '[' {
		var exercises []model.ExerciseItem
		if err := json.Unmarshal(v, &exercises); err != nil {
			return ImportSummary{}, fmt.Errorf("invalid backup exercises: %w", err)
		}
		patch.Exercises = &exercises
		summary.Exercises = len(exercises)
		summary.Replaced = append(summary.Replaced, "exercises")
	}
	if v, ok := fields["weightLogs"]; ok && jsonKind(v) == '[' {
		var logs []model.WeightLog
		if err := json.Unmarshal(v, &logs); err != nil {
			return ImportSummary{}, fmt.Errorf("invalid backup weightLogs: %w", err)
		}
		patch.WeightLogs = &logs
		summary.WeightLogs = len(logs)
		summary.Replaced = append(summary.Replaced, "weightLogs")
	}
	if v, ok := fields["profile"]; ok && jsonKind(v) == '{' {
		profile := model.DefaultProfile()
		if err := json.Unmarshal(v, &profile); err != nil {
			return ImportSummary{}, fmt.Errorf("invalid backup profile: %w", err)
		}
		patch.Profile = &profile
		summary.Profile = true
		summary.Replaced = append(summary.Replaced, "profile")
	}

	if err := s.Replace(patch); err != nil {
		return ImportSummary{}, fmt.Errorf("import backup: %w", err)
	}
	return summary, nil
}

func jsonKind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
