package service_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

func TestExportWriteReadImportRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestStore(t)
	require.NoError(t, src.AppendMeals(meal("2026-10-15", 500, 10, 20, 30)))
	require.NoError(t, src.AppendExercises(workout("2026-10-15", 200)))
	_, err := service.LogWeight(src, fixedClock("2026-10-15", 6), service.WeightInput{Weight: 68})
	require.NoError(t, err)

	now := time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)
	doc := service.ExportBackup(src, now)
	assert.Equal(t, "2026-10-15T10:30:00.000Z", doc.ExportDate)
	assert.Equal(t, "nutritracker_backup_2026-10-15.json", service.BackupFileName(now))

	path := filepath.Join(t.TempDir(), "out", service.BackupFileName(now))
	info, err := service.WriteBackup(path, doc)
	require.NoError(t, err)
	assert.Len(t, info.Checksum, 64)
	_, err = os.Stat(path + ".sha256")
	require.NoError(t, err)

	raw, err := service.ReadBackup(path)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, k := range []string{"profile", "meals", "exercises", "weightLogs", "exportDate"} {
		assert.Contains(t, keys, k)
	}

	dst := newTestStore(t)
	summary, err := service.ImportBackup(dst, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"meals", "exercises", "weightLogs", "profile"}, summary.Replaced)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestReadBackupDetectsTampering(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	path := filepath.Join(t.TempDir(), "backup.json")
	_, err := service.WriteBackup(path, service.ExportBackup(s, time.Now()))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"meals":[]}`), 0o644))
	_, err = service.ReadBackup(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestImportInvalidJSONLeavesStoreUntouched(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.AppendMeals(meal("2026-10-15", 500, 0, 0, 0)))
	before := s.Snapshot()

	_, err := service.ImportBackup(s, []byte(`{"meals": [`))
	require.Error(t, err)
	assert.Equal(t, before, s.Snapshot())

	_, err = service.ImportBackup(s, []byte(`{"meals":[{"calories":"lots"}]}`))
	require.Error(t, err)
	assert.Equal(t, before, s.Snapshot())
}

func TestImportOnlyReplacesPresentCollections(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.AppendMeals(meal("2026-10-15", 500, 0, 0, 0)))
	require.NoError(t, s.AppendExercises(workout("2026-10-15", 100)))

	summary, err := service.ImportBackup(s, []byte(`{
  "exercises": [],
  "weightLogs": "not-an-array",
  "profile": null
}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"exercises"}, summary.Replaced)
	assert.Len(t, s.Meals(), 1)
	assert.Empty(t, s.Exercises())
	assert.Equal(t, model.DefaultProfile(), s.Profile())
}
