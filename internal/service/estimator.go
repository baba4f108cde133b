package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

// Estimator turns free text into nutrition estimates. gemini.Client is the
// production implementation.
type Estimator interface {
	AnalyzeFood(ctx context.Context, text string) ([]model.FoodEstimate, error)
	AnalyzeExercise(ctx context.Context, text string, weightKg float64) ([]model.ExerciseEstimate, error)
	SuggestRecipes(ctx context.Context, req model.RecipeRequest) ([]model.Recipe, error)
}

const (
	estimateKindFood     = "food"
	estimateKindExercise = "exercise"
)

// CachedEstimator remembers food and exercise estimates in the
// estimate_cache table. Recipe suggestions always go to Next.
type CachedEstimator struct {
	Next Estimator
	DB   *sql.DB
	TTL  time.Duration
	Now  func() time.Time
}

func (c *CachedEstimator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *CachedEstimator) AnalyzeFood(ctx context.Context, text string) ([]model.FoodEstimate, error) {
	key := normalizeInput(text)
	var cached []model.FoodEstimate
	if hit, err := c.lookup(estimateKindFood, key, &cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}
	items, err := c.Next.AnalyzeFood(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		c.store(estimateKindFood, key, items)
	}
	return items, nil
}

func (c *CachedEstimator) AnalyzeExercise(ctx context.Context, text string, weightKg float64) ([]model.ExerciseEstimate, error) {
	key := fmt.Sprintf("%s|%g", normalizeInput(text), weightKg)
	var cached []model.ExerciseEstimate
	if hit, err := c.lookup(estimateKindExercise, key, &cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}
	items, err := c.Next.AnalyzeExercise(ctx, text, weightKg)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		c.store(estimateKindExercise, key, items)
	}
	return items, nil
}

func (c *CachedEstimator) SuggestRecipes(ctx context.Context, req model.RecipeRequest) ([]model.Recipe, error) {
	return c.Next.SuggestRecipes(ctx, req)
}

func (c *CachedEstimator) lookup(kind, key string, dst any) (bool, error) {
	if c.DB == nil || c.TTL <= 0 || key == "" {
		return false, nil
	}
	var raw, expiresAtRaw string
	err := c.DB.QueryRow(`SELECT response_json, expires_at FROM estimate_cache WHERE kind = ? AND input_norm = ?`, kind, key).Scan(&raw, &expiresAtRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup estimate cache: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, expiresAtRaw)
	if err != nil {
		return false, fmt.Errorf("parse estimate cache expiry: %w", err)
	}
	if !c.now().Before(expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logrus.WithError(err).WithField("kind", kind).Warn("ignoring unreadable estimate cache row")
		return false, nil
	}
	logrus.WithFields(logrus.Fields{"kind": kind, "input": key}).Debug("estimate cache hit")
	return true, nil
}

// store failures are logged only; the fresh estimate is still returned.
// Empty answers are never stored.
func (c *CachedEstimator) store(kind, key string, v any) {
	if c.DB == nil || c.TTL <= 0 || key == "" {
		return
	}
	if err := upsertEstimateCache(c.DB, kind, key, v, c.now(), c.TTL); err != nil {
		logrus.WithError(err).WithField("kind", kind).Warn("estimate cache write failed")
	}
}

func upsertEstimateCache(db *sql.DB, kind, key string, v any, now time.Time, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode estimate cache: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO estimate_cache(kind, input_norm, response_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(kind, input_norm) DO UPDATE SET
  response_json=excluded.response_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, kind, key, string(raw), now.UTC().Format(time.RFC3339), now.Add(ttl).UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert estimate cache: %w", err)
	}
	return nil
}

// PurgeEstimateCache deletes expired rows, or every row when all is set.
func PurgeEstimateCache(db *sql.DB, now time.Time, all bool) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if all {
		res, err = db.Exec(`DELETE FROM estimate_cache`)
	} else {
		res, err = db.Exec(`DELETE FROM estimate_cache WHERE expires_at <= ?`, now.UTC().Format(time.RFC3339))
	}
	if err != nil {
		return 0, fmt.Errorf("purge estimate cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge estimate cache rows affected: %w", err)
	}
	return affected, nil
}
