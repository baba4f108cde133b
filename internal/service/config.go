package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clydenvis-afk/nutriaitracker/internal/config"
)

const (
	ConfigAIModel          = "ai_model"
	ConfigTimezone         = "timezone"
	ConfigEstimateCacheTTL = "estimate_cache_ttl_hours"
)

var knownConfigKeys = map[string]bool{
	ConfigAIModel:          true,
	ConfigTimezone:         true,
	ConfigEstimateCacheTTL: true,
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)
	if err := validateConfigValue(key, value); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

func validateConfigValue(key, value string) error {
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	if !knownConfigKeys[key] {
		return fmt.Errorf("unknown config key %q (use %s, %s or %s)", key, ConfigAIModel, ConfigTimezone, ConfigEstimateCacheTTL)
	}
	switch key {
	case ConfigAIModel:
		if value == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	case ConfigTimezone:
		if value == "" {
			return fmt.Errorf("%s cannot be empty (use \"local\" for the host zone)", key)
		}
		if !strings.EqualFold(value, "local") {
			if _, err := time.LoadLocation(value); err != nil {
				return fmt.Errorf("invalid timezone %q: %w", value, err)
			}
		}
	case ConfigEstimateCacheTTL:
		hours, err := strconv.Atoi(value)
		if err != nil || hours < 0 {
			return fmt.Errorf("%s must be an integer >= 0", key)
		}
	}
	return nil
}

// ApplySettings lays the stored settings over the file configuration.
func ApplySettings(db *sql.DB, cfg *config.Config) error {
	settings, err := ListConfig(db)
	if err != nil {
		return err
	}
	if v, ok := settings[ConfigAIModel]; ok && v != "" {
		cfg.AI.Model = v
	}
	if v, ok := settings[ConfigTimezone]; ok && v != "" {
		cfg.Timezone = v
	}
	if v, ok := settings[ConfigEstimateCacheTTL]; ok {
		hours, err := strconv.Atoi(v)
		if err != nil || hours < 0 {
			return fmt.Errorf("stored %s %q is invalid", ConfigEstimateCacheTTL, v)
		}
		cfg.AI.CacheTTLHours = hours
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	return nil
}
