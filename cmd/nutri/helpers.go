package nutri

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/app"
	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/config"
	"github.com/clydenvis-afk/nutriaitracker/internal/db"
	"github.com/clydenvis-afk/nutriaitracker/internal/provider/gemini"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

// appContext is everything a command needs once the database is open.
type appContext struct {
	db    *sql.DB
	store *store.Store
	cfg   config.Config
	clock clock.Clock
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func withApp(run func(*appContext) error) error {
	return withDB(func(sqldb *sql.DB) error {
		c := config.Default()
		if cfg != nil {
			*c = *cfg
		}
		if err := service.ApplySettings(sqldb, c); err != nil {
			return err
		}
		loc, err := c.Location()
		if err != nil {
			return err
		}
		s, err := store.Load(store.NewSQLDocuments(sqldb))
		if err != nil {
			return err
		}
		return run(&appContext{db: sqldb, store: s, cfg: *c, clock: clock.Local{Loc: loc}})
	})
}

func (a *appContext) estimator() service.Estimator {
	return &service.CachedEstimator{
		Next: &gemini.Client{
			APIKey:  a.cfg.AI.APIKey,
			BaseURL: a.cfg.AI.BaseURL,
			Model:   a.cfg.AI.Model,
		},
		DB:  a.db,
		TTL: a.cfg.CacheTTL(),
	}
}

func (a *appContext) aiContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.cfg.AITimeout())
}

// resolveDate returns the bucket key for --date, or today when empty.
func (a *appContext) resolveDate(date string) (string, time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		now := a.clock.Now()
		return clock.Bucket(now, a.clock.Location()), now, nil
	}
	t, err := clock.ParseDate(date, a.clock.Location())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return date, t, nil
}

// confirmPrompt asks a yes/no question on the terminal. Tests replace it.
var confirmPrompt = func(title string) (bool, error) {
	ok := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func confirmOrSkip(yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	return confirmPrompt(title)
}

// parseIndexList turns "1,3" into zero-based indexes.
func parseIndexList(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid item number %q", p)
		}
		out = append(out, n-1)
	}
	return out, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
