package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
)

// settings live in a single row
const settingsRowID = "app"

const (
	SelectSettings = "SELECT session_minutes, auto_start, sound_enabled, notifications_enabled, theme, timer_mode FROM settings WHERE id = ?"
	UpsertSettings = `INSERT INTO settings (id, session_minutes, auto_start, sound_enabled, notifications_enabled, theme, timer_mode, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	session_minutes = excluded.session_minutes,
	auto_start = excluded.auto_start,
	sound_enabled = excluded.sound_enabled,
	notifications_enabled = excluded.notifications_enabled,
	theme = excluded.theme,
	timer_mode = excluded.timer_mode,
	updated_at = excluded.updated_at`
)

type settingsEntity struct {
	SessionMinutes       int
	AutoStart            bool
	SoundEnabled         bool
	NotificationsEnabled bool
	Theme                string
	TimerMode            string
}

type settingsRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewSettingsRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *settingsRepo {
	return &settingsRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *settingsRepo) LoadSettings(ctx context.Context, defaults cadence.Settings) (cadence.Settings, error) {
	var e settingsEntity
	row := r.dbGetter(ctx).QueryRowContext(ctx, SelectSettings, settingsRowID)
	if err := row.Scan(&e.SessionMinutes, &e.AutoStart, &e.SoundEnabled, &e.NotificationsEnabled, &e.Theme, &e.TimerMode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return defaults, nil
		}
		return cadence.Settings{}, err
	}
	return mapToSettings(e), nil
}

func (r *settingsRepo) SaveSettings(ctx context.Context, s cadence.Settings) error {
	e := mapToSettingsEntity(s)
	args := []any{
		settingsRowID,
		e.SessionMinutes,
		e.AutoStart,
		e.SoundEnabled,
		e.NotificationsEnabled,
		e.Theme,
		e.TimerMode,
		time.Now().Unix(),
	}
	r.l.Debug("saving settings", "args", args)
	_, err := r.dbGetter(ctx).ExecContext(ctx, UpsertSettings, args...)
	return err
}

func mapToSettingsEntity(s cadence.Settings) settingsEntity {
	return settingsEntity{
		SessionMinutes:       cadence.ClampMinutes(s.SessionMinutes),
		AutoStart:            s.AutoStart,
		SoundEnabled:         s.SoundEnabled,
		NotificationsEnabled: s.NotificationsEnabled,
		Theme:                string(s.Theme),
		TimerMode:            string(s.TimerMode),
	}
}

func mapToSettings(e settingsEntity) cadence.Settings {
	return cadence.Settings{
		SessionMinutes:       cadence.ClampMinutes(e.SessionMinutes),
		AutoStart:            e.AutoStart,
		SoundEnabled:         e.SoundEnabled,
		NotificationsEnabled: e.NotificationsEnabled,
		Theme:                cadence.Theme(e.Theme),
		TimerMode:            cadence.TimerMode(e.TimerMode),
	}
}
