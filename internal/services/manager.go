// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/j-veylop/focus-tui/internal/audio"
	"github.com/j-veylop/focus-tui/internal/clock"
	"github.com/j-veylop/focus-tui/internal/config"
	"github.com/j-veylop/focus-tui/internal/db"
	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/services/settings"
	"github.com/j-veylop/focus-tui/internal/services/stats"
	"github.com/j-veylop/focus-tui/internal/storage"
	"github.com/j-veylop/focus-tui/internal/storage/filestore"
)

type (
	// StatsEvent is emitted when the statistics record changes.
	StatsEvent struct {
		Stats models.UserStats
	}

	// SessionCompletedEvent is emitted when a focus or break interval ends.
	SessionCompletedEvent struct {
		Mode    models.SessionMode
		Minutes int
	}

	// SettingsChangedEvent is emitted when settings are edited outside the app.
	SettingsChangedEvent struct {
		Settings models.AppSettings
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (StatsEvent) isServiceEvent()            {}
func (SessionCompletedEvent) isServiceEvent() {}
func (SettingsChangedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()            {}

// Deps are the collaborators of a Manager. NewManager builds them from
// configuration; tests pass fakes.
type Deps struct {
	Store    storage.Store
	Database *db.DB
	Audio    *audio.Engine
	Clock    clock.Clock
	Location *time.Location
	NewID    func() string
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	database    *db.DB
	store       storage.Store
	stats       *stats.Service
	settings    *settings.Service
	audio       *audio.Engine
	newID       func() string
	subscribers []chan<- ServiceEvent

	current     models.UserStats
	preferences models.AppSettings

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager opens the configured store, the session log and the audio
// engine, and loads statistics and settings.
func NewManager(cfg *config.Config) (*Manager, error) {
	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var store storage.Store = database
	if cfg.Store == config.StoreFile {
		fs, err := filestore.New(cfg.StoreDir)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		store = fs
	}

	return New(Deps{
		Store:    store,
		Database: database,
		Audio:    audio.New(audio.Options{Notifications: cfg.Notifications}),
	}), nil
}

// New creates a manager over explicit dependencies.
func New(deps Deps) *Manager {
	if deps.Clock == nil {
		deps.Clock = clock.System()
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Audio == nil {
		deps.Audio = audio.New(audio.Options{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		database: deps.Database,
		store:    deps.Store,
		stats:    stats.New(deps.Store, deps.Clock, deps.Location),
		settings: settings.New(deps.Store),
		audio:    deps.Audio,
		newID:    deps.NewID,
		ctx:      ctx,
		cancel:   cancel,
	}

	m.current = m.stats.Load(ctx)
	m.preferences = m.settings.Load(ctx)

	m.watchSettings()

	return m
}

// watchSettings reloads settings edited on disk while the app runs.
func (m *Manager) watchSettings() {
	ch, err := m.settings.Watch(m.ctx)
	if err != nil {
		logger.Warn("settings watch unavailable", "error", err)
		return
	}
	if ch == nil {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for s := range ch {
			m.mu.Lock()
			m.preferences = s
			m.mu.Unlock()

			if err := m.audio.Apply(s); err != nil && !errors.Is(err, audio.ErrNoPlayer) {
				logger.Warn("failed to apply ambient settings", "error", err)
			}
			m.broadcast(SettingsChangedEvent{Settings: s})
		}
	}()
}

// SessionCompleted records a finished interval. Focus sessions update the
// statistics and the session log; every completion plays the chime.
func (m *Manager) SessionCompleted(mode models.SessionMode, minutes int) {
	m.audio.PlayCompletionSound()

	if mode != models.SessionFocus {
		m.audio.Notify("Break over", "Time to focus.")
		m.broadcast(SessionCompletedEvent{Mode: mode, Minutes: minutes})
		return
	}

	m.mu.Lock()
	current, _ := m.stats.Refresh(m.current)
	current = m.stats.RecordSession(current, minutes)
	m.current = current
	// Saved under the lock so a concurrent goal change cannot be overwritten
	// on disk by this older snapshot.
	saveErr := m.stats.Save(m.ctx, current)
	m.mu.Unlock()

	if saveErr != nil {
		logger.Error("failed to save statistics", "error", saveErr)
		m.broadcast(ErrorEvent{Service: "stats", Error: saveErr})
	}

	if m.database != nil {
		rec := models.SessionRecord{
			ID:          m.newID(),
			Mode:        mode,
			Minutes:     minutes,
			DateKey:     m.stats.TodayKey(),
			CompletedAt: m.stats.Now(),
		}
		if err := m.database.InsertSession(m.ctx, rec); err != nil {
			logger.Error("failed to log session", "error", err)
		}
	}

	logger.Info("focus session completed",
		"minutes", minutes,
		"today", current.TodaySessions,
		"goal", current.DailyGoal,
	)

	msg := fmt.Sprintf("%d of %d sessions today. Take a break.", current.TodaySessions, current.DailyGoal)
	m.audio.Notify("Focus session complete", msg)

	m.broadcast(SessionCompletedEvent{Mode: mode, Minutes: minutes})
	m.broadcast(StatsEvent{Stats: current.Clone()})
}

// RefreshStats applies day and week rollover for a process that has been
// running across a boundary. It reports whether anything changed.
func (m *Manager) RefreshStats() bool {
	m.mu.Lock()
	next, changed := m.stats.Refresh(m.current)
	var saveErr error
	if changed {
		m.current = next
		saveErr = m.stats.Save(m.ctx, next)
	}
	m.mu.Unlock()

	if !changed {
		return false
	}
	if saveErr != nil {
		logger.Error("failed to save statistics", "error", saveErr)
	}
	m.broadcast(StatsEvent{Stats: next.Clone()})
	return true
}

// Stats returns a copy of the current statistics.
func (m *Manager) Stats() models.UserStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

// SetDailyGoal moves the daily goal by delta, never below one.
func (m *Manager) SetDailyGoal(delta int) (models.UserStats, error) {
	m.mu.Lock()
	next, err := m.stats.SetDailyGoal(m.ctx, m.current, m.current.DailyGoal+delta)
	m.current = next
	m.mu.Unlock()

	if err != nil {
		logger.Error("failed to save daily goal", "error", err)
	}
	m.broadcast(StatsEvent{Stats: next.Clone()})
	return next.Clone(), err
}

// Settings returns the current settings.
func (m *Manager) Settings() models.AppSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.preferences
}

// ValidateSettings checks form input.
func (m *Manager) ValidateSettings(s models.AppSettings) error {
	return m.settings.Validate(s)
}

// SaveSettings persists s and applies its audio preferences. The in-memory
// settings change even when persisting fails.
func (m *Manager) SaveSettings(s models.AppSettings) error {
	m.mu.Lock()
	m.preferences = s
	m.mu.Unlock()

	if err := m.audio.Apply(s); err != nil && !errors.Is(err, audio.ErrNoPlayer) {
		logger.Warn("failed to apply ambient settings", "error", err)
	}

	if err := m.settings.Save(m.ctx, s); err != nil {
		logger.Error("failed to save settings", "error", err)
		return err
	}
	return nil
}

// StartAudio applies the stored ambient settings. The TUI calls it once at
// startup; command-line output never plays sound.
func (m *Manager) StartAudio() error {
	return m.audio.Apply(m.Settings())
}

// Audio returns the audio engine.
func (m *Manager) Audio() *audio.Engine {
	return m.audio
}

// RecentSessions returns the newest logged sessions.
func (m *Manager) RecentSessions(limit int) ([]models.SessionRecord, error) {
	if m.database == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return m.database.RecentSessions(m.ctx, limit)
}

// DailySeries returns per-day focus counts for the range. Days missing from
// the statistics history are filled from the session log when available.
func (m *Manager) DailySeries(tr models.TimeRange) models.DailySeries {
	st := m.Stats()
	series := m.stats.DailySeries(st, tr.Days())

	if m.database == nil || len(series) == 0 {
		return series
	}

	logged, err := m.database.SessionCountsByDay(m.ctx, series[0].DateKey)
	if err != nil {
		logger.Warn("failed to read session log", "error", err)
		return series
	}
	for i, day := range series {
		if _, archived := st.History[day.DateKey]; archived {
			continue
		}
		if day.Sessions == 0 && logged[day.DateKey] > 0 {
			series[i].Sessions = logged[day.DateKey]
		}
	}
	return series
}

// FocusMinutesTotal returns the minutes of every logged focus session. A
// missing or unreadable session log counts as zero.
func (m *Manager) FocusMinutesTotal() int {
	if m.database == nil {
		return 0
	}
	total, err := m.database.FocusMinutesTotal(m.ctx)
	if err != nil {
		logger.Warn("failed to read session log", "error", err)
		return 0
	}
	return total
}

// StorePath describes where records are stored, for display.
func (m *Manager) StorePath() string {
	switch s := m.store.(type) {
	case *db.DB:
		return s.Path()
	case *filestore.Store:
		return s.Dir()
	default:
		return "memory"
	}
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close stops watchers, audio and the database.
func (m *Manager) Close() error {
	m.cancel()
	m.wg.Wait()

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.audio.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
