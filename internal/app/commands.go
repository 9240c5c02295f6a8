package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/audio"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between housekeeping ticks.
	DefaultTickInterval = 30 * time.Second

	// DefaultTimerInterval is the default countdown resolution.
	DefaultTimerInterval = time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// recentSessionsLimit bounds the session list on the history tab.
	recentSessionsLimit = 10
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// timerTickCmd schedules one countdown step for engine generation id.
func timerTickCmd(interval time.Duration, id uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TimerTickMsg{ID: id, Time: t}
	})
}

// loadInitialData returns a command that reads the loaded records and starts
// ambient audio.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		err := mgr.StartAudio()
		if errors.Is(err, audio.ErrNoPlayer) {
			err = nil
		}
		return InitialLoadMsg{
			Stats:     mgr.Stats(),
			Settings:  mgr.Settings(),
			StorePath: mgr.StorePath(),
			AudioErr:  err,
		}
	}
}

// loadStatsCmd returns a command that loads statistics.
func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.RefreshStats()
		return StatsLoadedMsg{Stats: mgr.Stats()}
	}
}

// loadHistoryCmd returns a command that builds the chart series and reads
// the newest sessions.
func loadHistoryCmd(mgr *services.Manager, tr models.TimeRange) tea.Cmd {
	return func() tea.Msg {
		series := mgr.DailySeries(tr)
		sessions, err := mgr.RecentSessions(recentSessionsLimit)
		return HistoryLoadedMsg{
			Range:        tr,
			Series:       series,
			Sessions:     sessions,
			FocusMinutes: mgr.FocusMinutesTotal(),
			Error:        err,
		}
	}
}

// adjustGoalCmd returns a command that moves the daily goal by delta.
func adjustGoalCmd(mgr *services.Manager, delta int) tea.Cmd {
	return func() tea.Msg {
		stats, err := mgr.SetDailyGoal(delta)
		return GoalChangedMsg{Stats: stats, Error: err}
	}
}

// saveSettingsCmd returns a command that validates and saves settings.
func saveSettingsCmd(mgr *services.Manager, s models.AppSettings) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.ValidateSettings(s); err != nil {
			return SettingsSavedMsg{Settings: s, Error: err}
		}
		return SettingsSavedMsg{Settings: s, Error: mgr.SaveSettings(s)}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// batchCmds combines multiple commands into one.
func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}

// quitCmd returns a command that quits the application.
func quitCmd() tea.Cmd {
	return tea.Quit
}

// Commands provides a public interface to the command functions. Tabs use it
// to reach the service manager without importing this package's internals.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// LoadInitialData returns a command that loads all initial data.
func (c *Commands) LoadInitialData() tea.Cmd {
	return loadInitialData(c.manager)
}

// LoadStats returns a command that loads statistics.
func (c *Commands) LoadStats() tea.Cmd {
	return loadStatsCmd(c.manager)
}

// LoadHistory returns a command that loads the history chart data.
func (c *Commands) LoadHistory(tr models.TimeRange) tea.Cmd {
	return loadHistoryCmd(c.manager, tr)
}

// AdjustGoal returns a command that moves the daily goal.
func (c *Commands) AdjustGoal(delta int) tea.Cmd {
	return adjustGoalCmd(c.manager, delta)
}

// SaveSettings returns a command that validates and saves settings.
func (c *Commands) SaveSettings(s models.AppSettings) tea.Cmd {
	return saveSettingsCmd(c.manager, s)
}

// Timer returns a command asking the root model to drive the countdown.
func (c *Commands) Timer(action TimerAction) tea.Cmd {
	return func() tea.Msg {
		return TimerActionMsg{Action: action}
	}
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return quitCmd()
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return batchCmds(cmds...)
}
