package app

import (
	"time"

	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/services"
)

// TickMsg is sent periodically for housekeeping: expiring toasts and
// rolling statistics over at midnight.
type TickMsg struct {
	Time time.Time
}

// TimerTickMsg advances the countdown. ID is the engine generation the tick
// was scheduled for; ticks from an older generation are dropped.
type TimerTickMsg struct {
	ID   uint64
	Time time.Time
}

// TimerAction names a user command for the countdown.
type TimerAction int

const (
	// TimerToggle starts or pauses.
	TimerToggle TimerAction = iota
	// TimerReset restores the full duration while idle.
	TimerReset
	// TimerStop pauses and resets.
	TimerStop
	// TimerFocus switches to a focus interval.
	TimerFocus
	// TimerBreak switches to a break interval.
	TimerBreak
)

// TimerActionMsg asks the root model to drive the countdown.
type TimerActionMsg struct {
	Action TimerAction
}

// TimerCompletedMsg reports that an interval ran out.
type TimerCompletedMsg struct {
	Mode models.SessionMode
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// InitialLoadMsg carries the records loaded at startup.
type InitialLoadMsg struct {
	Stats     models.UserStats
	Settings  models.AppSettings
	StorePath string
	AudioErr  error
}

// StatsLoadedMsg contains loaded statistics.
type StatsLoadedMsg struct {
	Stats models.UserStats
}

// GoalChangedMsg is the result of changing the daily goal.
type GoalChangedMsg struct {
	Stats models.UserStats
	Error error
}

// SettingsSavedMsg is the result of saving settings from the form.
type SettingsSavedMsg struct {
	Settings models.AppSettings
	Error    error
}

// HistoryLoadedMsg carries the chart series and recent sessions.
type HistoryLoadedMsg struct {
	Range        models.TimeRange
	Series       models.DailySeries
	Sessions     []models.SessionRecord
	FocusMinutes int
	Error        error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "stats", "history"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}
