package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/focus-tui/internal/audio"
	"github.com/j-veylop/focus-tui/internal/clock"
	"github.com/j-veylop/focus-tui/internal/config"
	"github.com/j-veylop/focus-tui/internal/db"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/storage"
	"github.com/j-veylop/focus-tui/internal/storage/filestore"
)

var local = time.FixedZone("UTC+1", 60*60)

type nopSink struct{}

func (nopSink) Write(p []byte) (int, error) {
	time.Sleep(time.Millisecond)
	return len(p), nil
}
func (nopSink) Close() error { return nil }

type testEnv struct {
	mgr   *Manager
	store *storage.Memory
	db    *db.DB
	clock *clock.Manual
	beeps chan float64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	env := &testEnv{
		store: storage.NewMemory(),
		db:    database,
		clock: clock.NewManual(time.Date(2024, 1, 1, 10, 0, 0, 0, local)),
		beeps: make(chan float64, 16),
	}

	engine := audio.New(audio.Options{
		OpenSink: func() (io.WriteCloser, error) { return nopSink{}, nil },
		Beep: func(freq float64, _ int) error {
			select {
			case env.beeps <- freq:
			default:
			}
			return nil
		},
		Notify: func(string, string) error { return nil },
	})

	var ids atomic.Int64
	env.mgr = New(Deps{
		Store:    env.store,
		Database: database,
		Audio:    engine,
		Clock:    env.clock,
		Location: local,
		NewID: func() string {
			return fmt.Sprintf("session-%d", ids.Add(1))
		},
	})
	t.Cleanup(func() { _ = env.mgr.Close() })
	return env
}

func TestNewManager(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		DatabasePath: filepath.Join(tmpDir, "test.db"),
		StoreDir:     filepath.Join(tmpDir, "store"),
		Store:        config.StoreSQLite,
	}

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	defer mgr.Close()

	assert.NotNil(t, mgr.Database())
	assert.Equal(t, cfg.DatabasePath, mgr.StorePath())
	assert.Equal(t, models.DefaultDailyGoal, mgr.Stats().DailyGoal)
	assert.Equal(t, models.DefaultSettings(), mgr.Settings())
}

func TestNewManager_FileStore(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		DatabasePath: filepath.Join(tmpDir, "test.db"),
		StoreDir:     filepath.Join(tmpDir, "store"),
		Store:        config.StoreFile,
	}

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	defer mgr.Close()

	assert.Equal(t, cfg.StoreDir, mgr.StorePath())
	_, err = os.Stat(filepath.Join(cfg.StoreDir, storage.KeyUserStats+".json"))
	assert.NoError(t, err, "stats record should be written on load")
}

func TestSessionCompleted_Focus(t *testing.T) {
	env := newTestEnv(t)
	ch, _ := env.mgr.Subscribe()

	env.mgr.SessionCompleted(models.SessionFocus, 25)

	st := env.mgr.Stats()
	assert.Equal(t, 1, st.TodaySessions)
	assert.Equal(t, 25, st.TotalMinutesToday)

	data, err := env.store.Get(context.Background(), storage.KeyUserStats)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"todaySessions":1`)

	recent, err := env.mgr.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "session-1", recent[0].ID)
	assert.Equal(t, "2024-01-01", recent[0].DateKey)
	assert.Equal(t, models.SessionFocus, recent[0].Mode)

	var gotStats bool
	for i := 0; i < 2; i++ {
		select {
		case ev := <-ch:
			if se, ok := ev.(StatsEvent); ok {
				gotStats = true
				assert.Equal(t, 1, se.Stats.TodaySessions)
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for events")
		}
	}
	assert.True(t, gotStats)

	select {
	case <-env.beeps:
	case <-time.After(time.Second):
		t.Fatal("completion chime not played")
	}
}

func TestSessionCompleted_BreakLeavesStats(t *testing.T) {
	env := newTestEnv(t)

	env.mgr.SessionCompleted(models.SessionBreak, 5)

	assert.Zero(t, env.mgr.Stats().TodaySessions)
	recent, err := env.mgr.RecentSessions(10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	select {
	case <-env.beeps:
	case <-time.After(time.Second):
		t.Fatal("break completion should still chime")
	}
}

func TestSessionCompleted_SaveFailureKeepsMemory(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailPuts(errors.New("disk full"))
	ch, _ := env.mgr.Subscribe()

	env.mgr.SessionCompleted(models.SessionFocus, 25)

	assert.Equal(t, 1, env.mgr.Stats().TodaySessions)

	var sawError bool
	for i := 0; i < 3; i++ {
		select {
		case ev := <-ch:
			if _, ok := ev.(ErrorEvent); ok {
				sawError = true
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for events")
		}
	}
	assert.True(t, sawError)
}

func TestSessionCompleted_AfterMidnight(t *testing.T) {
	env := newTestEnv(t)
	env.mgr.SessionCompleted(models.SessionFocus, 25)

	env.clock.Set(time.Date(2024, 1, 2, 0, 30, 0, 0, local))
	env.mgr.SessionCompleted(models.SessionFocus, 25)

	st := env.mgr.Stats()
	assert.Equal(t, 1, st.TodaySessions)
	assert.Equal(t, 1, st.History["2024-01-01"])
	assert.Equal(t, 1, st.CurrentStreak)
}

func TestRefreshStats(t *testing.T) {
	env := newTestEnv(t)
	env.mgr.SessionCompleted(models.SessionFocus, 25)

	assert.False(t, env.mgr.RefreshStats())

	env.clock.Advance(24 * time.Hour)
	assert.True(t, env.mgr.RefreshStats())
	assert.Zero(t, env.mgr.Stats().TodaySessions)
}

func TestSetDailyGoal(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.mgr.SetDailyGoal(2)
	require.NoError(t, err)
	assert.Equal(t, 6, st.DailyGoal)

	st, err = env.mgr.SetDailyGoal(-10)
	require.NoError(t, err)
	assert.Equal(t, 1, st.DailyGoal)
	assert.Equal(t, 1, env.mgr.Stats().DailyGoal)
}

func TestSessionCompleted_ConcurrentGoalChangePersisted(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			env.mgr.SessionCompleted(models.SessionFocus, 25)
		}()
		go func() {
			defer wg.Done()
			_, _ = env.mgr.SetDailyGoal(1)
		}()
	}
	wg.Wait()

	data, err := env.store.Get(context.Background(), storage.KeyUserStats)
	require.NoError(t, err)
	var persisted models.UserStats
	require.NoError(t, json.Unmarshal(data, &persisted))

	st := env.mgr.Stats()
	assert.Equal(t, 20, st.TodaySessions)
	assert.Equal(t, models.DefaultDailyGoal+20, st.DailyGoal)
	assert.Equal(t, st.TodaySessions, persisted.TodaySessions)
	assert.Equal(t, st.DailyGoal, persisted.DailyGoal)
}

func TestFocusMinutesTotal(t *testing.T) {
	env := newTestEnv(t)
	assert.Zero(t, env.mgr.FocusMinutesTotal())

	env.mgr.SessionCompleted(models.SessionFocus, 25)
	env.mgr.SessionCompleted(models.SessionBreak, 5)
	env.mgr.SessionCompleted(models.SessionFocus, 50)

	assert.Equal(t, 75, env.mgr.FocusMinutesTotal())
}

func TestSaveSettings(t *testing.T) {
	env := newTestEnv(t)

	s := models.DefaultSettings()
	s.SoundEnabled = true
	s.SoundType = models.AmbientWhite
	require.NoError(t, env.mgr.SaveSettings(s))

	assert.Equal(t, s, env.mgr.Settings())
	variant, playing := env.mgr.Audio().AmbientPlaying()
	assert.True(t, playing)
	assert.Equal(t, models.AmbientWhite, variant)

	s.SoundEnabled = false
	require.NoError(t, env.mgr.SaveSettings(s))
	_, playing = env.mgr.Audio().AmbientPlaying()
	assert.False(t, playing)
}

func TestSaveSettings_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailPuts(errors.New("read-only"))

	s := models.DefaultSettings()
	s.FocusDuration = 40
	assert.Error(t, env.mgr.SaveSettings(s))
	assert.Equal(t, 40, env.mgr.Settings().FocusDuration)
}

func TestValidateSettings(t *testing.T) {
	env := newTestEnv(t)
	s := models.DefaultSettings()
	assert.NoError(t, env.mgr.ValidateSettings(s))
	s.Volume = 3
	assert.Error(t, env.mgr.ValidateSettings(s))
}

func TestDailySeries_FillsFromSessionLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.db.InsertSession(ctx, models.SessionRecord{
		ID: "old", Mode: models.SessionFocus, Minutes: 25, DateKey: "2023-12-30",
		CompletedAt: time.Date(2023, 12, 30, 9, 0, 0, 0, local),
	}))
	env.mgr.SessionCompleted(models.SessionFocus, 25)

	series := env.mgr.DailySeries(models.TimeRange7Days)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-01-01", series[6].DateKey)
	assert.Equal(t, 1, series[6].Sessions)
	assert.Equal(t, "2023-12-30", series[4].DateKey)
	assert.Equal(t, 1, series[4].Sessions)
}

func TestWatchSettings_FileStore(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	mgr := New(Deps{
		Store: store,
		Audio: audio.New(audio.Options{
			OpenSink: func() (io.WriteCloser, error) { return nopSink{}, nil },
			Beep:     func(float64, int) error { return nil },
		}),
	})
	defer mgr.Close()
	require.NoError(t, mgr.SaveSettings(models.DefaultSettings()))

	ch, _ := mgr.Subscribe()

	require.NoError(t, os.WriteFile(store.Path(storage.KeySettings), []byte(`{"focusDuration":45}`), 0o600))

	select {
	case ev := <-ch:
		changed, ok := ev.(SettingsChangedEvent)
		require.True(t, ok, "got %T", ev)
		assert.Equal(t, 45, changed.Settings.FocusDuration)
		assert.Equal(t, 45, mgr.Settings().FocusDuration)
	case <-time.After(3 * time.Second):
		t.Fatal("expected settings change event")
	}
}

func TestManager_Subscription(t *testing.T) {
	env := newTestEnv(t)

	ch, cmd := env.mgr.Subscribe()
	require.NotNil(t, ch)
	require.NotNil(t, cmd)

	env.mgr.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- SessionCompletedEvent{Mode: models.SessionFocus, Minutes: 25}

	msg := waitForEvent(ch)()
	assert.Equal(t, SessionCompletedEvent{Mode: models.SessionFocus, Minutes: 25}, msg)
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = StatsEvent{}
	var _ ServiceEvent = SessionCompletedEvent{}
	var _ ServiceEvent = SettingsChangedEvent{}
	var _ ServiceEvent = ErrorEvent{}
}

func TestClose(t *testing.T) {
	env := newTestEnv(t)
	ch, _ := env.mgr.Subscribe()

	require.NoError(t, env.mgr.Close())

	_, ok := <-ch
	assert.False(t, ok)
}
