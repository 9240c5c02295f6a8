package audio

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/focus-tui/internal/models"
)

type fakeSink struct {
	mu     sync.Mutex
	bytes  int
	closed bool
}

func (s *fakeSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	s.bytes += len(p)
	// Pace like a real device so the test does not spin.
	time.Sleep(time.Millisecond)
	return len(p), nil
}

func (s *fakeSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSink) written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytes
}

type sinkFactory struct {
	mu    sync.Mutex
	sinks []*fakeSink
	err   error
}

func (f *sinkFactory) open() (io.WriteCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeSink{}
	f.sinks = append(f.sinks, s)
	return s, nil
}

func (f *sinkFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sinks)
}

func newTestEngine(t *testing.T, f *sinkFactory) *Engine {
	t.Helper()
	e := New(Options{
		OpenSink: f.open,
		Beep:     func(float64, int) error { return nil },
		Notify:   func(string, string) error { return nil },
		Seed:     1,
	})
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestStartStopAmbient(t *testing.T) {
	f := &sinkFactory{}
	e := newTestEngine(t, f)

	require.NoError(t, e.StartAmbient(models.AmbientPink, 0.4))
	variant, playing := e.AmbientPlaying()
	assert.True(t, playing)
	assert.Equal(t, models.AmbientPink, variant)

	assert.Eventually(t, func() bool { return f.sinks[0].written() > 0 }, time.Second, 5*time.Millisecond)

	e.StopAmbient()
	_, playing = e.AmbientPlaying()
	assert.False(t, playing)
	assert.True(t, f.sinks[0].closed)

	e.StopAmbient()
}

func TestStartAmbient_SameVariantKeepsStream(t *testing.T) {
	f := &sinkFactory{}
	e := newTestEngine(t, f)

	require.NoError(t, e.StartAmbient(models.AmbientBrown, 0.5))
	require.NoError(t, e.StartAmbient(models.AmbientBrown, 0.8))

	assert.Equal(t, 1, f.count())
	assert.InDelta(t, 0.8, e.Volume(), 1e-9)
}

func TestStartAmbient_VariantChangeRestarts(t *testing.T) {
	f := &sinkFactory{}
	e := newTestEngine(t, f)

	require.NoError(t, e.StartAmbient(models.AmbientBrown, 0.5))
	require.NoError(t, e.StartAmbient(models.AmbientWhite, 0.5))

	require.Equal(t, 2, f.count())
	assert.True(t, f.sinks[0].closed)
	variant, _ := e.AmbientPlaying()
	assert.Equal(t, models.AmbientWhite, variant)
}

func TestStartAmbient_RestartsAfterPlayerExit(t *testing.T) {
	f := &sinkFactory{}
	e := newTestEngine(t, f)

	require.NoError(t, e.StartAmbient(models.AmbientBrown, 0.5))
	// The player going away makes every further write fail.
	require.NoError(t, f.sinks[0].Close())

	assert.Eventually(t, func() bool {
		_, playing := e.AmbientPlaying()
		return !playing
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, e.StartAmbient(models.AmbientBrown, 0.5))
	assert.Equal(t, 2, f.count())
	variant, playing := e.AmbientPlaying()
	assert.True(t, playing)
	assert.Equal(t, models.AmbientBrown, variant)
}

func TestStartAmbient_NoPlayer(t *testing.T) {
	f := &sinkFactory{err: ErrNoPlayer}
	e := newTestEngine(t, f)

	err := e.StartAmbient(models.AmbientWhite, 0.5)
	assert.ErrorIs(t, err, ErrNoPlayer)
	_, playing := e.AmbientPlaying()
	assert.False(t, playing)

	assert.ErrorIs(t, e.StartAmbient(models.AmbientWhite, 0.5), ErrNoPlayer)
}

func TestSetAmbientVolume_Clamps(t *testing.T) {
	e := newTestEngine(t, &sinkFactory{})

	e.SetAmbientVolume(1.7)
	assert.Equal(t, 1.0, e.Volume())
	e.SetAmbientVolume(-0.2)
	assert.Equal(t, 0.0, e.Volume())
}

func TestApply(t *testing.T) {
	f := &sinkFactory{}
	e := newTestEngine(t, f)

	s := models.DefaultSettings()
	s.SoundEnabled = true
	require.NoError(t, e.Apply(s))
	_, playing := e.AmbientPlaying()
	assert.True(t, playing)

	s.SoundEnabled = false
	require.NoError(t, e.Apply(s))
	_, playing = e.AmbientPlaying()
	assert.False(t, playing)
}

func TestPlayCompletionSound(t *testing.T) {
	var (
		mu    sync.Mutex
		tones []float64
	)
	e := New(Options{
		OpenSink: (&sinkFactory{}).open,
		Beep: func(freq float64, _ int) error {
			mu.Lock()
			defer mu.Unlock()
			tones = append(tones, freq)
			return nil
		},
	})

	e.PlayCompletionSound()
	require.NoError(t, e.Close())

	assert.Equal(t, []float64{880, 1320}, tones)
}

func TestPlayCompletionSound_BeepErrorIsQuiet(t *testing.T) {
	calls := 0
	e := New(Options{
		OpenSink: (&sinkFactory{}).open,
		Beep: func(float64, int) error {
			calls++
			return errors.New("no speaker")
		},
	})

	e.PlayCompletionSound()
	require.NoError(t, e.Close())
	assert.Equal(t, 1, calls)
}

func TestNotify(t *testing.T) {
	var got []string
	notify := func(title, msg string) error {
		got = append(got, title+": "+msg)
		return nil
	}

	New(Options{Notify: notify}).Notify("Focus complete", "Take a break")
	assert.Empty(t, got, "notifications disabled")

	New(Options{Notify: notify, Notifications: true}).Notify("Focus complete", "Take a break")
	assert.Equal(t, []string{"Focus complete: Take a break"}, got)
}

func TestClose(t *testing.T) {
	f := &sinkFactory{}
	e := New(Options{OpenSink: f.open, Beep: func(float64, int) error { return nil }})

	require.NoError(t, e.StartAmbient(models.AmbientBrown, 0.5))
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.True(t, f.sinks[0].closed)
	assert.Error(t, e.StartAmbient(models.AmbientBrown, 0.5))
}
