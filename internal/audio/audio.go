// Package audio owns sound output: the completion chime, desktop
// notifications and the ambient noise stream.
package audio

import (
	"errors"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/models"
)

// chunkSamples is the number of samples written per sink write (~46ms).
const chunkSamples = 2048

type tone struct {
	freq     float64
	duration int // milliseconds
}

var chime = []tone{{880, 120}, {1320, 180}}

// Options configures an Engine. Zero values select the system backends.
type Options struct {
	// Notifications enables desktop notifications.
	Notifications bool
	// OpenSink opens the ambient output. Defaults to OpenPlayer.
	OpenSink SinkOpener
	// Beep plays a tone. Defaults to beeep.Beep.
	Beep func(freq float64, duration int) error
	// Notify shows a desktop notification.
	Notify func(title, message string) error
	// Seed fixes the noise generator, for tests.
	Seed uint64
}

// Engine is the process-wide audio resource. Create one with New and
// release it with Close.
type Engine struct {
	mu     sync.Mutex
	opts   Options
	closed bool

	volume atomic.Uint64 // math.Float64bits of the ambient volume

	ambient       *stream
	warnNoPlayer  sync.Once
	chimeInFlight sync.WaitGroup
}

type stream struct {
	variant models.AmbientVariant
	sink    io.WriteCloser
	stop    chan struct{}
	done    chan struct{}
}

// alive reports whether the writer goroutine is still feeding the player.
func (s *stream) alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// New creates an audio engine.
func New(opts Options) *Engine {
	if opts.OpenSink == nil {
		opts.OpenSink = OpenPlayer
	}
	if opts.Beep == nil {
		opts.Beep = beeep.Beep
	}
	if opts.Notify == nil {
		opts.Notify = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	return &Engine{opts: opts}
}

// PlayCompletionSound plays the two-tone chime without blocking the caller.
func (e *Engine) PlayCompletionSound() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.chimeInFlight.Add(1)
	go func() {
		defer e.chimeInFlight.Done()
		for _, t := range chime {
			if err := e.opts.Beep(t.freq, t.duration); err != nil {
				logger.Debug("completion beep failed", "error", err)
				return
			}
		}
	}()
}

// Notify shows a desktop notification when notifications are enabled.
func (e *Engine) Notify(title, message string) {
	if !e.opts.Notifications {
		return
	}
	if err := e.opts.Notify(title, message); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

// StartAmbient starts looping noise of the given variant, replacing any
// stream already playing. A missing player is logged once and reported as
// ErrNoPlayer.
func (e *Engine) StartAmbient(variant models.AmbientVariant, volume float64) error {
	e.SetAmbientVolume(volume)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.New("audio: engine closed")
	}

	if e.ambient != nil {
		if e.ambient.variant == variant && e.ambient.alive() {
			return nil
		}
		e.stopLocked()
	}

	sink, err := e.opts.OpenSink()
	if err != nil {
		if errors.Is(err, ErrNoPlayer) {
			e.warnNoPlayer.Do(func() {
				logger.Warn("ambient sound unavailable", "error", err)
			})
		} else {
			logger.Error("failed to open audio output", "error", err)
		}
		return err
	}

	s := &stream{
		variant: variant,
		sink:    sink,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	e.ambient = s
	go e.run(s, NewGenerator(variant, e.opts.Seed))

	logger.Info("ambient started", "variant", variant, "volume", volume)
	return nil
}

func (e *Engine) run(s *stream, gen Generator) {
	defer close(s.done)

	buf := make([]byte, chunkSamples*bytesPerSample)
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		fillPCM(buf, gen, e.Volume())
		if _, err := s.sink.Write(buf); err != nil {
			select {
			case <-s.stop:
			default:
				logger.Warn("ambient stream ended", "error", err)
			}
			return
		}
	}
}

// StopAmbient stops the ambient stream if one is playing.
func (e *Engine) StopAmbient() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.ambient == nil {
		return
	}
	s := e.ambient
	e.ambient = nil

	close(s.stop)
	// Closing the sink unblocks a writer waiting on the player.
	if err := s.sink.Close(); err != nil {
		logger.Debug("failed to close audio output", "error", err)
	}
	<-s.done
}

// SetAmbientVolume changes the volume of the running stream, clamped to
// [0, 1].
func (e *Engine) SetAmbientVolume(volume float64) {
	e.volume.Store(math.Float64bits(clamp(volume, 0, 1)))
}

// Volume returns the current ambient volume.
func (e *Engine) Volume() float64 {
	return math.Float64frombits(e.volume.Load())
}

// AmbientPlaying reports whether a stream is running and its variant.
func (e *Engine) AmbientPlaying() (models.AmbientVariant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ambient == nil || !e.ambient.alive() {
		return "", false
	}
	return e.ambient.variant, true
}

// Apply starts, restarts or stops ambient sound to match settings.
func (e *Engine) Apply(settings models.AppSettings) error {
	if !settings.SoundEnabled {
		e.StopAmbient()
		return nil
	}
	return e.StartAmbient(settings.SoundType, settings.Volume)
}

// Close stops all output and waits for a chime in progress.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.stopLocked()
	e.mu.Unlock()

	e.chimeInFlight.Wait()
	return nil
}
