// Package audio plays the game's sound cues through the system speaker. Every
// cue is synthesised at runtime; there are no sample files.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/asteroids-classic/internal/object"
)

const sampleRate = beep.SampleRate(44100)

// Manager mixes one-shot and looping cues. Until Init succeeds, and forever
// after it fails, every call is a no-op.
type Manager struct {
	mu     sync.Mutex
	logger *log.Logger
	mixer  *beep.Mixer
	loops  map[object.Sound]*beep.Ctrl
	ready  bool
	failed bool
}

// NewManager returns a silent manager; call Init to open the speaker.
func NewManager(logger *log.Logger) *Manager {
	return &Manager{
		logger: logger.With("component", "audio"),
		mixer:  &beep.Mixer{},
		loops:  make(map[object.Sound]*beep.Ctrl),
	}
}

// Init opens the speaker. If that fails the manager stays silent for good
// and later calls to Init return the same kind of error without retrying.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ready {
		return nil
	}
	if m.failed {
		return fmt.Errorf("audio disabled after an earlier failure")
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		m.failed = true
		m.logger.Warn("Audio unavailable, continuing without sound", "error", err)
		return fmt.Errorf("failed to initialise speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.ready = true
	m.logger.Debug("Audio ready", "sample_rate", int(sampleRate))
	return nil
}

// Silent reports whether cues are being dropped.
func (m *Manager) Silent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.ready
}

// Play starts a cue. A looping cue that is already playing is left alone.
func (m *Manager) Play(s object.Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := clips[s]
	if !m.ready || !ok {
		return
	}
	if !c.loop {
		speaker.Lock()
		m.mixer.Add(c.stream(sampleRate))
		speaker.Unlock()
		return
	}
	if _, playing := m.loops[s]; playing {
		return
	}
	ctrl := &beep.Ctrl{Streamer: c.stream(sampleRate)}
	speaker.Lock()
	m.mixer.Add(ctrl)
	speaker.Unlock()
	m.loops[s] = ctrl
}

// Stop ends a looping cue. One-shot cues always play out.
func (m *Manager) Stop(s object.Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.loops[s]
	if !ok {
		return
	}
	delete(m.loops, s)
	if !m.ready {
		return
	}
	// A Ctrl without a streamer reports drained, so the mixer drops it.
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return
	}
	clear(m.loops)
	speaker.Clear()
	speaker.Close()
	m.ready = false
}
