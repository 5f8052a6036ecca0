package alert

import (
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/colette/pkg/audio"
	"github.com/borgmon/colette/pkg/timing"
)

// ErrNotPermitted means the strategy is configured off, not broken.
var ErrNotPermitted = errors.New("not permitted")

// NotificationStrategy rides the desktop notification sound. The
// notification itself is fire-and-forget; the platform dismisses it.
type NotificationStrategy struct {
	app     fyne.App
	enabled func() bool
}

func NewNotificationStrategy(app fyne.App, enabled func() bool) *NotificationStrategy {
	return &NotificationStrategy{app: app, enabled: enabled}
}

func (n *NotificationStrategy) Name() string { return "notification" }

func (n *NotificationStrategy) Play() error {
	if n.app == nil || !n.enabled() {
		return ErrNotPermitted
	}
	n.app.SendNotification(fyne.NewNotification("Médicaments", "Il est temps !"))
	return nil
}

// BeepStrategy plays the short embedded beep once per pulse.
type BeepStrategy struct {
	play func() (*audio.Player, error)

	mu     sync.Mutex
	player *audio.Player
}

func NewBeepStrategy() *BeepStrategy {
	return &BeepStrategy{play: audio.PlayBeep}
}

func (b *BeepStrategy) Name() string { return "beep" }

func (b *BeepStrategy) Play() error {
	player, err := b.play()
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Stop()
	}
	b.player = player
	return nil
}

func (b *BeepStrategy) StopSound() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Stop()
		b.player = nil
	}
}

// MelodyStrategy is the last resort: a synthesized melody that loops by
// rescheduling itself after its own duration, for as long as the
// alerting check holds. While the loop runs, further Play calls succeed
// without starting a second loop.
type MelodyStrategy struct {
	clock    timing.Clock
	alerting func() bool
	play     func() (*audio.Player, error)
	duration time.Duration

	mu      sync.Mutex
	player  *audio.Player
	replay  timing.Handle
	looping bool
}

func NewMelodyStrategy(clock timing.Clock, alerting func() bool) *MelodyStrategy {
	return &MelodyStrategy{
		clock:    clock,
		alerting: alerting,
		play:     audio.PlayMelody,
		duration: audio.MelodyDuration(audio.Melody),
	}
}

func (m *MelodyStrategy) Name() string { return "melody" }

func (m *MelodyStrategy) Play() error {
	m.mu.Lock()
	if m.looping {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()
	return m.playOnce()
}

func (m *MelodyStrategy) playOnce() error {
	player, err := m.play()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.player = player
	m.looping = true
	m.replay = m.clock.AfterFunc(m.duration, m.loop)
	return nil
}

func (m *MelodyStrategy) loop() {
	m.mu.Lock()
	looping := m.looping
	m.mu.Unlock()
	if !looping {
		return
	}

	if !m.alerting() {
		m.StopSound()
		return
	}
	// Errors here end the loop; the next pulse restarts the chain anyway.
	if err := m.playOnce(); err != nil {
		m.mu.Lock()
		m.looping = false
		m.mu.Unlock()
	}
}

func (m *MelodyStrategy) StopSound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.looping = false
	if m.replay != nil {
		m.replay.Stop()
		m.replay = nil
	}
	if m.player != nil {
		m.player.Stop()
		m.player = nil
	}
}
