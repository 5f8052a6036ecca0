// Package audio plays the alert sounds through a single shared output
// device context. Playback is best-effort: every entry point returns an
// error instead of blocking, so callers can fall through to the next
// sound strategy.
package audio

import (
	"bytes"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// SampleRate is the fixed playback rate. Everything played through this
// package is normalized to mono signed 16-bit at this rate, because an
// oto context supports exactly one format per process.
const SampleRate = 44100

// Global audio context singleton
var (
	globalCtx     *oto.Context
	globalCtxOnce sync.Once
	ctxReady      bool
)

// ErrUnavailable is returned when the audio device could not be opened.
var ErrUnavailable = errors.New("audio output unavailable")

func initContext() {
	globalCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalCtx = ctx
		ctxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// Player is one in-flight playback with cancellation support.
type Player struct {
	stopChan chan struct{}
	player   *oto.Player

	mu      sync.Mutex
	stopped bool
}

// PlayPCM plays normalized PCM once and returns a Player for control.
func PlayPCM(pcm []byte) (*Player, error) {
	initContext()
	if !ctxReady || globalCtx == nil {
		return nil, ErrUnavailable
	}

	p := &Player{stopChan: make(chan struct{})}
	go p.playOnce(pcm)
	return p, nil
}

// PlayWAV decodes a WAV file, normalizes it to the context format and
// plays it once.
func PlayWAV(wavData []byte) (*Player, error) {
	format, data, err := parseWAV(wavData)
	if err != nil {
		return nil, err
	}
	return PlayPCM(normalize(format, data))
}

func (p *Player) playOnce(pcm []byte) {
	p.player = globalCtx.NewPlayer(bytes.NewReader(pcm))
	p.player.Play()

	// Wait for the sound to finish playing or stop signal
	for p.player.IsPlaying() {
		select {
		case <-p.stopChan:
			p.player.Pause()
			p.player.Close()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := p.player.Close(); err != nil {
		log.Printf("Failed to close audio player: %v", err)
	}
}

// Stop stops the playback. Safe to call on nil and safe to call twice.
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)

		if p.player != nil {
			p.player.Pause()
		}
	}
}
