package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// Note is one melody step. A zero frequency is a rest.
type Note struct {
	Freq     float64 // Hz
	Duration time.Duration
}

// Melody is the last-resort alert sound, synthesized locally so it works
// with no sound assets and no notification permission. The phrase is the
// opening of "Joyeux Anniversaire" — familiar and friendly rather than
// alarming.
var Melody = []Note{
	{262, 300 * time.Millisecond}, // Do
	{262, 200 * time.Millisecond}, // Do
	{294, 500 * time.Millisecond}, // Ré
	{262, 500 * time.Millisecond}, // Do
	{349, 500 * time.Millisecond}, // Fa
	{330, 800 * time.Millisecond}, // Mi
	{0, 200 * time.Millisecond},
	{262, 300 * time.Millisecond}, // Do
	{262, 200 * time.Millisecond}, // Do
	{294, 500 * time.Millisecond}, // Ré
	{262, 500 * time.Millisecond}, // Do
	{392, 500 * time.Millisecond}, // Sol
	{349, 800 * time.Millisecond}, // Fa
}

const (
	noteGap     = 50 * time.Millisecond
	noteAttack  = 10 * time.Millisecond
	noteRelease = 100 * time.Millisecond
	noteGain    = 0.25
)

// MelodyDuration returns the total play time of a note sequence,
// including the inter-note gaps. The melody loop reschedules itself
// after this long.
func MelodyDuration(notes []Note) time.Duration {
	var total time.Duration
	for _, n := range notes {
		total += n.Duration + noteGap
	}
	return total
}

// Synthesize renders a note sequence as mono signed 16-bit PCM at
// SampleRate. Each note is a square wave shaped by a linear
// attack/sustain/release envelope.
func Synthesize(notes []Note) []byte {
	var pcm []byte
	for _, n := range notes {
		pcm = append(pcm, synthesizeNote(n)...)
		pcm = append(pcm, make([]byte, 2*samplesFor(noteGap))...)
	}
	return pcm
}

func synthesizeNote(n Note) []byte {
	total := samplesFor(n.Duration)
	buf := make([]byte, 2*total)
	if n.Freq == 0 {
		return buf
	}

	attack := samplesFor(noteAttack)
	release := samplesFor(noteRelease)
	if attack+release > total {
		attack, release = total/2, total/2
	}

	for i := 0; i < total; i++ {
		// Square wave
		phase := math.Mod(float64(i)*n.Freq/SampleRate, 1)
		v := noteGain
		if phase >= 0.5 {
			v = -noteGain
		}

		// Envelope
		switch {
		case i < attack:
			v *= float64(i) / float64(attack)
		case i >= total-release:
			v *= float64(total-i) / float64(release)
		}

		binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(v*math.MaxInt16)))
	}
	return buf
}

func samplesFor(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

// PlayMelody synthesizes and plays the alert melody once.
func PlayMelody() (*Player, error) {
	return PlayPCM(Synthesize(Melody))
}
