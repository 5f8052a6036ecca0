package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeLengthMatchesDuration(t *testing.T) {
	notes := []Note{{440, 100 * time.Millisecond}}
	pcm := Synthesize(notes)

	wantSamples := samplesFor(100*time.Millisecond) + samplesFor(noteGap)
	assert.Len(t, pcm, 2*wantSamples)
}

func TestSynthesizeRestIsSilence(t *testing.T) {
	pcm := Synthesize([]Note{{0, 50 * time.Millisecond}})
	for _, b := range pcm {
		assert.Zero(t, b)
	}
}

func TestSynthesizeAmplitudeIsBounded(t *testing.T) {
	pcm := Synthesize(Melody)
	gain := float64(noteGain)
	limit := int16(gain*32767) + 1

	for i := 0; i+1 < len(pcm); i += 2 {
		s := int16(binary.LittleEndian.Uint16(pcm[i:]))
		if s < 0 {
			s = -s
		}
		require.LessOrEqual(t, s, limit)
	}
}

func TestSynthesizeEnvelopeStartsQuiet(t *testing.T) {
	pcm := synthesizeNote(Note{440, 300 * time.Millisecond})

	// The first sample sits at the base of the attack ramp.
	first := int16(binary.LittleEndian.Uint16(pcm[:2]))
	assert.Less(t, abs16(first), int16(1000))

	// Mid-note samples reach the sustain level.
	mid := 2 * (len(pcm) / 4)
	peak := int16(0)
	for i := mid; i < mid+400 && i+1 < len(pcm); i += 2 {
		if v := abs16(int16(binary.LittleEndian.Uint16(pcm[i:]))); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, int16(7000))
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func TestMelodyDurationSumsNotesAndGaps(t *testing.T) {
	notes := []Note{
		{262, 300 * time.Millisecond},
		{0, 200 * time.Millisecond},
	}
	assert.Equal(t, 600*time.Millisecond, MelodyDuration(notes))
}

func TestBeepWAVDecodesAndParses(t *testing.T) {
	wav := BeepWAV()
	require.NotEmpty(t, wav)

	format, data, err := parseWAV(wav)
	require.NoError(t, err)
	assert.Equal(t, 8000, format.SampleRate)
	assert.Equal(t, 1, format.Channels)
	assert.Equal(t, 8, format.BitDepth)
	assert.NotEmpty(t, data)
}

func TestNormalizeEightBitToSixteen(t *testing.T) {
	format := &wavFormat{SampleRate: SampleRate, Channels: 1, BitDepth: 8}
	pcm := normalize(format, []byte{128, 255, 0})

	require.Len(t, pcm, 6)
	assert.Equal(t, int16(0), int16(binary.LittleEndian.Uint16(pcm[0:])))
	assert.Equal(t, int16(127<<8), int16(binary.LittleEndian.Uint16(pcm[2:])))
	assert.Equal(t, int16(-128<<8), int16(binary.LittleEndian.Uint16(pcm[4:])))
}

func TestNormalizeResamplesRate(t *testing.T) {
	format := &wavFormat{SampleRate: SampleRate / 2, Channels: 1, BitDepth: 8}
	in := make([]byte, 100)
	pcm := normalize(format, in)

	// Half-rate input roughly doubles in sample count.
	assert.InDelta(t, 400, len(pcm), 8)
}
