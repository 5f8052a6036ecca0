package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

type wavFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

var errBadWAV = errors.New("malformed WAV data")

// parseWAV extracts the format chunk and raw sample data from a RIFF/WAVE
// file.
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, nil, errBadWAV
	}

	r := bytes.NewReader(data[12:])
	format := &wavFormat{}
	haveFmt := false

	for {
		var hdr struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			if err == io.EOF {
				return nil, nil, errBadWAV
			}
			return nil, nil, err
		}

		chunk := make([]byte, hdr.Size)
		if _, err := io.ReadFull(r, chunk); err != nil {
			// Some encoders overstate the final chunk size; take what is there.
			if err != io.ErrUnexpectedEOF {
				return nil, nil, err
			}
		}

		switch string(hdr.ID[:]) {
		case "fmt ":
			if len(chunk) < 16 {
				return nil, nil, errBadWAV
			}
			format.Channels = int(binary.LittleEndian.Uint16(chunk[2:4]))
			format.SampleRate = int(binary.LittleEndian.Uint32(chunk[4:8]))
			format.BitDepth = int(binary.LittleEndian.Uint16(chunk[14:16]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, nil, errBadWAV
			}
			return format, chunk, nil
		}
	}
}

// normalize converts parsed WAV samples to the context format: mono,
// signed 16-bit little-endian, SampleRate. Multi-channel input keeps the
// first channel; rate conversion is nearest-neighbor, which is plenty for
// a one-second alert beep.
func normalize(format *wavFormat, data []byte) []byte {
	if format.Channels < 1 {
		return nil
	}

	// Decode to mono int16.
	var samples []int16
	switch format.BitDepth {
	case 8:
		// 8-bit WAV is unsigned.
		step := format.Channels
		samples = make([]int16, 0, len(data)/step)
		for i := 0; i+step <= len(data); i += step {
			samples = append(samples, (int16(data[i])-128)<<8)
		}
	case 16:
		step := 2 * format.Channels
		samples = make([]int16, 0, len(data)/step)
		for i := 0; i+step <= len(data); i += step {
			samples = append(samples, int16(binary.LittleEndian.Uint16(data[i:i+2])))
		}
	default:
		return nil
	}

	if format.SampleRate != SampleRate && format.SampleRate > 0 {
		ratio := float64(format.SampleRate) / float64(SampleRate)
		out := make([]int16, int(float64(len(samples))/ratio))
		for i := range out {
			src := int(float64(i) * ratio)
			if src >= len(samples) {
				src = len(samples) - 1
			}
			out[i] = samples[src]
		}
		samples = out
	}

	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}
	return pcm
}
