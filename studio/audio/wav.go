package audio

import (
	"encoding/binary"
	"fmt"
)

// DecodeWAV parses a RIFF/WAVE container into a Clip. Only uncompressed
// 16-bit PCM is handled, which is what the server writes.
func DecodeWAV(data []byte) (Clip, error) {
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Clip{}, ErrInvalidWAV
	}

	var (
		clip      Clip
		haveFmt   bool
		audioFmt  uint16
		bitDepth  uint16
		openedFmt = data[12:]
	)

	// Walk the chunk list for fmt and data.
	for len(openedFmt) >= 8 {
		id := string(openedFmt[:4])
		size := int(binary.LittleEndian.Uint32(openedFmt[4:8]))
		body := openedFmt[8:]
		if size > len(body) {
			return Clip{}, fmt.Errorf("%w: truncated %q chunk", ErrInvalidWAV, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Clip{}, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
			}
			audioFmt = binary.LittleEndian.Uint16(body[0:2])
			clip.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
			clip.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true
		case "data":
			if !haveFmt {
				return Clip{}, fmt.Errorf("%w: data chunk before fmt", ErrInvalidWAV)
			}
			clip.PCM = body[:size]
		}

		// Chunks are word-aligned.
		if size%2 == 1 {
			size++
		}
		if size+8 > len(openedFmt) {
			break
		}
		openedFmt = openedFmt[8+size:]
	}

	if !haveFmt || clip.PCM == nil {
		return Clip{}, fmt.Errorf("%w: missing fmt or data chunk", ErrInvalidWAV)
	}
	if audioFmt != 1 || bitDepth != BitDepth {
		return Clip{}, fmt.Errorf("%w: format=%d depth=%d", ErrUnsupportedFormat, audioFmt, bitDepth)
	}
	if clip.Channels < 1 || clip.SampleRate <= 0 {
		return Clip{}, ErrInvalidWAV
	}
	return clip, nil
}
