// Package audio provides microphone capture and speaker playback for
// deskbot. Capture and playback shell out to the platform audio tools
// (arecord/sox, afplay/mpg123) rather than binding the sound stack
// directly; the bot treats audio as opaque blobs between the microphone
// and the transcription API.
package audio

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Capture format expected by the transcription endpoint.
const (
	SampleRate = 16000 // 16kHz
	Channels   = 1     // mono
	BitDepth   = 16    // PCM16
)

// Chunk is one captured utterance: raw PCM16 little-endian mono samples.
type Chunk struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// NewChunk wraps raw PCM16 bytes in the default capture format.
func NewChunk(pcm []byte) Chunk {
	return Chunk{PCM: pcm, SampleRate: SampleRate, Channels: Channels}
}

// Duration returns the playback length of the chunk.
func (c Chunk) Duration() time.Duration {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	samples := len(c.PCM) / 2 / c.Channels
	return time.Duration(samples) * time.Second / time.Duration(c.SampleRate)
}

// Empty reports whether the chunk holds no audio.
func (c Chunk) Empty() bool {
	return len(c.PCM) == 0
}

// WAV encodes the chunk as a RIFF/WAVE blob for multipart upload.
func (c Chunk) WAV() []byte {
	sampleRate := c.SampleRate
	if sampleRate == 0 {
		sampleRate = SampleRate
	}
	channels := c.Channels
	if channels == 0 {
		channels = Channels
	}

	byteRate := sampleRate * channels * BitDepth / 8
	blockAlign := channels * BitDepth / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(c.PCM)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(BitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(c.PCM)))
	buf.Write(c.PCM)

	return buf.Bytes()
}
