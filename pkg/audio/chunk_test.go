package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"
	"time"
)

func TestChunkDuration(t *testing.T) {
	// 16000 samples at 16kHz mono = 1 second = 32000 bytes
	c := NewChunk(make([]byte, 32000))
	if got := c.Duration(); got != time.Second {
		t.Errorf("Duration = %v, want 1s", got)
	}

	if got := (Chunk{}).Duration(); got != 0 {
		t.Errorf("empty chunk Duration = %v, want 0", got)
	}
}

func TestChunkWAVHeader(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := NewChunk(pcm).WAV()

	if !bytes.HasPrefix(wav, []byte("RIFF")) {
		t.Fatal("missing RIFF magic")
	}
	if string(wav[8:12]) != "WAVE" {
		t.Fatalf("missing WAVE marker, got %q", wav[8:12])
	}

	riffLen := binary.LittleEndian.Uint32(wav[4:8])
	if riffLen != uint32(36+len(pcm)) {
		t.Errorf("RIFF length %d, want %d", riffLen, 36+len(pcm))
	}

	sampleRate := binary.LittleEndian.Uint32(wav[24:28])
	if sampleRate != SampleRate {
		t.Errorf("sample rate %d, want %d", sampleRate, SampleRate)
	}

	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if dataLen != uint32(len(pcm)) {
		t.Errorf("data length %d, want %d", dataLen, len(pcm))
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Error("payload mismatch")
	}
}

func TestMockSourceScripting(t *testing.T) {
	src := NewMockSource().
		QueuePCM([]byte{1, 2}).
		QueueError(ErrNoCaptureTool).
		QueuePCM([]byte{3, 4})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c, err := src.Record(ctx, time.Second)
	if err != nil || !bytes.Equal(c.PCM, []byte{1, 2}) {
		t.Fatalf("first record: %v %v", c.PCM, err)
	}

	if _, err := src.Record(ctx, time.Second); err != ErrNoCaptureTool {
		t.Fatalf("second record err = %v", err)
	}

	c, err = src.Record(ctx, time.Second)
	if err != nil || !bytes.Equal(c.PCM, []byte{3, 4}) {
		t.Fatalf("third record: %v %v", c.PCM, err)
	}

	if src.Records() != 3 {
		t.Errorf("records = %d", src.Records())
	}
}
