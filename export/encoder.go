package export

import (
	"context"
	"image"
)

// Config describes the video an encoder receives.
type Config struct {
	Width  int
	Height int
	FPS    int
	// Frames is the total number of frames that will be written.
	Frames int
}

// Encoder opens output streams. Implementations must be safe to share
// between concurrent exports; per-export state lives in the Stream.
type Encoder interface {
	// Open prepares path for cfg.Frames frames of cfg.Width x cfg.Height.
	Open(ctx context.Context, path string, cfg Config) (Stream, error)
}

// Stream receives the expanded, flattened frames of one export in order.
type Stream interface {
	// WriteFrame encodes one opaque frame. The image is only valid for the
	// duration of the call.
	WriteFrame(img *image.NRGBA) error
	// Close finishes the output.
	Close() error
	// Abort stops encoding and removes any partial output. It may be
	// called after a failed Close and must tolerate repeated calls.
	Abort() error
}
