// Package export renders animation snapshots to video and image files.
//
// An Exporter expands every frame by its hold count, flattens it over the
// project background and streams the result to an Encoder. Exports work on
// an atap.Snapshot, so the document can keep changing while an export runs
// on another goroutine:
//
//	exp := export.New(&export.FFmpeg{})
//	job := exp.Start(ctx, doc.Snapshot(), "bounce.mp4")
//	res, err := job.Wait()
//
// Failed and cancelled exports remove their partial output.
package export

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/arunpranav-at/atap"
	ximage "github.com/arunpranav-at/atap/internal/image"
)

// Progress reports how far an export has come.
type Progress struct {
	Frame int // frames written so far
	Total int
}

// Result summarizes a finished export.
type Result struct {
	Path     string
	Frames   int
	Duration time.Duration
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithProgress registers fn to be called after every written frame. fn runs
// on the exporting goroutine and should return quickly.
func WithProgress(fn func(Progress)) Option {
	return func(e *Exporter) { e.progress = fn }
}

// Exporter drives an Encoder. It holds no per-export state and may run
// several exports concurrently.
type Exporter struct {
	enc      Encoder
	progress func(Progress)
}

// New creates an exporter writing through enc.
func New(enc Encoder, opts ...Option) *Exporter {
	e := &Exporter{enc: enc}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand returns the playback sequence of s: each frame's pixmap repeated
// HoldCount times. Repeats share the same *atap.Pixmap.
func Expand(s *atap.Snapshot) []*atap.Pixmap {
	out := make([]*atap.Pixmap, 0, s.TotalHoldCount())
	for _, f := range s.Frames {
		for range f.Hold {
			out = append(out, f.Pixmap)
		}
	}
	return out
}

// Export writes s to path and blocks until the encoder has finished.
//
// Encoder failures are returned as *ExportError. Cancelling ctx stops the
// export before the next frame and returns an error wrapping ctx.Err(). In
// both cases partial output is removed.
func (e *Exporter) Export(ctx context.Context, s *atap.Snapshot, path string) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, exportErr("validate", path, err)
	}
	seq := Expand(s)
	cfg := Config{Width: s.Width, Height: s.Height, FPS: s.FPS, Frames: len(seq)}
	log := atap.Logger().With("path", path)
	log.Info("export: started", "frames", cfg.Frames, "fps", cfg.FPS,
		"width", cfg.Width, "height", cfg.Height)

	stream, err := e.enc.Open(ctx, path, cfg)
	if err != nil {
		return Result{}, exportErr("open", path, err)
	}

	if err := e.writeAll(ctx, stream, seq, s.Background); err != nil {
		if abortErr := stream.Abort(); abortErr != nil {
			log.Warn("export: cannot remove partial output", "err", abortErr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Info("export: cancelled")
			return Result{}, fmt.Errorf("export: %s: %w", path, ctxErr)
		}
		return Result{}, err
	}
	if err := stream.Close(); err != nil {
		if abortErr := stream.Abort(); abortErr != nil {
			log.Warn("export: cannot remove partial output", "err", abortErr)
		}
		return Result{}, exportErr("finish", path, err)
	}

	res := Result{Path: path, Frames: len(seq), Duration: s.Duration()}
	log.Info("export: finished", "frames", res.Frames, "duration", res.Duration)
	return res, nil
}

// writeAll flattens and writes seq. Consecutive repeats of one pixmap are
// flattened once.
func (e *Exporter) writeAll(ctx context.Context, stream Stream, seq []*atap.Pixmap, bg atap.Color) error {
	if len(seq) == 0 {
		return nil
	}
	buf := ximage.GetFromDefault(seq[0].Width(), seq[0].Height())
	defer ximage.PutToDefault(buf)

	var last *atap.Pixmap
	for i, pm := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pm != last {
			flatten(buf, pm, bg)
			last = pm
		}
		if err := stream.WriteFrame(buf); err != nil {
			return exportErr("encode", "", fmt.Errorf("frame %d: %w", i, err))
		}
		if e.progress != nil {
			e.progress(Progress{Frame: i + 1, Total: len(seq)})
		}
	}
	return nil
}

// flatten composites pm over bg into dst, which must match pm's size.
func flatten(dst *image.NRGBA, pm *atap.Pixmap, bg atap.Color) {
	ximage.FlattenOver(dst.Pix, pm.Data(), [4]uint8{bg.R, bg.G, bg.B, 255})
}
