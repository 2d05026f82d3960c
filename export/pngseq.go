package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// DefaultPNGPattern names the files of a PNG sequence. It takes the 0-based
// frame number.
const DefaultPNGPattern = "frame_%04d.png"

// PNGSequence writes every expanded frame as a numbered PNG file into the
// output directory, which is created if needed. The files can be fed to
// other tools, for example "ffmpeg -framerate FPS -i frame_%04d.png".
type PNGSequence struct {
	// Pattern is a fmt pattern for file names. Default DefaultPNGPattern.
	Pattern string
	// Compression is the PNG compression level.
	Compression png.CompressionLevel
}

// Open creates dir and prepares to write cfg.Frames files into it.
func (p *PNGSequence) Open(ctx context.Context, dir string, cfg Config) (Stream, error) {
	pattern := p.Pattern
	if pattern == "" {
		pattern = DefaultPNGPattern
	}
	created := false
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		created = true
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &pngStream{
		ctx:     ctx,
		dir:     dir,
		pattern: pattern,
		created: created,
		enc:     &png.Encoder{CompressionLevel: p.Compression},
	}, nil
}

type pngStream struct {
	ctx     context.Context
	dir     string
	pattern string
	created bool
	enc     *png.Encoder
	written []string
}

func (s *pngStream) WriteFrame(img *image.NRGBA) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	name := filepath.Join(s.dir, fmt.Sprintf(s.pattern, len(s.written)))
	f, err := os.Create(name) //nolint:gosec // directory is caller-provided
	if err != nil {
		return err
	}
	s.written = append(s.written, name)

	w := bufio.NewWriter(f)
	if err := s.enc.Encode(w, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *pngStream) Close() error { return nil }

// Abort removes the files written so far, and the directory if Open
// created it.
func (s *pngStream) Abort() error {
	var errs []error
	for _, name := range s.written {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	s.written = nil
	if s.created {
		if err := os.Remove(s.dir); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
