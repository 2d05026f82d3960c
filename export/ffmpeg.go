package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

// FFmpeg encodes video by piping raw RGBA frames into an ffmpeg process.
// The container is chosen by ffmpeg from the output file extension.
//
// The zero value runs "ffmpeg" from PATH and produces H.264 in yuv420p at
// CRF 18.
type FFmpeg struct {
	// Binary is the ffmpeg executable. Default "ffmpeg".
	Binary string
	// Codec is the video codec. Default "libx264".
	Codec string
	// CRF is the constant rate factor. Default 18.
	CRF int
	// PixelFormat is the output pixel format. Default "yuv420p".
	PixelFormat string
	// ExtraArgs are inserted before the output path.
	ExtraArgs []string
}

func (f *FFmpeg) binary() string {
	if f.Binary == "" {
		return "ffmpeg"
	}
	return f.Binary
}

// Args returns the ffmpeg command line for writing cfg to path, without the
// binary name.
func (f *FFmpeg) Args(path string, cfg Config) []string {
	codec, pixfmt, crf := f.Codec, f.PixelFormat, f.CRF
	if codec == "" {
		codec = "libx264"
	}
	if pixfmt == "" {
		pixfmt = "yuv420p"
	}
	if crf == 0 {
		crf = 18
	}
	args := []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-framerate", strconv.Itoa(cfg.FPS),
		"-i", "-",
		"-c:v", codec,
		"-pix_fmt", pixfmt,
		"-crf", strconv.Itoa(crf),
	}
	if cfg.Width%2 != 0 || cfg.Height%2 != 0 {
		// 4:2:0 chroma needs even dimensions.
		args = append(args, "-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2")
	}
	args = append(args, f.ExtraArgs...)
	return append(args, path)
}

// Open starts ffmpeg. It fails with exec.ErrNotFound when the binary is
// missing.
func (f *FFmpeg) Open(ctx context.Context, path string, cfg Config) (Stream, error) {
	bin, err := exec.LookPath(f.binary())
	if err != nil {
		return nil, fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	cmd := exec.CommandContext(ctx, bin, f.Args(path, cfg)...) //nolint:gosec // binary and args are caller-controlled
	stderr := &tailBuffer{max: 4 << 10}
	cmd.Stderr = stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &ffmpegStream{cmd: cmd, stdin: stdin, stderr: stderr, path: path}, nil
}

type ffmpegStream struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *tailBuffer
	path   string

	waitOnce sync.Once
	waitErr  error
}

func (s *ffmpegStream) WriteFrame(img *image.NRGBA) error {
	if _, err := s.stdin.Write(img.Pix); err != nil {
		// ffmpeg exited early; its exit status explains why.
		if werr := s.wait(); werr != nil {
			return werr
		}
		return err
	}
	return nil
}

func (s *ffmpegStream) Close() error {
	if err := s.stdin.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return s.wait()
}

func (s *ffmpegStream) Abort() error {
	_ = s.stdin.Close()
	if s.cmd.ProcessState == nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.wait()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// wait reaps ffmpeg once and attaches its stderr to a failure.
func (s *ffmpegStream) wait() error {
	s.waitOnce.Do(func() {
		if err := s.cmd.Wait(); err != nil {
			if msg := bytes.TrimSpace(s.stderr.Bytes()); len(msg) > 0 {
				err = fmt.Errorf("%w: %s", err, msg)
			}
			s.waitErr = err
		}
	})
	return s.waitErr
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) Bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return bytes.Clone(t.buf)
}
