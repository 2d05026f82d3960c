// Package project reads and writes .atap animation project files.
//
// A project file is a little-endian binary container:
//
//	magic "ATAP" | version u16 | flags u16
//	id [16]byte | title len u16 | title (UTF-8, NFC)
//	width u32 | height u32 | fps u32 | background rgba
//	palette count u32 | per entry: rgba, name len u8, name
//	frame count u32 | per frame: hold u32, payload len u32, payload
//	crc32 (IEEE) of all preceding bytes
//
// A frame payload is the frame's raw RGBA pixels, zlib-compressed when flag
// bit 0 is set. Decode validates every field before building anything, so a
// damaged file yields ErrCorruptProject and never a partial document.
package project

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/arunpranav-at/atap"
)

// Format constants.
const (
	Magic   = "ATAP"
	Version = 1

	// FlagZlib marks zlib-compressed frame payloads.
	FlagZlib uint16 = 1 << 0

	MaxFrames = 10000

	// DefaultMaxPixelBytes bounds the decoded RGBA bytes of all frames.
	DefaultMaxPixelBytes int64 = 2 << 30

	headerSize  = 8
	trailerSize = 4
)

var errInvalidUTF8 = errors.New("invalid UTF-8 in name")

// Option configures Encode.
type Option func(*encodeOptions)

type encodeOptions struct {
	compress bool
	level    int
}

// WithCompression sets the zlib level for frame payloads.
// zlib.NoCompression stores raw payloads and clears FlagZlib.
// The default is zlib.BestSpeed.
func WithCompression(level int) Option {
	return func(o *encodeOptions) {
		o.compress = level != zlib.NoCompression
		o.level = level
	}
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	maxPixelBytes int64
}

// WithMaxPixelBytes caps the decoded pixel data summed over all frames.
// Files that would exceed it are rejected as corrupt before the offending
// frame is inflated. The default is DefaultMaxPixelBytes.
func WithMaxPixelBytes(n int64) DecodeOption {
	return func(o *decodeOptions) {
		o.maxPixelBytes = n
	}
}

// Encode writes s to w.
func Encode(w io.Writer, s *atap.Snapshot, opts ...Option) error {
	o := encodeOptions{compress: true, level: zlib.BestSpeed}
	for _, opt := range opts {
		opt(&o)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("project: encode: %w", err)
	}
	if len(s.Frames) > MaxFrames {
		return fmt.Errorf("project: encode: %d frames exceeds %d", len(s.Frames), MaxFrames)
	}
	title := norm.NFC.String(s.Title)
	if len(title) > 0xffff {
		return fmt.Errorf("%w: title is %d bytes", ErrNameTooLong, len(title))
	}

	crc := crc32.NewIEEE()
	e := &encoder{w: io.MultiWriter(w, crc)}

	var flags uint16
	if o.compress {
		flags |= FlagZlib
	}
	e.bytes([]byte(Magic))
	e.u16(Version)
	e.u16(flags)

	e.bytes(s.ID[:])
	e.u16(uint16(len(title))) //nolint:gosec // G115: checked above
	e.bytes([]byte(title))
	e.u32(s.Width)
	e.u32(s.Height)
	e.u32(s.FPS)
	e.color(s.Background)

	e.u32(len(s.Palette))
	for _, p := range s.Palette {
		name := norm.NFC.String(p.Name)
		if len(name) > 0xff {
			return fmt.Errorf("%w: palette name %q", ErrNameTooLong, name)
		}
		e.color(p.Color)
		e.bytes([]byte{uint8(len(name))}) //nolint:gosec // G115: checked above
		e.bytes([]byte(name))
	}

	e.u32(len(s.Frames))
	var buf bytes.Buffer
	for _, f := range s.Frames {
		payload := f.Pixmap.Data()
		if o.compress {
			buf.Reset()
			zw, err := zlib.NewWriterLevel(&buf, o.level)
			if err != nil {
				return fmt.Errorf("project: encode: %w", err)
			}
			if _, err := zw.Write(payload); err != nil {
				return fmt.Errorf("project: encode: %w", err)
			}
			if err := zw.Close(); err != nil {
				return fmt.Errorf("project: encode: %w", err)
			}
			payload = buf.Bytes()
		}
		e.u32(f.Hold)
		e.u32(len(payload))
		e.bytes(payload)
	}
	if e.err != nil {
		return fmt.Errorf("project: encode: %w", e.err)
	}

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint32(trailer[:], crc.Sum32())
	if _, err := w.Write(trailer[:]); err != nil {
		return fmt.Errorf("project: encode: %w", err)
	}
	return nil
}

// Decode reads a project written by Encode. Any structural problem is
// reported as ErrCorruptProject.
func Decode(r io.Reader, opts ...DecodeOption) (*atap.Snapshot, error) {
	o := decodeOptions{maxPixelBytes: DefaultMaxPixelBytes}
	for _, opt := range opts {
		opt(&o)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}
	if len(data) < headerSize+trailerSize {
		return nil, corrupt("file is %d bytes", len(data))
	}

	body, trailer := data[:len(data)-trailerSize], data[len(data)-trailerSize:]
	if string(body[:4]) != Magic {
		return nil, corrupt("bad magic %q", body[:4])
	}
	if got, want := crc32.ChecksumIEEE(body), binary.LittleEndian.Uint32(trailer); got != want {
		return nil, corrupt("checksum %08x, want %08x", got, want)
	}
	if v := binary.LittleEndian.Uint16(body[4:6]); v != Version {
		return nil, fmt.Errorf("%w: %w %d", ErrCorruptProject, ErrUnsupportedVersion, v)
	}
	flags := binary.LittleEndian.Uint16(body[6:8])
	if flags&^FlagZlib != 0 {
		return nil, corrupt("unknown flags %#04x", flags)
	}

	d := &decoder{buf: body[headerSize:]}
	s := &atap.Snapshot{}

	id, err := uuid.FromBytes(d.bytes(16))
	if err != nil && d.err == nil {
		return nil, corrupt("id: %v", err)
	}
	s.ID = id
	s.Title = d.text(int(d.u16()))

	s.Width, s.Height = d.u32(), d.u32()
	s.FPS = d.u32()
	s.Background = d.color()
	if d.err == nil {
		if s.Width < 1 || s.Height < 1 || s.Width > atap.MaxCanvasSize || s.Height > atap.MaxCanvasSize {
			return nil, corrupt("canvas %dx%d", s.Width, s.Height)
		}
		if s.FPS < 1 || s.FPS > atap.MaxFPS {
			return nil, corrupt("fps %d", s.FPS)
		}
	}

	n := d.u32()
	if n > atap.MaxPaletteSize {
		return nil, corrupt("%d palette entries", n)
	}
	s.Palette = make([]atap.PaletteEntry, 0, n)
	for range n {
		c := d.color()
		name := d.text(int(d.u8()))
		s.Palette = append(s.Palette, atap.PaletteEntry{Color: c, Name: name})
	}

	n = d.u32()
	if d.err == nil && (n < 1 || n > MaxFrames) {
		return nil, corrupt("%d frames", n)
	}
	raw := s.Width * s.Height * 4
	var total int64
	for i := 0; i < n && d.err == nil; i++ {
		if total += int64(raw); total > o.maxPixelBytes {
			return nil, corrupt("frame %d: pixel data exceeds %d bytes", i, o.maxPixelBytes)
		}
		hold := d.u32()
		if d.err == nil && (hold < 1 || hold > atap.MaxHoldCount) {
			return nil, corrupt("frame %d: hold %d", i, hold)
		}
		payload := d.bytes(d.u32())
		if d.err != nil {
			break
		}
		pix, err := framePixels(payload, raw, flags&FlagZlib != 0)
		if err != nil {
			return nil, corrupt("frame %d: %v", i, err)
		}
		pm, err := atap.FromData(s.Width, s.Height, pix)
		if err != nil {
			return nil, corrupt("frame %d: %v", i, err)
		}
		s.Frames = append(s.Frames, atap.SnapshotFrame{Hold: hold, Pixmap: pm})
	}
	if d.err != nil {
		return nil, corrupt("%v", d.err)
	}
	if len(d.buf) != 0 {
		return nil, corrupt("%d trailing bytes", len(d.buf))
	}
	if err := s.Validate(); err != nil {
		return nil, corrupt("%v", err)
	}
	return s, nil
}

// framePixels returns exactly want bytes of RGBA from a stored payload.
func framePixels(payload []byte, want int, compressed bool) ([]byte, error) {
	if !compressed {
		if len(payload) != want {
			return nil, fmt.Errorf("payload is %d bytes, want %d", len(payload), want)
		}
		return payload, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	// The buffer grows with the inflated data, so a short stream that
	// claims a large canvas never allocates the full frame.
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, zr, int64(want)); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	pix := buf.Bytes()
	// Reading to EOF also verifies the zlib checksum.
	if n, err := io.Copy(io.Discard, zr); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	} else if n != 0 {
		return nil, fmt.Errorf("payload has %d extra bytes", n)
	}
	return pix, nil
}

// encoder writes little-endian fields and remembers the first error.
type encoder struct {
	w   io.Writer
	err error
	tmp [4]byte
}

func (e *encoder) bytes(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.tmp[:2], v)
	e.bytes(e.tmp[:2])
}

func (e *encoder) u32(v int) {
	binary.LittleEndian.PutUint32(e.tmp[:], uint32(v)) //nolint:gosec // G115: callers pass validated sizes
	e.bytes(e.tmp[:])
}

func (e *encoder) color(c atap.Color) {
	e.bytes([]byte{c.R, c.G, c.B, c.A})
}

// decoder reads little-endian fields from an in-memory body. After the
// first short read every accessor returns zero values and err stays set.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > len(d.buf) {
		d.err = io.ErrUnexpectedEOF
		return nil
	}
	b := d.buf[:n:n]
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) u8() uint8 {
	if b := d.bytes(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.bytes(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

// u32 reads a u32 as int. Values above 1<<31 decode as oversized counts and
// fail the range checks that follow.
func (d *decoder) u32() int {
	if b := d.bytes(4); b != nil {
		return int(binary.LittleEndian.Uint32(b))
	}
	return 0
}

func (d *decoder) color() atap.Color {
	if b := d.bytes(4); b != nil {
		return atap.Color{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	return atap.Color{}
}

// text reads n bytes of UTF-8 and returns them NFC-normalized.
func (d *decoder) text(n int) string {
	b := d.bytes(n)
	if d.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.err = errInvalidUTF8
		return ""
	}
	return norm.NFC.String(string(b))
}
