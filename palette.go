package atap

import "fmt"

// MaxPaletteSize is the largest number of entries a palette may hold.
const MaxPaletteSize = 256

// PaletteEntry is one palette color plus usage metadata.
type PaletteEntry struct {
	Color Color
	Name  string
	// Uses counts how often tools drew with this color. It is advisory
	// metadata and is not part of the undo history.
	Uses int
}

// Palette is an ordered list of colors. Duplicates are allowed.
type Palette struct {
	entries []PaletteEntry
}

// NewPalette creates a palette holding the given colors in order.
func NewPalette(colors ...Color) *Palette {
	p := &Palette{entries: make([]PaletteEntry, 0, len(colors))}
	for _, c := range colors {
		p.entries = append(p.entries, PaletteEntry{Color: c})
	}
	return p
}

// DefaultPalette returns black, white and ten evenly spaced bright hues.
func DefaultPalette() *Palette {
	p := &Palette{}
	p.entries = append(p.entries,
		PaletteEntry{Color: Black, Name: "black"},
		PaletteEntry{Color: White, Name: "white"},
	)
	names := [...]string{"red", "orange", "lime", "green", "teal", "sky", "blue", "purple", "pink", "rose"}
	for i, name := range names {
		p.entries = append(p.entries, PaletteEntry{Color: HSL(float64(i)*36, 0.9, 0.5), Name: name})
	}
	return p
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entry returns the entry at index i.
func (p *Palette) Entry(i int) (PaletteEntry, error) {
	if i < 0 || i >= len(p.entries) {
		return PaletteEntry{}, fmt.Errorf("%w: %d", ErrPaletteIndex, i)
	}
	return p.entries[i], nil
}

// Entries returns a copy of all entries.
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Colors returns the palette colors in order.
func (p *Palette) Colors() []Color {
	out := make([]Color, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Color
	}
	return out
}

// IndexOf returns the first index holding c, or -1.
func (p *Palette) IndexOf(c Color) int {
	for i, e := range p.entries {
		if e.Color == c {
			return i
		}
	}
	return -1
}

// clone returns a deep copy, used by palette history deltas.
func (p *Palette) clone() *Palette {
	return &Palette{entries: p.Entries()}
}

// noteUse bumps the usage counter of every entry equal to c.
func (p *Palette) noteUse(c Color) {
	for i := range p.entries {
		if p.entries[i].Color == c {
			p.entries[i].Uses++
		}
	}
}
