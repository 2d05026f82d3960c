package atap

// Document defaults, matching the editor's stock canvas.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 12
	MaxFPS        = 60
)

// DocumentOption configures a Document during creation.
// Use functional options to customize Document behavior.
//
// Example:
//
//	// Default 800x600 white canvas at 12 fps
//	doc, _ := atap.NewDocument()
//
//	// Small canvas for a flip-book
//	doc, _ := atap.NewDocument(atap.WithSize(160, 120), atap.WithFPS(6))
type DocumentOption func(*documentOptions)

// documentOptions holds optional configuration for Document creation.
type documentOptions struct {
	width        int
	height       int
	fps          int
	background   Color
	palette      *Palette
	historyLimit int
	title        string
}

// defaultOptions returns the default document options.
func defaultOptions() documentOptions {
	return documentOptions{
		width:        DefaultWidth,
		height:       DefaultHeight,
		fps:          DefaultFPS,
		background:   White,
		palette:      nil, // DefaultPalette() if nil
		historyLimit: DefaultHistoryLimit,
	}
}

// WithSize sets the canvas size shared by every frame.
func WithSize(width, height int) DocumentOption {
	return func(o *documentOptions) {
		o.width = width
		o.height = height
	}
}

// WithFPS sets the playback and export frame rate.
func WithFPS(fps int) DocumentOption {
	return func(o *documentOptions) {
		o.fps = fps
	}
}

// WithBackground sets the color new frames start with and the eraser paints.
func WithBackground(c Color) DocumentOption {
	return func(o *documentOptions) {
		o.background = c
	}
}

// WithPalette replaces the default palette with the given colors.
func WithPalette(colors ...Color) DocumentOption {
	return func(o *documentOptions) {
		o.palette = NewPalette(colors...)
	}
}

// WithHistoryLimit sets the byte budget of the undo history.
// A limit of 0 keeps every edit.
func WithHistoryLimit(bytes int) DocumentOption {
	return func(o *documentOptions) {
		o.historyLimit = bytes
	}
}

// WithTitle sets the project title.
func WithTitle(title string) DocumentOption {
	return func(o *documentOptions) {
		o.title = title
	}
}
