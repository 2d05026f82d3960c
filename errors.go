package atap

import "errors"

// Sentinel errors for the atap package.
var (
	// ErrOutOfBounds is returned when a pixel coordinate lies outside a pixmap.
	ErrOutOfBounds = errors.New("atap: pixel out of bounds")

	// ErrInvalidSize is returned for canvas dimensions below 1 or above MaxCanvasSize.
	ErrInvalidSize = errors.New("atap: invalid canvas size")

	// ErrInvalidFPS is returned when the frame rate is outside [1, MaxFPS].
	ErrInvalidFPS = errors.New("atap: invalid fps")

	// ErrInvalidHoldCount is returned when a hold count is outside [1, MaxHoldCount].
	ErrInvalidHoldCount = errors.New("atap: invalid hold count")

	// ErrLastFrame is returned when deleting the only remaining frame.
	ErrLastFrame = errors.New("atap: cannot delete the last frame")

	// ErrFrameIndex is returned for a frame index outside the sequence.
	ErrFrameIndex = errors.New("atap: frame index out of range")

	// ErrPaletteIndex is returned for a palette index outside the palette.
	ErrPaletteIndex = errors.New("atap: palette index out of range")

	// ErrEmptyHistory is returned by Undo or Redo when there is nothing to apply.
	ErrEmptyHistory = errors.New("atap: history is empty")

	// ErrPreviewActive is returned by edit commands while playback holds the document.
	ErrPreviewActive = errors.New("atap: preview is active")

	// ErrNoChange is returned when an edit would not modify any pixel.
	ErrNoChange = errors.New("atap: no change")
)
