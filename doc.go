// Package atap is the document engine of a frame-by-frame animation editor
// for young children.
//
// # Overview
//
// A [Document] owns an ordered sequence of [Frame] values, each holding one
// [Pixmap] of the shared canvas size, plus the frame rate, background color
// and [Palette]. Raster tools (strokes, eraser, flood fill and gradient fill)
// write into the active frame and every mutation is recorded on the
// document's [History] as a reversible delta.
//
// # Quick Start
//
//	doc, err := atap.NewDocument(atap.WithSize(320, 240), atap.WithFPS(12))
//	if err != nil {
//	    return err
//	}
//
//	// Draw a red line on the active frame.
//	_ = doc.Stroke([]atap.Point{atap.Pt(10, 10), atap.Pt(200, 120)}, 3, atap.Red)
//
//	// Flood the background with yellow, then take it back.
//	_ = doc.Fill(0, 0, atap.Yellow, 0)
//	_ = doc.Undo()
//
//	// Preview.
//	p := atap.NewPlayer(doc)
//	_ = p.Play()
//	p.Tick(time.Second / 12)
//	img := p.Current()
//
// Saving and loading live in the project sub-package; video export lives in
// the export sub-package. Both work on an immutable [Snapshot] of the
// document.
//
// # Coordinate System
//
// Origin (0,0) is the top-left pixel, X increases right and Y increases down.
// Gradient anchors and stroke paths are given in pixel units; pixels are
// sampled at their centers.
//
// # Concurrency
//
// A Document is not safe for concurrent use. Editing, undo and playback run on
// the caller's goroutine. Only export is expected to run in the background,
// and it operates on a Snapshot, never on the live document.
package atap
