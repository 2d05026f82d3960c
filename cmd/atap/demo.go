package main

import (
	"math"

	"github.com/arunpranav-at/atap"
)

// bouncingBall builds a one-second 160x120 animation of a ball bouncing on
// a gradient sky, using the same operations the editor offers.
func bouncingBall() (*atap.Document, error) {
	const (
		w, h   = 160, 120
		frames = 12
		radius = 10
		ground = h - 16
	)
	doc, err := atap.NewDocument(
		atap.WithSize(w, h),
		atap.WithFPS(12),
		atap.WithTitle("Bouncing ball"),
	)
	if err != nil {
		return nil, err
	}

	sky := atap.Gradient{
		Mode: atap.GradientLinear,
		From: atap.Pt(0, 0),
		To:   atap.Pt(0, h),
		A:    atap.Hex("#6ec6ff"),
		B:    atap.Hex("#e3f6ff"),
	}
	grass := atap.HSL(120, 0.5, 0.4)
	ball := atap.Hex("#e53935")

	for i := range frames {
		if i > 0 {
			if _, err := doc.AppendFrame(); err != nil {
				return nil, err
			}
		}
		if err := doc.GradientFill(nil, sky); err != nil {
			return nil, err
		}
		if err := doc.Stroke([]atap.Point{atap.Pt(0, ground+8), atap.Pt(w, ground+8)}, 8, grass); err != nil {
			return nil, err
		}

		t := float64(i) / frames
		x := 20 + t*(w-40)
		y := ground - radius - math.Abs(math.Sin(t*2*math.Pi))*(ground-2*radius-10)
		if err := doc.Stroke([]atap.Point{atap.Pt(x, y)}, radius, ball); err != nil {
			return nil, err
		}
	}

	// Linger on the squash at the bottom of each bounce.
	if err := doc.SetHoldCount(0, 2); err != nil {
		return nil, err
	}
	if err := doc.SetHoldCount(frames/2, 2); err != nil {
		return nil, err
	}
	return doc, doc.SetActiveFrame(0)
}
