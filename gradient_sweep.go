package atap

import "math"

// ConicalGradient parameterizes pixels by their angle around Center.
// The angle is measured from the direction Center→Reference and swept over a
// full turn, so t=0 lies on the reference ray and t approaches 1 just before
// returning to it. Angles follow image coordinates (Y down), which makes the
// sweep run clockwise on screen.
type ConicalGradient struct {
	Center    Point
	Reference Point
}

func (g ConicalGradient) param(p Point) float64 {
	ref := g.Reference.Sub(g.Center)
	d := p.Sub(g.Center)
	if (ref.X == 0 && ref.Y == 0) || (d.X == 0 && d.Y == 0) {
		return 0
	}

	angle := math.Atan2(d.Y, d.X) - math.Atan2(ref.Y, ref.X)
	angle = normalizeAngle(angle)
	return angle / (2 * math.Pi)
}

// normalizeAngle wraps an angle into [0, 2*Pi).
func normalizeAngle(angle float64) float64 {
	twoPi := 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if angle < 0 {
		angle += twoPi
	}
	if angle >= twoPi {
		angle = 0
	}
	return angle
}
