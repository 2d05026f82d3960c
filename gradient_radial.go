package atap

// RadialGradient parameterizes pixels by their distance from Center.
// The outer radius is the distance from Center to Edge; t is clamped to 1
// beyond it.
type RadialGradient struct {
	Center Point
	Edge   Point
}

func (g RadialGradient) param(p Point) float64 {
	radius := g.Center.Distance(g.Edge)
	if radius == 0 {
		return 0
	}
	return clamp01(g.Center.Distance(p) / radius)
}
