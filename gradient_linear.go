package atap

// LinearGradient parameterizes pixels along the axis from Start to End.
// t is the normalized projection onto the axis, clamped to [0, 1].
type LinearGradient struct {
	Start Point
	End   Point
}

func (g LinearGradient) param(p Point) float64 {
	axis := g.End.Sub(g.Start)
	length2 := axis.LengthSquared()
	if length2 == 0 {
		return 0
	}
	return clamp01(p.Sub(g.Start).Dot(axis) / length2)
}
