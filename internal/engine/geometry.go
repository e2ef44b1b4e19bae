package engine

// Geometry maps lane indices to horizontal positions in the viewport.
type Geometry struct {
	Width  float64
	Height float64
	Lanes  int
}

// LaneWidth returns the width of one lane band.
func (g Geometry) LaneWidth() float64 {
	if g.Lanes <= 0 {
		return g.Width
	}
	return g.Width / float64(g.Lanes)
}

// LaneX returns the x that centers an entity of width w in lane.
func (g Geometry) LaneX(lane int, w float64) float64 {
	lw := g.LaneWidth()
	return float64(g.ClampLane(lane))*lw + (lw-w)/2
}

// ClampLane restricts a lane index to [0, Lanes).
func (g Geometry) ClampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= g.Lanes {
		return max(g.Lanes-1, 0)
	}
	return lane
}

// PlayerY returns the y that anchors a vehicle of height h above the bottom margin.
func (g Geometry) PlayerY(h, bottomMargin float64) float64 {
	return g.Height - h - bottomMargin
}
