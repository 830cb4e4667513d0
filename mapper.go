package roast

// ToPercent converts a pointer position into the percent position of a
// dragged layer's center.
//
// grab is the pointer offset inside the layer box captured when the drag
// started. The layer's top-left corner is clamped so the whole box stays
// inside the container: left in [0, container.W-layer.W] and top in
// [0, container.H-layer.H]. When the layer is larger than the container the
// upper bound is negative and the corner is pinned to 0.
//
// A container axis with no extent maps to 50%.
func ToPercent(pointer, grab Point, container Rect, layer Size) Percent {
	left := pointer.X - container.Min.X - grab.X
	top := pointer.Y - container.Min.Y - grab.Y

	left = clampOrigin(left, container.Size.W-layer.W)
	top = clampOrigin(top, container.Size.H-layer.H)

	return Percent{
		X: axisPercent(left+layer.W/2, container.Size.W),
		Y: axisPercent(top+layer.H/2, container.Size.H),
	}
}

// ToPixel returns the client position of a percent point inside container.
func ToPixel(p Percent, container Rect) Point {
	return Point{
		X: container.Min.X + p.X/100*container.Size.W,
		Y: container.Min.Y + p.Y/100*container.Size.H,
	}
}

// CenteredRect returns the box of the given size centered on the percent
// position inside container.
func CenteredRect(p Percent, container Rect, size Size) Rect {
	c := ToPixel(p, container)
	return Rect{
		Min:  Point{X: c.X - size.W/2, Y: c.Y - size.H/2},
		Size: size,
	}
}

// clampOrigin is max(0, min(v, hi)). A negative hi yields 0.
func clampOrigin(v, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

func axisPercent(v, extent float64) float64 {
	if extent <= 0 {
		return 50
	}
	return v / extent * 100
}
