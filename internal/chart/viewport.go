package chart

// Viewport is the visible x range of a chart. Span 0 shows every point.
type Viewport struct {
	Offset int
	Span   int
}

// Window returns the half-open index range [from, to) visible for n points.
func (v Viewport) Window(n int) (from, to int) {
	if n <= 0 {
		return 0, 0
	}
	v = v.clamp(n)
	if v.Span == 0 {
		return 0, n
	}
	return v.Offset, v.Offset + v.Span
}

// Pan shifts the window by delta points, stopping at either end.
func (v Viewport) Pan(delta, n int) Viewport {
	v = v.clamp(n)
	if v.Span == 0 {
		return v
	}
	v.Offset += delta
	return v.clamp(n)
}

// ZoomIn halves the visible span, keeping its centre.
func (v Viewport) ZoomIn(n int) Viewport {
	v = v.clamp(n)
	span := v.Span
	if span == 0 {
		span = n
	}
	if span <= 1 {
		return v
	}
	centre := v.Offset + span/2
	next := span / 2
	return Viewport{Offset: centre - next/2, Span: next}.clamp(n)
}

// ZoomOut doubles the visible span until everything is shown.
func (v Viewport) ZoomOut(n int) Viewport {
	v = v.clamp(n)
	if v.Span == 0 {
		return v
	}
	next := v.Span * 2
	if next >= n {
		return Viewport{}
	}
	centre := v.Offset + v.Span/2
	return Viewport{Offset: centre - next/2, Span: next}.clamp(n)
}

func (v Viewport) Reset() Viewport {
	return Viewport{}
}

func (v Viewport) Zoomed() bool {
	return v.Span != 0
}

func (v Viewport) clamp(n int) Viewport {
	if n <= 0 || v.Span <= 0 || v.Span >= n {
		return Viewport{}
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if v.Offset+v.Span > n {
		v.Offset = n - v.Span
	}
	return v
}
