package chart

import "testing"

func TestViewportFullByDefault(t *testing.T) {
	var v Viewport
	from, to := v.Window(10)
	if from != 0 || to != 10 {
		t.Errorf("Window = [%d,%d), want [0,10)", from, to)
	}
	if from, to := v.Window(0); from != 0 || to != 0 {
		t.Errorf("Window(0) = [%d,%d)", from, to)
	}
}

func TestViewportZoomIn(t *testing.T) {
	v := Viewport{}.ZoomIn(10)
	if v != (Viewport{Offset: 3, Span: 5}) {
		t.Fatalf("ZoomIn = %+v", v)
	}
	v = v.ZoomIn(10).ZoomIn(10)
	if v.Span != 1 {
		t.Errorf("expected span 1 after three zooms, got %+v", v)
	}
	if again := v.ZoomIn(10); again != v {
		t.Errorf("zooming past one point should be a no-op, got %+v", again)
	}
}

func TestViewportZoomOutRestoresFull(t *testing.T) {
	v := Viewport{Offset: 3, Span: 5}.ZoomOut(10)
	if v.Zoomed() {
		t.Errorf("expected full view, got %+v", v)
	}
	v = Viewport{Offset: 6, Span: 2}.ZoomOut(10)
	if v != (Viewport{Offset: 5, Span: 4}) {
		t.Errorf("ZoomOut = %+v", v)
	}
}

func TestViewportPanClamps(t *testing.T) {
	v := Viewport{Offset: 3, Span: 5}
	if got := v.Pan(1, 10); got.Offset != 4 {
		t.Errorf("Pan(+1) offset = %d", got.Offset)
	}
	if got := v.Pan(100, 10); got.Offset != 5 {
		t.Errorf("Pan past end offset = %d, want 5", got.Offset)
	}
	if got := v.Pan(-100, 10); got.Offset != 0 {
		t.Errorf("Pan past start offset = %d, want 0", got.Offset)
	}
	if got := (Viewport{}).Pan(3, 10); got.Zoomed() {
		t.Errorf("panning the full view should be a no-op, got %+v", got)
	}
}

func TestViewportClampsToShorterSeries(t *testing.T) {
	v := Viewport{Offset: 8, Span: 4}
	from, to := v.Window(10)
	if from != 6 || to != 10 {
		t.Errorf("Window = [%d,%d), want [6,10)", from, to)
	}
	// Span no longer smaller than the series: back to full
	from, to = v.Window(3)
	if from != 0 || to != 3 {
		t.Errorf("Window(3) = [%d,%d), want [0,3)", from, to)
	}
}

func TestViewportReset(t *testing.T) {
	if (Viewport{Offset: 2, Span: 3}).Reset().Zoomed() {
		t.Error("Reset should show everything")
	}
}
