package mandel

import (
	"math"
	"testing"
)

func TestMapPixelToPlaneCentre(t *testing.T) {
	tests := []struct {
		vp   Viewport
		w, h int
	}{
		{Viewport{Zoom: 0.004}, 640, 480},
		{Viewport{Zoom: 0.004, PanX: -0.7}, 1280, 700},
		{Viewport{Zoom: 1e-9, PanX: -0.7436, PanY: 0.1318}, 320, 320},
		{Viewport{Zoom: 3, PanX: 12.5, PanY: -7.25}, 2, 2},
	}
	for _, tt := range tests {
		re, im := MapPixelToPlane(tt.w/2, tt.h/2, tt.vp, tt.w, tt.h)
		if re != tt.vp.PanX || im != tt.vp.PanY {
			t.Fatalf("MapPixelToPlane(centre of %dx%d, %+v) = (%v, %v), want (%v, %v)",
				tt.w, tt.h, tt.vp, re, im, tt.vp.PanX, tt.vp.PanY)
		}
	}
}

func TestMapPixelToPlaneAffine(t *testing.T) {
	vp := Viewport{Zoom: 0.01, PanX: -0.5, PanY: 0.25}
	const w, h = 200, 100

	re0, im0 := MapPixelToPlane(0, 0, vp, w, h)
	if !near(re0, -1.5) || !near(im0, -0.25) {
		t.Fatalf("MapPixelToPlane(0, 0) = (%v, %v), want (-1.5, -0.25)", re0, im0)
	}

	for _, px := range []int{1, 17, 199} {
		re, _ := MapPixelToPlane(px, 0, vp, w, h)
		if !near(re-re0, float64(px)*vp.Zoom) {
			t.Fatalf("MapPixelToPlane(%d, 0) step = %v, want %v", px, re-re0, float64(px)*vp.Zoom)
		}
	}
	for _, py := range []int{1, 42, 99} {
		_, im := MapPixelToPlane(0, py, vp, w, h)
		if !near(im-im0, float64(py)*vp.Zoom) {
			t.Fatalf("MapPixelToPlane(0, %d) step = %v, want %v", py, im-im0, float64(py)*vp.Zoom)
		}
	}
}

func TestViewportValid(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want bool
	}{
		{Viewport{Zoom: 0.004}, true},
		{Viewport{Zoom: math.SmallestNonzeroFloat64}, true},
		{Viewport{Zoom: 0}, false},
		{Viewport{Zoom: -0.1}, false},
		{Viewport{Zoom: math.Inf(1)}, false},
		{Viewport{Zoom: math.NaN()}, false},
		{Viewport{Zoom: 1, PanX: math.NaN()}, false},
		{Viewport{Zoom: 1, PanY: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		if got := tt.vp.Valid(); got != tt.want {
			t.Fatalf("%+v.Valid() = %v, want %v", tt.vp, got, tt.want)
		}
	}
}

func TestRegionViewportFitsFrame(t *testing.T) {
	for _, name := range RegionNames() {
		r, err := RegionByName(name)
		if err != nil {
			t.Fatalf("RegionByName(%q) error = %v", name, err)
		}
		const w, h = 640, 480
		vp := r.Viewport(w, h)
		if !vp.Valid() {
			t.Fatalf("%s viewport %+v is not valid", name, vp)
		}
		re0, im0 := MapPixelToPlane(0, 0, vp, w, h)
		re1, im1 := MapPixelToPlane(w, h, vp, w, h)
		const eps = 1e-12
		if re0 > r.Xmin+eps || re1 < r.Xmax-eps || im0 > r.Ymin+eps || im1 < r.Ymax-eps {
			t.Fatalf("%s: frame [%v,%v]x[%v,%v] does not cover %+v", name, re0, re1, im0, im1, r)
		}
	}
}

func TestRegionByNameUnknown(t *testing.T) {
	if _, err := RegionByName("atlantis"); err == nil {
		t.Fatal("expected error for unknown region")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}
