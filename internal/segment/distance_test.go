package segment

import (
	"math"
	"testing"

	"cytoseg/pkg/grid"
)

func TestDistanceTransformSquare(t *testing.T) {
	// 15×15 foreground square centered in a 21×21 grid.
	mask := grid.NewBitmap(21, 21)
	for y := 3; y <= 17; y++ {
		for x := 3; x <= 17; x++ {
			mask.Set(x, y, true)
		}
	}

	dist := DistanceTransform(mask)

	// Background stays 0; foreground border row is exactly 1.
	if got := dist.Get(0, 0); got != 0 {
		t.Errorf("background distance: got %v, want 0", got)
	}
	if got := dist.Get(3, 10); got != 1 {
		t.Errorf("border foreground distance: got %v, want 1", got)
	}

	// Maximum at the center.
	center := dist.Get(10, 10)
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			if dist.Get(x, y) > center {
				t.Fatalf("distance at (%d,%d)=%v exceeds center %v", x, y, dist.Get(x, y), center)
			}
		}
	}
	if center != 8 {
		t.Errorf("center distance: got %v, want 8", center)
	}

	// Monotone decrease walking from the center toward each edge.
	for x := 10; x < 17; x++ {
		if dist.Get(x+1, 10) >= dist.Get(x, 10) {
			t.Fatalf("distance not decreasing rightward at x=%d", x)
		}
	}
	for y := 10; y < 17; y++ {
		if dist.Get(10, y+1) >= dist.Get(10, y) {
			t.Fatalf("distance not decreasing downward at y=%d", y)
		}
	}
}

func TestDistanceTransformSinglePixel(t *testing.T) {
	mask := grid.NewBitmap(5, 5)
	mask.Set(2, 2, true)

	dist := DistanceTransform(mask)
	if got := dist.Get(2, 2); got != 1 {
		t.Errorf("isolated pixel distance: got %v, want 1", got)
	}
}

func TestSmoothDistancesPreservesFlatField(t *testing.T) {
	dist := grid.NewDistMap(7, 7)
	for i := range dist.Dist {
		dist.Dist[i] = 3.5
	}

	smoothed := SmoothDistances(dist)
	for i, v := range smoothed.Dist {
		if math.Abs(v-3.5) > 1e-9 {
			t.Fatalf("flat field changed at %d: got %v", i, v)
		}
	}
}

func TestSmoothDistancesSuppressesSpike(t *testing.T) {
	dist := grid.NewDistMap(5, 5)
	dist.Set(2, 2, 16)

	smoothed := SmoothDistances(dist)
	if got := smoothed.Get(2, 2); got != 4 {
		t.Errorf("spike center: got %v, want 4", got)
	}
	if got := smoothed.Get(2, 1); got != 2 {
		t.Errorf("spike axis neighbor: got %v, want 2", got)
	}
	if got := smoothed.Get(1, 1); got != 1 {
		t.Errorf("spike diagonal neighbor: got %v, want 1", got)
	}
}
