package mandel

import (
	"fmt"
	"math"
	"sort"
)

// Region is a rectangle on the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic landmarks in the Mandelbrot set.
var (
	// Seahorse Valley: dense filaments and repeating "seahorse" curls.
	SeahorseValley = Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15}

	// Elephant Valley: large bulb with trunk-like tendrils.
	ElephantValley = Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02}

	// Spiral Minibrot: small copy of the set with tight spiral arms.
	SpiralMinibrot = Region{Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325}

	TripleSpiral = Region{Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980}

	ValleyOfTheDragon = Region{Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850}

	MinibrotInMiniSpiral = Region{Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220}
)

var regions = map[string]Region{
	"seahorse":      SeahorseValley,
	"elephant":      ElephantValley,
	"spiral":        SpiralMinibrot,
	"triple-spiral": TripleSpiral,
	"dragon":        ValleyOfTheDragon,
	"mini-spiral":   MinibrotInMiniSpiral,
}

// RegionByName looks up a landmark by its flag name.
func RegionByName(name string) (Region, error) {
	r, ok := regions[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (have %v)", name, RegionNames())
	}
	return r, nil
}

// RegionNames returns the known landmark names, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Viewport returns the viewport that centres r and fits it in a
// width x height frame.
func (r Region) Viewport(width, height int) Viewport {
	if width <= 0 || height <= 0 {
		return Viewport{}
	}
	zoom := math.Max((r.Xmax-r.Xmin)/float64(width), (r.Ymax-r.Ymin)/float64(height))
	return Viewport{
		Zoom: zoom,
		PanX: (r.Xmin + r.Xmax) / 2,
		PanY: (r.Ymin + r.Ymax) / 2,
	}
}
