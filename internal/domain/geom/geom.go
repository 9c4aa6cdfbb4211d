// Package geom provides the pure geometric primitives the pose and ball
// scorers are built on. Every function clamps degenerate input (coincident
// points, zero-length segments) to the nearest valid bound instead of
// returning NaN or Inf.
package geom

import (
	"math"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// Distance2D returns the Euclidean distance between two landmarks in the
// image plane.
func Distance2D(a, b model.Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance3D returns the Euclidean distance between two landmarks including
// the depth axis.
func Distance3D(a, b model.Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceToPoint returns the planar distance from a landmark to an (x, y)
// point in normalized coordinates.
func DistanceToPoint(a model.Landmark, x, y float64) float64 {
	dx := a.X - x
	dy := a.Y - y
	return math.Sqrt(dx*dx + dy*dy)
}

// JointAngle returns the angle at joint b formed by the segments b->a and
// b->c, in degrees within [0,180]. Coincident points collapse a segment to
// zero length; the angle is clamped to 0 in that case.
func JointAngle(a, b, c model.Landmark) float64 {
	abx, aby := a.X-b.X, a.Y-b.Y
	cbx, cby := c.X-b.X, c.Y-b.Y

	lenAB := math.Sqrt(abx*abx + aby*aby)
	lenCB := math.Sqrt(cbx*cbx + cby*cby)
	if lenAB == 0 || lenCB == 0 {
		return 0
	}

	cos := (abx*cbx + aby*cby) / (lenAB * lenCB)
	// Floating error can push the cosine a hair outside [-1,1].
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// LineAngle returns the angle of the line from a to b in radians, measured
// against the image x axis. Coincident points yield 0.
func LineAngle(a, b model.Landmark) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// Spread3D returns the magnitude of the per-axis standard deviation of the
// given landmarks: sqrt(sd_x^2 + sd_y^2 + sd_z^2).
func Spread3D(points []model.Landmark) float64 {
	n := float64(len(points))
	if n == 0 {
		return 0
	}

	var mx, my, mz float64
	for _, p := range points {
		mx += p.X
		my += p.Y
		mz += p.Z
	}
	mx /= n
	my /= n
	mz /= n

	var vx, vy, vz float64
	for _, p := range points {
		vx += (p.X - mx) * (p.X - mx)
		vy += (p.Y - my) * (p.Y - my)
		vz += (p.Z - mz) * (p.Z - mz)
	}
	return math.Sqrt(vx/n + vy/n + vz/n)
}

// Variance returns the population variance of the values.
func Variance(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= n
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return sum / n
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Clamp limits v to [lo, hi]. NaN clamps to lo so degenerate ratios never
// propagate into scores.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
