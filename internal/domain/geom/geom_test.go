package geom_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/domain/geom"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

func TestDistances(t *testing.T) {
	Convey("Given landmark pairs", t, func() {
		a := model.Landmark{X: 0, Y: 0, Z: 0}
		b := model.Landmark{X: 3, Y: 4, Z: 0}

		Convey("Distance2D follows the planar Euclidean metric", func() {
			So(geom.Distance2D(a, b), ShouldAlmostEqual, 5.0)
			So(geom.Distance2D(a, a), ShouldEqual, 0)
		})

		Convey("Distance3D includes the depth axis", func() {
			c := model.Landmark{X: 0, Y: 0, Z: 12}
			So(geom.Distance3D(b, c), ShouldAlmostEqual, 13.0)
		})

		Convey("DistanceToPoint measures against raw coordinates", func() {
			So(geom.DistanceToPoint(b, 0, 0), ShouldAlmostEqual, 5.0)
		})
	})
}

func TestJointAngle(t *testing.T) {
	Convey("Given three landmarks forming a joint", t, func() {
		Convey("A straight line yields 180 degrees", func() {
			a := model.Landmark{X: 0, Y: 0}
			b := model.Landmark{X: 1, Y: 0}
			c := model.Landmark{X: 2, Y: 0}
			So(geom.JointAngle(a, b, c), ShouldAlmostEqual, 180.0, 1e-9)
		})

		Convey("A right angle yields 90 degrees", func() {
			a := model.Landmark{X: 0, Y: 1}
			b := model.Landmark{X: 0, Y: 0}
			c := model.Landmark{X: 1, Y: 0}
			So(geom.JointAngle(a, b, c), ShouldAlmostEqual, 90.0, 1e-9)
		})

		Convey("Coincident points collapse to 0 instead of NaN", func() {
			p := model.Landmark{X: 0.5, Y: 0.5}
			angle := geom.JointAngle(p, p, p)
			So(angle, ShouldEqual, 0)
			So(math.IsNaN(angle), ShouldBeFalse)
		})
	})
}

func TestLineAngle(t *testing.T) {
	Convey("Given two landmarks", t, func() {
		Convey("A horizontal line yields 0", func() {
			a := model.Landmark{X: 0, Y: 0.5}
			b := model.Landmark{X: 1, Y: 0.5}
			So(geom.LineAngle(a, b), ShouldAlmostEqual, 0)
		})

		Convey("A vertical line yields pi/2", func() {
			a := model.Landmark{X: 0.5, Y: 0}
			b := model.Landmark{X: 0.5, Y: 1}
			So(geom.LineAngle(a, b), ShouldAlmostEqual, math.Pi/2)
		})

		Convey("Coincident points yield 0", func() {
			p := model.Landmark{X: 0.3, Y: 0.3}
			So(geom.LineAngle(p, p), ShouldEqual, 0)
		})
	})
}

func TestSpreadAndVariance(t *testing.T) {
	Convey("Given point collections", t, func() {
		Convey("Spread3D of identical points is 0", func() {
			points := []model.Landmark{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}
			So(geom.Spread3D(points), ShouldEqual, 0)
		})

		Convey("Spread3D of an empty slice is 0", func() {
			So(geom.Spread3D(nil), ShouldEqual, 0)
		})

		Convey("Spread3D grows with dispersion", func() {
			tight := []model.Landmark{{X: 0.49}, {X: 0.51}}
			wide := []model.Landmark{{X: 0.1}, {X: 0.9}}
			So(geom.Spread3D(wide), ShouldBeGreaterThan, geom.Spread3D(tight))
		})

		Convey("Variance matches the population formula", func() {
			So(geom.Variance([]float64{2, 4, 4, 4, 5, 5, 7, 9}), ShouldAlmostEqual, 4.0)
			So(geom.Variance(nil), ShouldEqual, 0)
		})

		Convey("Mean handles the empty slice", func() {
			So(geom.Mean([]float64{1, 2, 3}), ShouldAlmostEqual, 2.0)
			So(geom.Mean(nil), ShouldEqual, 0)
		})
	})
}

func TestClamp(t *testing.T) {
	Convey("Given values to clamp", t, func() {
		So(geom.Clamp(5, 0, 10), ShouldEqual, 5)
		So(geom.Clamp(-1, 0, 10), ShouldEqual, 0)
		So(geom.Clamp(11, 0, 10), ShouldEqual, 10)

		Convey("NaN clamps to the lower bound", func() {
			So(geom.Clamp(math.NaN(), 0, 10), ShouldEqual, 0)
		})
	})
}
