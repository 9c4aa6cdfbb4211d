package pose_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/pose"
)

// uniformPose puts every landmark at (x, y) with the given visibility.
func uniformPose(x, y, vis float64) *model.PoseObservation {
	p := &model.PoseObservation{}
	for i := range p.Landmarks {
		p.Landmarks[i] = model.Landmark{X: x, Y: y, Visibility: vis}
	}
	return p
}

// standingPose is a plausible upright player used as a mutation base.
func standingPose() *model.PoseObservation {
	p := uniformPose(0.5, 0.5, 0.9)
	set := func(idx int, x, y float64) {
		p.Landmarks[idx] = model.Landmark{X: x, Y: y, Visibility: 0.9}
	}
	set(model.Nose, 0.50, 0.30)
	set(model.LeftShoulder, 0.45, 0.40)
	set(model.RightShoulder, 0.55, 0.40)
	set(model.LeftElbow, 0.42, 0.50)
	set(model.RightElbow, 0.58, 0.50)
	set(model.LeftWrist, 0.40, 0.60)
	set(model.RightWrist, 0.60, 0.60)
	set(model.LeftHip, 0.46, 0.62)
	set(model.RightHip, 0.54, 0.62)
	set(model.LeftKnee, 0.45, 0.78)
	set(model.RightKnee, 0.55, 0.78)
	set(model.LeftAnkle, 0.45, 0.92)
	set(model.RightAnkle, 0.55, 0.92)
	return p
}

func TestExtractAbsence(t *testing.T) {
	Convey("Given no detected pose", t, func() {
		e := pose.NewExtractor()
		f := e.Extract(nil)

		Convey("Then every feature is at its floor", func() {
			So(f.Detected, ShouldBeFalse)
			So(f.Confidence, ShouldEqual, 0)
			So(f.BodyExtension, ShouldEqual, 0)
			So(f.AthleticPose, ShouldEqual, 0)
			So(f.MotionIntensity, ShouldEqual, 0)
			So(f.Symmetry, ShouldEqual, 0)
			So(f.Velocity, ShouldEqual, 0)
			So(f.Orientation, ShouldEqual, 0)
		})
	})
}

func TestConfidence(t *testing.T) {
	Convey("Given uniform landmark visibility", t, func() {
		e := pose.NewExtractor()

		Convey("Confidence is the mean visibility scaled to [0,10]", func() {
			So(e.Extract(uniformPose(0.5, 0.5, 0.8)).Confidence, ShouldAlmostEqual, 8.0)
			So(e.Extract(uniformPose(0.5, 0.5, 0.0)).Confidence, ShouldEqual, 0)
			So(e.Extract(uniformPose(0.5, 0.5, 1.0)).Confidence, ShouldAlmostEqual, 10.0)
		})
	})
}

func TestPredicates(t *testing.T) {
	Convey("Given a standing pose", t, func() {
		e := pose.NewExtractor()
		p := standingPose()

		Convey("Neither wrist reads as high", func() {
			f := e.Extract(p)
			So(f.LeftWristHigh, ShouldBeFalse)
			So(f.RightWristHigh, ShouldBeFalse)
			So(f.HighestWristY, ShouldAlmostEqual, 0.60)
			So(f.StanceWidth, ShouldAlmostEqual, 0.10)
			So(f.LowestAnkleY, ShouldAlmostEqual, 0.92)
		})

		Convey("Raising the right wrist above the shoulder flips the predicate", func() {
			p.Landmarks[model.RightWrist] = model.Landmark{X: 0.65, Y: 0.25, Visibility: 0.9}
			f := e.Extract(p)
			So(f.RightWristHigh, ShouldBeTrue)
			So(f.LeftWristHigh, ShouldBeFalse)
			So(f.HighestWristY, ShouldAlmostEqual, 0.25)
		})
	})
}

func TestSymmetry(t *testing.T) {
	Convey("Given mirror symmetry around the vertical centerline", t, func() {
		e := pose.NewExtractor()
		p := standingPose()

		Convey("A perfectly mirrored pose scores near zero deviation", func() {
			// standingPose is built mirrored: left x = 1 - right x, equal y.
			So(e.Extract(p).Symmetry, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Breaking the mirror raises the score", func() {
			p.Landmarks[model.LeftWrist] = model.Landmark{X: 0.10, Y: 0.20, Visibility: 0.9}
			So(e.Extract(p).Symmetry, ShouldBeGreaterThan, 0.5)
		})
	})
}

func TestAthleticPose(t *testing.T) {
	Convey("Given stance variations", t, func() {
		e := pose.NewExtractor()

		Convey("A wider stance scores higher", func() {
			narrow := standingPose()
			wide := standingPose()
			wide.Landmarks[model.LeftAnkle] = model.Landmark{X: 0.25, Y: 0.92, Visibility: 0.9}
			wide.Landmarks[model.RightAnkle] = model.Landmark{X: 0.75, Y: 0.92, Visibility: 0.9}

			So(e.Extract(wide).AthleticPose, ShouldBeGreaterThan, e.Extract(narrow).AthleticPose)
		})

		Convey("The score never exceeds 10", func() {
			p := standingPose()
			// Exaggerated shoulder and hip tilt drives the uncapped dynamic term.
			p.Landmarks[model.LeftShoulder] = model.Landmark{X: 0.45, Y: 0.10, Visibility: 0.9}
			p.Landmarks[model.RightShoulder] = model.Landmark{X: 0.55, Y: 0.80, Visibility: 0.9}
			p.Landmarks[model.LeftHip] = model.Landmark{X: 0.46, Y: 0.20, Visibility: 0.9}
			p.Landmarks[model.RightHip] = model.Landmark{X: 0.54, Y: 0.95, Visibility: 0.9}

			So(e.Extract(p).AthleticPose, ShouldBeLessThanOrEqualTo, 10.0)
		})
	})
}

func TestMotionIntensity(t *testing.T) {
	Convey("Given arm positions", t, func() {
		e := pose.NewExtractor()

		Convey("A raised wrist earns the wrist-height award", func() {
			base := standingPose()
			raised := standingPose()
			raised.Landmarks[model.RightWrist] = model.Landmark{X: 0.60, Y: 0.20, Visibility: 0.9}
			// Keep the arm bent so only the wrist-height term changes.
			raised.Landmarks[model.RightElbow] = model.Landmark{X: 0.70, Y: 0.45, Visibility: 0.9}

			So(e.Extract(raised).MotionIntensity, ShouldBeGreaterThan, e.Extract(base).MotionIntensity)
		})
	})
}

func TestVelocityAndOrientation(t *testing.T) {
	Convey("Given visibility patterns", t, func() {
		e := pose.NewExtractor()

		Convey("Uniform visibility carries no velocity signal", func() {
			f := e.Extract(standingPose())
			So(f.Velocity, ShouldBeLessThan, 1.0)
		})

		Convey("An extreme wrist position adds to velocity", func() {
			p := standingPose()
			p.Landmarks[model.RightWrist] = model.Landmark{X: 0.60, Y: 0.10, Visibility: 0.9}
			So(e.Extract(p).Velocity, ShouldBeGreaterThanOrEqualTo, 2.0)
		})

		Convey("Orientation weighs shoulders over the nose", func() {
			f := e.Extract(uniformPose(0.5, 0.5, 1.0))
			So(f.Orientation, ShouldAlmostEqual, 10.0)
		})
	})
}
