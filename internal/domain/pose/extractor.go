// Package pose converts a landmark set into normalized [0,10] pose
// sub-scores plus the raw stance predicates the action classifier consumes.
package pose

import (
	"math"

	"github.com/jatinorwot/sports-rank/internal/domain/geom"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// Scoring constants for the pose sub-score formulas.
const (
	kneeBendMinDeg    = 120.0
	kneeBendMaxDeg    = 170.0
	kneeBendAward     = 3.0
	stanceCap         = 3.0
	leanCap           = 2.0
	wristHeightAward  = 4.0
	armExtensionDeg   = 150.0
	armExtensionAward = 3.0
	extremeWristY     = 0.2 // wrist this close to the top edge counts as extreme
	extremeAnkleGap   = 0.4 // ankle spread beyond this counts as extreme
	maxSubScore       = 10.0
)

// mirrored landmark pairs used by the symmetry formula.
var symmetryPairs = [][2]int{
	{model.LeftShoulder, model.RightShoulder},
	{model.LeftElbow, model.RightElbow},
	{model.LeftWrist, model.RightWrist},
	{model.LeftHip, model.RightHip},
	{model.LeftKnee, model.RightKnee},
	{model.LeftAnkle, model.RightAnkle},
}

// Features carries the pose sub-scores plus the raw geometric predicates
// downstream components reuse. When Detected is false every score is at its
// floor and no predicate is meaningful.
type Features struct {
	Detected bool

	Confidence      float64
	BodyExtension   float64
	AthleticPose    float64
	MotionIntensity float64
	Symmetry        float64
	Velocity        float64
	Orientation     float64

	// Raw predicates for the action classifier.
	LeftWristHigh  bool    // left wrist above left shoulder
	RightWristHigh bool    // right wrist above right shoulder
	HighestWristY  float64 // smaller is higher in image coordinates
	StanceWidth    float64 // |ankle x spread|
	LowestAnkleY   float64
}

// Extractor computes pose features. It is stateless and safe for concurrent
// use.
type Extractor struct{}

// NewExtractor creates a pose feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract computes all pose sub-scores for one observation. A nil pose
// yields the documented floor: confidence 0 and every dependent sub-score 0,
// with none of the geometric formulas evaluated.
func (e *Extractor) Extract(p *model.PoseObservation) Features {
	if p == nil {
		return Features{}
	}

	lm := p.Landmarks
	f := Features{Detected: true}

	f.Confidence = e.confidence(lm)
	f.BodyExtension = e.bodyExtension(lm)
	f.AthleticPose = e.athleticPose(lm)
	f.MotionIntensity = e.motionIntensity(lm)
	f.Symmetry = e.symmetry(lm)
	f.Velocity = e.velocity(lm)
	f.Orientation = e.orientation(lm)

	f.LeftWristHigh = lm[model.LeftWrist].Y < lm[model.LeftShoulder].Y
	f.RightWristHigh = lm[model.RightWrist].Y < lm[model.RightShoulder].Y
	f.HighestWristY = min(lm[model.LeftWrist].Y, lm[model.RightWrist].Y)
	f.StanceWidth = math.Abs(lm[model.LeftAnkle].X - lm[model.RightAnkle].X)
	f.LowestAnkleY = max(lm[model.LeftAnkle].Y, lm[model.RightAnkle].Y)

	return f
}

// confidence is the mean landmark visibility scaled to [0,10].
func (e *Extractor) confidence(lm [model.LandmarkCount]model.Landmark) float64 {
	var sum float64
	for i := range lm {
		sum += lm[i].Visibility
	}
	return geom.Clamp(sum/model.LandmarkCount*10, 0, maxSubScore)
}

// bodyExtension combines the 3D spread of all landmarks with the longest of
// the four named limb segments.
func (e *Extractor) bodyExtension(lm [model.LandmarkCount]model.Landmark) float64 {
	spread := geom.Spread3D(lm[:])

	limbs := []float64{
		geom.Distance3D(lm[model.LeftShoulder], lm[model.LeftWrist]),
		geom.Distance3D(lm[model.RightShoulder], lm[model.RightWrist]),
		geom.Distance3D(lm[model.LeftHip], lm[model.LeftAnkle]),
		geom.Distance3D(lm[model.RightHip], lm[model.RightAnkle]),
	}
	maxLimb := limbs[0]
	for _, l := range limbs[1:] {
		if l > maxLimb {
			maxLimb = l
		}
	}

	return geom.Clamp(spread*5+maxLimb*5, 0, maxSubScore)
}

// athleticPose rewards bent knees, a wide stance, forward lean, and
// shoulder/hip height asymmetry. The dynamic term is deliberately uncapped
// before the outer clamp.
func (e *Extractor) athleticPose(lm [model.LandmarkCount]model.Landmark) float64 {
	var kneeBend float64
	left := geom.JointAngle(lm[model.LeftHip], lm[model.LeftKnee], lm[model.LeftAnkle])
	right := geom.JointAngle(lm[model.RightHip], lm[model.RightKnee], lm[model.RightAnkle])
	if (left > kneeBendMinDeg && left < kneeBendMaxDeg) || (right > kneeBendMinDeg && right < kneeBendMaxDeg) {
		kneeBend = kneeBendAward
	}

	stance := geom.Clamp(math.Abs(lm[model.LeftAnkle].X-lm[model.RightAnkle].X)*10, 0, stanceCap)

	hipCenterY := (lm[model.LeftHip].Y + lm[model.RightHip].Y) / 2
	lean := geom.Clamp(math.Abs(lm[model.Nose].Y-hipCenterY)*5, 0, leanCap)

	dynamic := (math.Abs(lm[model.LeftShoulder].Y-lm[model.RightShoulder].Y) +
		math.Abs(lm[model.LeftHip].Y-lm[model.RightHip].Y)) * 10

	return geom.Clamp(kneeBend+stance+lean+dynamic, 0, maxSubScore)
}

// motionIntensity combines raised wrists, extended arms, torso rotation, and
// feet movement.
func (e *Extractor) motionIntensity(lm [model.LandmarkCount]model.Landmark) float64 {
	shoulderMeanY := (lm[model.LeftShoulder].Y + lm[model.RightShoulder].Y) / 2

	var wristHeight float64
	if lm[model.LeftWrist].Y < shoulderMeanY || lm[model.RightWrist].Y < shoulderMeanY {
		wristHeight = wristHeightAward
	}

	var armExtension float64
	leftArm := geom.JointAngle(lm[model.LeftShoulder], lm[model.LeftElbow], lm[model.LeftWrist])
	rightArm := geom.JointAngle(lm[model.RightShoulder], lm[model.RightElbow], lm[model.RightWrist])
	if leftArm > armExtensionDeg || rightArm > armExtensionDeg {
		armExtension = armExtensionAward
	}

	shoulderLine := geom.LineAngle(lm[model.LeftShoulder], lm[model.RightShoulder])
	hipLine := geom.LineAngle(lm[model.LeftHip], lm[model.RightHip])
	rotation := math.Abs(shoulderLine-hipLine) * 10

	feetSpread := math.Abs(lm[model.LeftAnkle].X - lm[model.RightAnkle].X)
	hipCenterY := (lm[model.LeftHip].Y + lm[model.RightHip].Y) / 2
	minAnkleY := min(lm[model.LeftAnkle].Y, lm[model.RightAnkle].Y)
	// A foot above hip level means a jump or kick; image y grows downward.
	feetMovement := feetSpread*5 + max(0, hipCenterY-minAnkleY)*10

	return geom.Clamp(wristHeight+armExtension+rotation+feetMovement, 0, maxSubScore)
}

// symmetry sums mirror deviation over the paired landmarks. The x term
// compares left against the horizontally mirrored right side.
func (e *Extractor) symmetry(lm [model.LandmarkCount]model.Landmark) float64 {
	var sum float64
	for _, pair := range symmetryPairs {
		l, r := lm[pair[0]], lm[pair[1]]
		sum += math.Abs(l.X-(1-r.X)) + math.Abs(l.Y-r.Y)
	}
	return geom.Clamp(sum*2, 0, maxSubScore)
}

// velocity approximates motion from visibility variance (motion blur lowers
// per-landmark visibility unevenly) plus a count of extreme positions.
func (e *Extractor) velocity(lm [model.LandmarkCount]model.Landmark) float64 {
	vis := make([]float64, model.LandmarkCount)
	for i := range lm {
		vis[i] = lm[i].Visibility
	}
	visVar := geom.Variance(vis)

	extremes := 0
	if lm[model.LeftWrist].Y < extremeWristY || lm[model.RightWrist].Y < extremeWristY {
		extremes++
	}
	if math.Abs(lm[model.LeftAnkle].X-lm[model.RightAnkle].X) > extremeAnkleGap {
		extremes++
	}

	return geom.Clamp(visVar*20+float64(extremes)*2, 0, maxSubScore)
}

// orientation weighs shoulder visibility over nose visibility; both bounded
// by construction so no cap is needed beyond the defensive clamp in Set.
func (e *Extractor) orientation(lm [model.LandmarkCount]model.Landmark) float64 {
	shoulderVis := (lm[model.LeftShoulder].Visibility + lm[model.RightShoulder].Visibility) / 2
	return shoulderVis*7 + lm[model.Nose].Visibility*3
}
