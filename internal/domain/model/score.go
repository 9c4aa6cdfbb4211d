package model

import "math"

// Metric names the sub-scores that make up a ScoreVector. Every value is
// clamped to [0,10] on write.
type Metric string

// ScoreVector metric keys.
const (
	MetricPoseConfidence    Metric = "pose_confidence"
	MetricBodyExtension     Metric = "body_extension"
	MetricAthleticPose      Metric = "athletic_pose"
	MetricMotionIntensity   Metric = "motion_intensity"
	MetricBallInteraction   Metric = "ball_interaction"
	MetricOverallSharpness  Metric = "overall_sharpness"
	MetricSubjectSharpness  Metric = "subject_sharpness"
	MetricCompositionScore  Metric = "composition_score"
	MetricTechnicalQuality  Metric = "technical_quality"
	MetricPeakActionScore   Metric = "peak_action_score"
	MetricSymmetryScore     Metric = "symmetry_score"
	MetricVelocityIndicator Metric = "velocity_indicator"
	MetricOrientationScore  Metric = "orientation_score"
	MetricExposureScore     Metric = "exposure_score"
)

// Metrics lists every ScoreVector key in export order.
var Metrics = []Metric{
	MetricPoseConfidence,
	MetricBodyExtension,
	MetricAthleticPose,
	MetricMotionIntensity,
	MetricBallInteraction,
	MetricOverallSharpness,
	MetricSubjectSharpness,
	MetricCompositionScore,
	MetricTechnicalQuality,
	MetricPeakActionScore,
	MetricSymmetryScore,
	MetricVelocityIndicator,
	MetricOrientationScore,
}

// ScoreVector maps metric name to a score in [0,10].
type ScoreVector map[Metric]float64

// NewScoreVector returns a vector with every known metric at its floor.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, len(Metrics))
	for _, m := range Metrics {
		v[m] = 0
	}
	return v
}

// Set stores a metric value clamped to [0,10]. NaN collapses to the floor so
// a degenerate upstream computation can never poison the vector.
func (v ScoreVector) Set(m Metric, val float64) {
	if math.IsNaN(val) {
		val = 0
	}
	v[m] = math.Max(0, math.Min(10, val))
}

// Get returns the stored value, or 0 for an unset metric.
func (v ScoreVector) Get(m Metric) float64 {
	return v[m]
}

// Clone returns an independent copy of the vector.
func (v ScoreVector) Clone() ScoreVector {
	out := make(ScoreVector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
