// Package fusion combines all sub-scores into the single [0,10] final score.
//
// The operation order is load-bearing and must not be rearranged: the peak
// action score is derived first, then the weighted sum, then sport modifiers
// on the weighted contributions, then the additive bonuses, and the clamp is
// always the very last step.
package fusion

import (
	"github.com/jatinorwot/sports-rank/internal/domain/geom"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/profile"
)

// Peak action term weights.
const (
	peakAthleticWeight   = 0.2
	peakMotionWeight     = 0.3
	peakVelocityWeight   = 0.2
	peakSymmetryWeight   = 0.1
	peakConfidenceWeight = 0.2
	peakStrokeBoost      = 1.0
)

// Post-weighting bonuses.
const (
	detectionBonus = 1.0
	actionBonus    = 0.5
	maxScore       = 10.0
)

// Detections records which collaborators produced a detection for the frame.
type Detections struct {
	Pose bool
	Ball bool
}

// Engine fuses a frame's sub-scores under an immutable sport profile.
type Engine struct {
	profile *profile.Profile
}

// NewEngine creates a fusion engine bound to the given profile.
func NewEngine(p *profile.Profile) *Engine {
	return &Engine{profile: p}
}

// PeakAction computes the peak_action_score from the pose sub-scores and the
// classified action (step A).
func (e *Engine) PeakAction(scores model.ScoreVector, label model.ActionLabel) float64 {
	sum := scores.Get(model.MetricAthleticPose)*peakAthleticWeight +
		scores.Get(model.MetricMotionIntensity)*peakMotionWeight +
		scores.Get(model.MetricVelocityIndicator)*peakVelocityWeight +
		scores.Get(model.MetricSymmetryScore)*peakSymmetryWeight +
		label.Confidence*10*peakConfidenceWeight
	if label.Action.IsStroke() {
		sum += peakStrokeBoost
	}
	return geom.Clamp(sum, 0, maxScore)
}

// Fuse runs steps B through E: weighted sum over the fused metrics, sport
// modifiers on each weighted contribution, detection and action bonuses, and
// the final clamp. The vector must already carry peak_action_score.
func (e *Engine) Fuse(scores model.ScoreVector, label model.ActionLabel, det Detections) float64 {
	var total float64
	for _, m := range profile.FusedMetrics {
		contribution := e.profile.Weight(m) * scores.Get(m)
		total += contribution * e.profile.Modifier(m)
	}

	if det.Pose && det.Ball {
		total += detectionBonus
	}
	if label.Action.IsStroke() {
		total += actionBonus
	}

	return geom.Clamp(total, 0, maxScore)
}

// WeightedSum exposes the pre-bonus weighted total (steps B and C) for
// diagnostics and tests.
func (e *Engine) WeightedSum(scores model.ScoreVector) float64 {
	var total float64
	for _, m := range profile.FusedMetrics {
		total += e.profile.Weight(m) * scores.Get(m) * e.profile.Modifier(m)
	}
	return total
}
