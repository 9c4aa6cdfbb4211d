// Package quality turns externally computed pixel statistics into the
// sharpness, composition, and technical sub-scores.
package quality

import (
	"github.com/jatinorwot/sports-rank/internal/domain/geom"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// Threshold tiers shared by the composition sub-scores: a strong placement
// earns the high tier, an acceptable one the middle tier, anything else the
// low tier. Missing inputs default to neutral so a frame without a detected
// player box is not unfairly penalized.
const (
	tierHigh    = 9.0
	tierMid     = 7.0
	tierLow     = 5.0
	tierNeutral = 6.0
)

// Sharpness, exposure, and contrast constants.
const (
	sharpnessDivisor = 100.0
	contrastDivisor  = 5.0
	maxScore         = 10.0

	exposureGood    = 9.0
	exposureOK      = 6.0
	exposurePoor    = 3.0
	luminanceGoodLo = 40.0
	luminanceGoodHi = 200.0
	luminanceOKLo   = 20.0
	luminanceOKHi   = 230.0
)

// Framing thresholds.
const (
	framingEdgePenalty = 4.0
	framingAreaLo      = 0.08
	framingAreaHi      = 0.6
)

// Rule-of-thirds and action-space thresholds, in normalized image units.
const (
	thirdsNear   = 0.1
	thirdsOK     = 0.2
	actionRoomy  = 0.3
	actionEnough = 0.15
)

// Scores carries the quality analyzer's outputs. Exposure and contrast are
// intermediate values folded into TechnicalQuality but kept visible for
// diagnostics.
type Scores struct {
	OverallSharpness float64
	SubjectSharpness float64
	Composition      float64
	Exposure         float64
	Contrast         float64
	TechnicalQuality float64
}

// Analyzer converts QualitySignals into quality sub-scores. Stateless.
type Analyzer struct{}

// NewAnalyzer creates a quality analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes every quality sub-score from the supplied signals.
func (a *Analyzer) Analyze(q model.QualitySignals) Scores {
	s := Scores{
		OverallSharpness: geom.Clamp(q.OverallVariance/sharpnessDivisor, 0, maxScore),
		SubjectSharpness: geom.Clamp(q.SubjectVariance/sharpnessDivisor, 0, maxScore),
		Exposure:         exposureScore(q.MeanLuminance),
		Contrast:         geom.Clamp(q.LuminanceStdDev/contrastDivisor, 0, maxScore),
	}

	s.Composition = geom.Mean([]float64{
		framingScore(q.Framing),
		thirdsScore(q.Composition),
		actionSpaceScore(q.Composition),
		optionalScore(q.Composition, func(c *model.CompositionGeometry) *float64 { return c.Diagonal }),
		optionalScore(q.Composition, func(c *model.CompositionGeometry) *float64 { return c.NegativeSpace }),
	})
	s.TechnicalQuality = geom.Mean([]float64{s.SubjectSharpness, s.Exposure, s.Contrast})
	return s
}

func exposureScore(mean float64) float64 {
	switch {
	case mean > luminanceGoodLo && mean < luminanceGoodHi:
		return exposureGood
	case mean > luminanceOKLo && mean < luminanceOKHi:
		return exposureOK
	default:
		return exposurePoor
	}
}

// framingScore penalizes a subject box cut off by the frame edges and
// rewards a box occupying a healthy share of the image.
func framingScore(f *model.FramingGeometry) float64 {
	if f == nil {
		return tierNeutral
	}
	if f.TouchingEdges > 0 {
		return framingEdgePenalty
	}
	if f.AreaRatio > framingAreaLo && f.AreaRatio < framingAreaHi {
		return tierHigh
	}
	return tierNeutral
}

// thirdsScore tiers on the distance from the subject to the nearest of the
// four rule-of-thirds power points.
func thirdsScore(c *model.CompositionGeometry) float64 {
	if c == nil {
		return tierNeutral
	}
	switch {
	case c.ThirdsDistance < thirdsNear:
		return tierHigh
	case c.ThirdsDistance < thirdsOK:
		return tierMid
	default:
		return tierLow
	}
}

// actionSpaceScore tiers on the margin left in the subject's facing
// direction.
func actionSpaceScore(c *model.CompositionGeometry) float64 {
	if c == nil {
		return tierNeutral
	}
	switch {
	case c.ActionMargin > actionRoomy:
		return tierHigh
	case c.ActionMargin > actionEnough:
		return tierMid
	default:
		return tierLow
	}
}

// optionalScore reads a pre-computed sub-score supplied by the collaborator,
// falling back to the neutral tier when absent.
func optionalScore(c *model.CompositionGeometry, pick func(*model.CompositionGeometry) *float64) float64 {
	if c == nil {
		return tierNeutral
	}
	if v := pick(c); v != nil {
		return geom.Clamp(*v, 0, maxScore)
	}
	return tierNeutral
}
