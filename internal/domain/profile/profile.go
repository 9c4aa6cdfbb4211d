// Package profile holds the immutable sport scoring configuration: base
// weights over the top-level metrics and per-sport multipliers. A profile is
// validated once at startup and shared read-only across all scoring workers.
package profile

import (
	"fmt"
	"math"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// weightTolerance bounds the allowed drift of the base weight sum from 1.0.
const weightTolerance = 1e-9

// Sports the reference profiles cover.
const (
	SportPickleball = "pickleball"
	SportTennis     = "tennis"
	SportBadminton  = "badminton"
)

// FusedMetrics are the seven top-level metrics the fusion engine weighs.
var FusedMetrics = []model.Metric{
	model.MetricPeakActionScore,
	model.MetricBallInteraction,
	model.MetricMotionIntensity,
	model.MetricAthleticPose,
	model.MetricSubjectSharpness,
	model.MetricCompositionScore,
	model.MetricTechnicalQuality,
}

// Profile is the validated, immutable scoring configuration.
type Profile struct {
	// Sport selects which modifier set applies; empty means no modifiers.
	Sport string

	// BaseWeights maps each fused metric to its weight. Weights sum to 1.0.
	BaseWeights map[model.Metric]float64

	// Modifiers maps sport -> metric -> multiplier applied to that metric's
	// weighted contribution.
	Modifiers map[string]map[model.Metric]float64
}

// DefaultBaseWeights returns the stock weighting over the fused metrics.
func DefaultBaseWeights() map[model.Metric]float64 {
	return map[model.Metric]float64{
		model.MetricPeakActionScore:  0.35,
		model.MetricBallInteraction:  0.10,
		model.MetricMotionIntensity:  0.15,
		model.MetricAthleticPose:     0.10,
		model.MetricSubjectSharpness: 0.10,
		model.MetricCompositionScore: 0.10,
		model.MetricTechnicalQuality: 0.10,
	}
}

// DefaultModifiers returns the stock per-sport multiplier sets.
func DefaultModifiers() map[string]map[model.Metric]float64 {
	return map[string]map[model.Metric]float64{
		SportPickleball: {
			model.MetricBallInteraction: 1.3,
			model.MetricPeakActionScore: 1.1,
		},
		SportTennis: {
			model.MetricMotionIntensity: 1.2,
			model.MetricPeakActionScore: 1.15,
		},
		SportBadminton: {
			model.MetricMotionIntensity: 1.25,
			model.MetricBallInteraction: 1.15,
		},
	}
}

// New builds and validates a profile. An unknown sport name or a weight set
// that does not sum to 1.0 is a configuration error: the caller must treat
// it as fatal before any frame is scored.
func New(sport string, baseWeights map[model.Metric]float64, modifiers map[string]map[model.Metric]float64) (*Profile, error) {
	if baseWeights == nil {
		baseWeights = DefaultBaseWeights()
	}
	if modifiers == nil {
		modifiers = DefaultModifiers()
	}

	var sum float64
	for m, w := range baseWeights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %g for metric %q", ErrInvalidWeights, w, m)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, fmt.Errorf("%w: weights sum to %.12f, want 1.0", ErrInvalidWeights, sum)
	}

	if sport != "" {
		if _, ok := modifiers[sport]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
		}
	}
	for s, mods := range modifiers {
		for m, mult := range mods {
			if mult < 0 {
				return nil, fmt.Errorf("%w: negative modifier %g for %s/%s", ErrInvalidWeights, mult, s, m)
			}
		}
	}

	return &Profile{
		Sport:       sport,
		BaseWeights: cloneWeights(baseWeights),
		Modifiers:   cloneModifiers(modifiers),
	}, nil
}

// Weight returns the base weight for a metric, 0 if unlisted.
func (p *Profile) Weight(m model.Metric) float64 {
	return p.BaseWeights[m]
}

// Modifier returns the active sport's multiplier for a metric, 1.0 when the
// sport defines none.
func (p *Profile) Modifier(m model.Metric) float64 {
	if p.Sport == "" {
		return 1.0
	}
	if mult, ok := p.Modifiers[p.Sport][m]; ok {
		return mult
	}
	return 1.0
}

func cloneWeights(in map[model.Metric]float64) map[model.Metric]float64 {
	out := make(map[model.Metric]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneModifiers(in map[string]map[model.Metric]float64) map[string]map[model.Metric]float64 {
	out := make(map[string]map[model.Metric]float64, len(in))
	for s, mods := range in {
		out[s] = cloneWeights(mods)
	}
	return out
}
