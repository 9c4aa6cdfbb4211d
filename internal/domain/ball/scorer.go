// Package ball scores how strongly a frame's ball detection interacts with
// the player's pose.
package ball

import (
	"math"

	"github.com/jatinorwot/sports-rank/internal/domain/geom"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// Interaction scoring constants.
const (
	proximityScale   = 8.0
	heightBonusScale = 2.0
	motionBonusCap   = 1.0
	strokeBonus      = 2.0
	strokeBonusDist  = 0.3
	volleyBonus      = 1.5
	volleyBallY      = 0.5
	maxScore         = 10.0
	tipExtension     = 0.5 // fraction of the elbow->wrist segment past the wrist
)

// Scorer computes the [0,10] ball interaction sub-score. Stateless.
type Scorer struct{}

// NewScorer creates a ball interaction scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score combines ball proximity to the hands, ball height, motion blur, and
// the classified action. A nil ball means no detection: the score is 0 and
// no distance is evaluated.
func (s *Scorer) Score(p *model.PoseObservation, b *model.BallObservation, label model.ActionLabel) float64 {
	if b == nil {
		return 0
	}

	minDist := s.minContactDistance(p, b)

	proximity := math.Max(0, (1-minDist)*proximityScale)
	heightBonus := (1 - b.Box.CY) * heightBonusScale
	motionBonus := geom.Clamp((10-b.EstimatedBlur/10)*0.5, 0, motionBonusCap)

	var actionBonus float64
	switch {
	case label.Action.IsStroke() && minDist < strokeBonusDist:
		actionBonus = strokeBonus
	case label.Action == model.ActionVolley && b.Box.CY < volleyBallY:
		actionBonus = volleyBonus
	}

	return geom.Clamp(proximity+heightBonus+motionBonus+actionBonus, 0, maxScore)
}

// minContactDistance is the minimum planar distance from the ball center to
// the four contact candidates: each wrist and each estimated equipment tip
// (the wrist extrapolated half an elbow->wrist segment further). Without a
// pose there is no candidate; the distance saturates at 1 so proximity
// bottoms out at 0 rather than going undefined.
func (s *Scorer) minContactDistance(p *model.PoseObservation, b *model.BallObservation) float64 {
	if p == nil {
		return 1
	}

	lm := p.Landmarks
	candidates := []model.Landmark{
		lm[model.LeftWrist],
		lm[model.RightWrist],
		equipmentTip(lm[model.LeftElbow], lm[model.LeftWrist]),
		equipmentTip(lm[model.RightElbow], lm[model.RightWrist]),
	}

	minDist := math.Inf(1)
	for _, c := range candidates {
		d := geom.DistanceToPoint(c, b.Box.CX, b.Box.CY)
		if d < minDist {
			minDist = d
		}
	}
	return geom.Clamp(minDist, 0, 1)
}

// equipmentTip extends the forearm direction past the wrist to approximate
// where a racket or paddle head sits. Coincident elbow and wrist collapse to
// the wrist itself.
func equipmentTip(elbow, wrist model.Landmark) model.Landmark {
	return model.Landmark{
		X: wrist.X + (wrist.X-elbow.X)*tipExtension,
		Y: wrist.Y + (wrist.Y-elbow.Y)*tipExtension,
	}
}
