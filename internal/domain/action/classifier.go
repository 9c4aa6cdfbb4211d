// Package action classifies a frame's pose into a stroke or stance label
// via a deterministic rule cascade.
package action

import (
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/pose"
)

// Cascade thresholds.
const (
	serveWristY   = 0.3 // both wrists up and at least one this near the top
	wideStanceGap = 0.3
	lungeAnkleY   = 0.8
)

// Rule confidences, one per cascade branch.
const (
	serveConfidence    = 0.8
	forehandConfidence = 0.7
	backhandConfidence = 0.7
	lungeConfidence    = 0.6
	readyConfidence    = 0.5
	generalConfidence  = 0.3
)

// rule is one guarded branch of the cascade. First match wins; there is no
// backtracking.
type rule struct {
	match func(f pose.Features) bool
	label model.ActionLabel
}

// Classifier evaluates the rule cascade in priority order.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the cascade. Rules are ordered by priority, most
// specific first.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				match: func(f pose.Features) bool {
					return f.LeftWristHigh && f.RightWristHigh && f.HighestWristY < serveWristY
				},
				label: model.ActionLabel{Action: model.ActionServe, Confidence: serveConfidence},
			},
			{
				match: func(f pose.Features) bool { return f.RightWristHigh && !f.LeftWristHigh },
				label: model.ActionLabel{Action: model.ActionForehand, Confidence: forehandConfidence},
			},
			{
				match: func(f pose.Features) bool { return f.LeftWristHigh && !f.RightWristHigh },
				label: model.ActionLabel{Action: model.ActionBackhand, Confidence: backhandConfidence},
			},
			{
				match: func(f pose.Features) bool {
					return f.StanceWidth > wideStanceGap && f.LowestAnkleY > lungeAnkleY
				},
				label: model.ActionLabel{Action: model.ActionLunge, Confidence: lungeConfidence},
			},
			{
				match: func(f pose.Features) bool { return f.StanceWidth > wideStanceGap },
				label: model.ActionLabel{Action: model.ActionReadyPosition, Confidence: readyConfidence},
			},
		},
	}
}

// Classify returns the first matching label, general_movement when nothing
// matches, and none with zero confidence when no pose was detected.
func (c *Classifier) Classify(f pose.Features) model.ActionLabel {
	if !f.Detected {
		return model.ActionLabel{Action: model.ActionNone, Confidence: 0}
	}
	for _, r := range c.rules {
		if r.match(f) {
			return r.label
		}
	}
	return model.ActionLabel{Action: model.ActionGeneralMovement, Confidence: generalConfidence}
}
