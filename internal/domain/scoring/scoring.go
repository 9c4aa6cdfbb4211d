// Package scoring composes the per-frame pipeline: pose features, action
// classification, ball interaction, image quality, and score fusion.
//
// Scoring a frame is a pure function of that frame's observation and the
// shared immutable sport profile, so any number of workers may score frames
// concurrently with no synchronization.
package scoring

import (
	"context"
	"fmt"

	"github.com/jatinorwot/sports-rank/internal/domain/action"
	"github.com/jatinorwot/sports-rank/internal/domain/ball"
	"github.com/jatinorwot/sports-rank/internal/domain/fusion"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/pose"
	"github.com/jatinorwot/sports-rank/internal/domain/profile"
	"github.com/jatinorwot/sports-rank/internal/domain/quality"
)

// Scorer turns one frame observation into an immutable frame result.
type Scorer interface {
	// Score computes the frame's score vector, action label, and final
	// score, honoring ctx for cancellation.
	Score(ctx context.Context, obs model.FrameObservation) (model.FrameResult, error)
}

// Pipeline implements Scorer with the full feature-to-score cascade.
type Pipeline struct {
	extractor  *pose.Extractor
	classifier *action.Classifier
	ball       *ball.Scorer
	quality    *quality.Analyzer
	fusion     *fusion.Engine
}

// NewPipeline builds a scoring pipeline bound to the given profile.
func NewPipeline(p *profile.Profile) *Pipeline {
	return &Pipeline{
		extractor:  pose.NewExtractor(),
		classifier: action.NewClassifier(),
		ball:       ball.NewScorer(),
		quality:    quality.NewAnalyzer(),
		fusion:     fusion.NewEngine(p),
	}
}

// Score computes the frame result. A frame that failed ingest degrades to
// the all-floor result rather than failing: it still participates in ranking
// and sorts last.
func (p *Pipeline) Score(ctx context.Context, obs model.FrameObservation) (model.FrameResult, error) {
	select {
	case <-ctx.Done():
		return model.FrameResult{}, fmt.Errorf("scoring cancelled: %w", ctx.Err())
	default:
	}

	if obs.IngestError != "" {
		return floorResult(obs), nil
	}

	scores := model.NewScoreVector()

	feats := p.extractor.Extract(obs.Pose)
	scores.Set(model.MetricPoseConfidence, feats.Confidence)
	scores.Set(model.MetricBodyExtension, feats.BodyExtension)
	scores.Set(model.MetricAthleticPose, feats.AthleticPose)
	scores.Set(model.MetricMotionIntensity, feats.MotionIntensity)
	scores.Set(model.MetricSymmetryScore, feats.Symmetry)
	scores.Set(model.MetricVelocityIndicator, feats.Velocity)
	scores.Set(model.MetricOrientationScore, feats.Orientation)

	label := p.classifier.Classify(feats)
	scores.Set(model.MetricBallInteraction, p.ball.Score(obs.Pose, obs.Ball, label))

	q := p.quality.Analyze(obs.Quality)
	scores.Set(model.MetricOverallSharpness, q.OverallSharpness)
	scores.Set(model.MetricSubjectSharpness, q.SubjectSharpness)
	scores.Set(model.MetricCompositionScore, q.Composition)
	scores.Set(model.MetricTechnicalQuality, q.TechnicalQuality)

	scores.Set(model.MetricPeakActionScore, p.fusion.PeakAction(scores, label))

	final := p.fusion.Fuse(scores, label, fusion.Detections{
		Pose: obs.Pose != nil,
		Ball: obs.Ball != nil,
	})

	return model.FrameResult{
		FrameID:    obs.FrameID,
		GroupID:    obs.GroupID,
		Scores:     scores,
		Action:     label,
		FinalScore: final,
	}, nil
}

// floorResult is the defined outcome for an unreadable source image: every
// sub-score at its floor, label none, final score 0. The frame stays in the
// batch and ranks last via the frame_id tie-break.
func floorResult(obs model.FrameObservation) model.FrameResult {
	return model.FrameResult{
		FrameID: obs.FrameID,
		GroupID: obs.GroupID,
		Scores:  model.NewScoreVector(),
		Action:  model.ActionLabel{Action: model.ActionNone, Confidence: 0},
	}
}
