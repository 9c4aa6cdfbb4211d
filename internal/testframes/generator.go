package testframes

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 8
)

// Frame archetype cases. Each produces a pose the classifier should label
// differently, so a full run exercises the whole rule cascade.
const (
	caseServe           = 0
	caseForehand        = 1
	caseBackhand        = 2
	caseLunge           = 3
	caseReadyPosition   = 4
	caseGeneralMovement = 5
	caseNoPose          = 6
	caseUnreadable      = 7
)

// Synthetic image dimensions.
const (
	imageWidth  = 1920
	imageHeight = 1080
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateFrames creates the specified number of frame observations spread
// over the configured burst groups.
func generateFrames(ctx context.Context, config *Config, stats *Stats) ([]Frame, error) {
	logger.Get().Info(ctx, "generating frame observations",
		logger.Int("numFrames", config.NumFrames),
		logger.Int("numGroups", config.NumGroups))

	groups := make([]string, config.NumGroups)
	for i := range groups {
		groups[i] = "burst-" + uuid.New().String()[:8]
	}

	frames := make([]Frame, config.NumFrames)
	for i := 0; i < config.NumFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during frame generation: %w", ctx.Err())
		default:
		}
		frames[i] = generateSingleFrame(i, groups[i%len(groups)])
	}

	stats.FramesGenerated = len(frames)
	logger.Get().Info(ctx, "generated frames successfully", logger.Int("count", len(frames)))
	return frames, nil
}

// generateSingleFrame creates one observation with a randomly chosen pose
// archetype.
func generateSingleFrame(index int, groupID string) Frame {
	frameID := "frame_" + strconv.Itoa(index) + "_" + uuid.New().String()[:8]

	frame := Frame{
		FrameID:     frameID,
		GroupID:     groupID,
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		Quality:     generateQuality(),
	}

	archetype, _ := rand.Int(rand.Reader, big.NewInt(archetypeDivisor))
	switch archetype.Int64() {
	case caseServe:
		frame.Pose = posePreset(presetServe)
		frame.Ball = ballNear(frame.Pose, model.RightWrist)
	case caseForehand:
		frame.Pose = posePreset(presetForehand)
		frame.Ball = ballNear(frame.Pose, model.RightWrist)
	case caseBackhand:
		frame.Pose = posePreset(presetBackhand)
		if getRandomFloat() < 0.5 {
			frame.Ball = ballNear(frame.Pose, model.LeftWrist)
		}
	case caseLunge:
		frame.Pose = posePreset(presetLunge)
	case caseReadyPosition:
		frame.Pose = posePreset(presetReady)
	case caseGeneralMovement:
		frame.Pose = posePreset(presetNeutral)
	case caseNoPose:
		// Nothing detected above threshold.
	case caseUnreadable:
		frame.IngestError = "decode failed: truncated image data"
		frame.Quality = model.QualitySignals{}
	}

	return frame
}

type posePresetKind int

const (
	presetNeutral posePresetKind = iota
	presetServe
	presetForehand
	presetBackhand
	presetLunge
	presetReady
)

// posePreset builds a full landmark set for one archetype. Coordinates are
// image-normalized with y growing downward.
func posePreset(kind posePresetKind) *model.PoseObservation {
	p := &model.PoseObservation{}

	set := func(idx int, x, y float64) {
		p.Landmarks[idx] = model.Landmark{
			X:          x + jitter(0.01),
			Y:          y + jitter(0.01),
			Z:          jitter(0.05),
			Visibility: 0.85 + getRandomFloat()*0.13,
		}
	}

	// Neutral standing pose; archetypes override the limbs that matter.
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

	switch kind {
	case presetServe:
		// Both wrists reaching overhead.
		set(model.LeftElbow, 0.44, 0.28)
		set(model.RightElbow, 0.56, 0.28)
		set(model.LeftWrist, 0.46, 0.16)
		set(model.RightWrist, 0.54, 0.14)
	case presetForehand:
		// Hitting arm raised above the shoulder line.
		set(model.RightElbow, 0.62, 0.38)
		set(model.RightWrist, 0.68, 0.26)
	case presetBackhand:
		// Off arm swings across and up.
		set(model.LeftElbow, 0.38, 0.38)
		set(model.LeftWrist, 0.32, 0.26)
	case presetLunge:
		// Wide, grounded stance.
		set(model.LeftKnee, 0.32, 0.80)
		set(model.RightKnee, 0.66, 0.80)
		set(model.LeftAnkle, 0.26, 0.93)
		set(model.RightAnkle, 0.70, 0.92)
	case presetReady:
		// Crouched split stance: wide but not grounded low like a lunge.
		set(model.LeftWrist, 0.44, 0.58)
		set(model.RightWrist, 0.56, 0.58)
		set(model.LeftKnee, 0.38, 0.70)
		set(model.RightKnee, 0.62, 0.70)
		set(model.LeftAnkle, 0.30, 0.76)
		set(model.RightAnkle, 0.70, 0.76)
	case presetNeutral:
	}

	return p
}

// ballNear places a ball candidate close to the given wrist landmark.
func ballNear(p *model.PoseObservation, wrist int) *model.BallObservation {
	w := p.Landmarks[wrist]
	return &model.BallObservation{
		Box: model.Box{
			CX: w.X + jitter(0.08),
			CY: w.Y + jitter(0.08),
			W:  0.02 + getRandomFloat()*0.02,
			H:  0.02 + getRandomFloat()*0.02,
		},
		Confidence:    0.5 + getRandomFloat()*0.45,
		EstimatedBlur: 10 + getRandomFloat()*70,
	}
}

// generateQuality produces plausible image statistics.
func generateQuality() model.QualitySignals {
	return model.QualitySignals{
		OverallVariance: 50 + getRandomFloat()*350,
		SubjectVariance: 100 + getRandomFloat()*800,
		MeanLuminance:   60 + getRandomFloat()*120,
		LuminanceStdDev: 20 + getRandomFloat()*50,
		Framing: &model.FramingGeometry{
			SubjectBox: model.Box{
				CX: 0.45 + getRandomFloat()*0.1,
				CY: 0.5 + getRandomFloat()*0.1,
				W:  0.3 + getRandomFloat()*0.2,
				H:  0.5 + getRandomFloat()*0.2,
			},
			TouchingEdges: 0,
			AreaRatio:     0.12 + getRandomFloat()*0.35,
		},
		Composition: &model.CompositionGeometry{
			ThirdsDistance: getRandomFloat() * 0.3,
			ActionMargin:   getRandomFloat() * 0.4,
		},
	}
}

// jitter returns a uniform random offset in [-scale, scale].
func jitter(scale float64) float64 {
	return (getRandomFloat()*2 - 1) * scale
}
