// Package model contains domain models passed between layers.
package model

// Landmark is one detected body keypoint in image-normalized coordinates.
// Visibility is the pose model's confidence that the point is correctly
// located, in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// LandmarkCount is the fixed number of body landmarks per pose.
const LandmarkCount = 33

// Body landmark indices, MediaPipe pose convention.
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
)

// PoseObservation is a full set of 33 landmarks for one frame. A nil
// *PoseObservation means no pose was detected; the pose collaborator never
// delivers partial landmark sets.
type PoseObservation struct {
	Landmarks [LandmarkCount]Landmark `json:"landmarks"`
}

// Box is a normalized bounding box: center coordinates plus extent, all in
// [0,1] image space.
type Box struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// BallObservation is the detector collaborator's single best ball candidate
// for a frame. nil means nothing was detected above threshold.
type BallObservation struct {
	Box           Box     `json:"box"`
	Confidence    float64 `json:"confidence"`
	EstimatedBlur float64 `json:"estimated_blur"`
}

// FramingGeometry describes the detected player box relative to the frame,
// supplied by the pixel-statistics collaborator.
type FramingGeometry struct {
	SubjectBox    Box     `json:"subject_box"`
	TouchingEdges int     `json:"touching_edges"`
	AreaRatio     float64 `json:"area_ratio"`
}

// CompositionGeometry carries the composition measurements the quality
// analyzer thresholds. Diagonal and NegativeSpace are optional pre-computed
// sub-scores; nil falls back to the neutral middle tier.
type CompositionGeometry struct {
	ThirdsDistance float64  `json:"thirds_distance"` // distance to nearest power point
	ActionMargin   float64  `json:"action_margin"`   // space in the facing direction
	Diagonal       *float64 `json:"diagonal,omitempty"`
	NegativeSpace  *float64 `json:"negative_space,omitempty"`
}

// QualitySignals bundles the scalar image statistics computed externally.
type QualitySignals struct {
	OverallVariance float64              `json:"overall_variance"`
	SubjectVariance float64              `json:"subject_variance"`
	MeanLuminance   float64              `json:"mean_luminance"`
	LuminanceStdDev float64              `json:"luminance_stddev"`
	Framing         *FramingGeometry     `json:"framing,omitempty"`
	Composition     *CompositionGeometry `json:"composition,omitempty"`
}

// FrameObservation is the per-frame input event: everything the collaborators
// measured for one image. IngestError marks a frame whose source image could
// not be read; such frames still flow through the pipeline and receive floor
// scores.
type FrameObservation struct {
	FrameID     string           `json:"frame_id"`
	GroupID     string           `json:"group_id"`
	ImageWidth  int              `json:"image_width"`
	ImageHeight int              `json:"image_height"`
	Pose        *PoseObservation `json:"pose,omitempty"`
	Ball        *BallObservation `json:"ball,omitempty"`
	Quality     QualitySignals   `json:"quality"`
	IngestError string           `json:"ingest_error,omitempty"`
}

// FrameResult is the immutable outcome of scoring one frame. It is created
// once by the scoring pipeline and only ever read afterwards.
type FrameResult struct {
	FrameID    string      `json:"frame_id"`
	GroupID    string      `json:"group_id"`
	Scores     ScoreVector `json:"scores"`
	Action     ActionLabel `json:"action"`
	FinalScore float64     `json:"final_score"`
}
