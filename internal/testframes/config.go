package testframes

import (
	"time"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// Config holds configuration for the frame test.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumFrames  int           // Number of frames to generate
	NumGroups  int           // Number of burst groups to spread frames over
	TopN       int           // Number of top entries to fetch
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated frames
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Frame is the wire payload submitted to POST /frames.
type Frame = model.FrameObservation

// RankedFrame mirrors the read shape returned by ranking queries.
type RankedFrame struct {
	Rank       int                `json:"rank"`
	FrameID    string             `json:"frame_id"`
	GroupID    string             `json:"group_id"`
	FinalScore float64            `json:"final_score"`
	Action     string             `json:"action"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// AckResponse represents the response from frame submission.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds test statistics.
type Stats struct {
	FramesGenerated  int
	FramesSubmitted  int
	FramesSuccessful int
	FramesDuplicate  int
	FramesFailed     int
	RanksRetrieved   int
	RankingEntries   int
	ExportRows       int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
