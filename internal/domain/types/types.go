// Package types contains common types shared by the service and the HTTP API.
package types

// RankedFrame is the API-facing view of one ranked frame.
type RankedFrame struct {
	Rank       int                `json:"rank"`
	FrameID    string             `json:"frame_id"`
	GroupID    string             `json:"group_id"`
	FinalScore float64            `json:"final_score"`
	Action     string             `json:"action"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}
