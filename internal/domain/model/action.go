package model

// Action identifies the stroke or stance the classifier recognized.
type Action string

// Recognized actions, in cascade priority order.
const (
	ActionServe           Action = "serve"
	ActionForehand        Action = "forehand"
	ActionBackhand        Action = "backhand"
	ActionVolley          Action = "volley"
	ActionLunge           Action = "lunge"
	ActionReadyPosition   Action = "ready_position"
	ActionGeneralMovement Action = "general_movement"
	ActionNone            Action = "none"
)

// ActionLabel pairs an action with the classifier's confidence in [0,1].
type ActionLabel struct {
	Action     Action  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// IsStroke reports whether the action is one of the overhead/ground strokes
// that earn the action bonus during fusion.
func (a Action) IsStroke() bool {
	switch a {
	case ActionServe, ActionForehand, ActionBackhand:
		return true
	default:
		return false
	}
}
