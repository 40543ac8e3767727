package model

type Pitch = int

// RawNoteEvent is a single detected pitch as it comes out of the pitch
// detector. Times are in beats (quarter notes).
type RawNoteEvent struct {
	Pitch     Pitch   `json:"pitch"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`

	// NOTE: only consulted when overlaps are resolved per voice
	Voice int `json:"voice,omitempty"`
}

type NormalizedNote struct {
	Pitch     Pitch   `json:"pitch"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
}

func (n NormalizedNote) End() float64 {
	return n.StartTime + n.Duration
}

type NormalizeStats struct {
	Input     int `json:"input"`
	Flattened int `json:"flattened"`
	Dropped   int `json:"dropped"`
	Extended  int `json:"extended"`
	Output    int `json:"output"`
}
