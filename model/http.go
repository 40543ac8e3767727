package model

type NormalizeRequestBody struct {
	Notes      []RawNoteEvent `json:"notes"`
	Instrument string         `json:"instrument"`
	Simplify   *bool          `json:"simplify"`

	// overrides for the instrument preset
	Transpose  *int     `json:"transpose"`
	Monophonic *bool    `json:"monophonic"`
	Grid       *float64 `json:"grid"`
	PerVoice   bool     `json:"per_voice"`
}

type NormalizeResponse struct {
	Status     string           `json:"status"`
	RequestId  string           `json:"request_id"`
	Instrument string           `json:"instrument"`
	Grid       float64          `json:"grid"`
	Notes      []NormalizedNote `json:"notes"`
	Stats      NormalizeStats   `json:"stats"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
