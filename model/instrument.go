package model

type InstrumentPreset struct {
	Name       string `json:"name"`
	Semitones  int    `json:"semitones"`
	Monophonic bool   `json:"single_note"`
}
