package transpose

import "github.com/jsphweid/scoreclean/model"

// Transpose shifts every pitch by semitones. The input is not modified.
// A zero offset returns the input slice as is.
func Transpose(events []model.RawNoteEvent, semitones int) []model.RawNoteEvent {
	if semitones == 0 {
		return events
	}
	res := make([]model.RawNoteEvent, len(events))
	for i, e := range events {
		e.Pitch += semitones
		res[i] = e
	}
	return res
}
