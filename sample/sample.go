package sample

import (
	"github.com/jsphweid/scoreclean/model"
)

// Excerpt returns at most maxNotes notes starting at or after fromBeat.
// maxNotes of 0 means no limit.
func Excerpt(notes []model.NormalizedNote, fromBeat float64, maxNotes int) []model.NormalizedNote {
	var res []model.NormalizedNote
	for _, n := range notes {
		if n.StartTime < fromBeat {
			continue
		}
		res = append(res, n)
		if maxNotes > 0 && len(res) >= maxNotes {
			break
		}
	}
	return res
}
