package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/scoreclean/model"
)

// Group is every event that starts at exactly the same instant.
type Group struct {
	StartTime float64
	Events    []model.RawNoteEvent
}

func (g Group) IsChord() bool {
	return len(g.Events) > 1
}

// Pitches returns the group's pitches ascending.
func (g Group) Pitches() []model.Pitch {
	res := make([]model.Pitch, 0, len(g.Events))
	for _, e := range g.Events {
		res = append(res, e.Pitch)
	}
	sort.Ints(res)
	return res
}

func CreateChordKey(pitches []model.Pitch) string {
	sorted := append([]model.Pitch(nil), pitches...)
	sort.Ints(sorted)
	var res string
	for i, p := range sorted {
		res += fmt.Sprintf("%v", p)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// GroupByStart buckets events by exact start time. Groups come back in
// order of first appearance and events keep their input order inside a
// group. There is no tolerance: 1.0 and 1.0000001 are different instants.
func GroupByStart(events []model.RawNoteEvent) []Group {
	var groups []Group
	index := make(map[float64]int)
	for _, e := range events {
		i, ok := index[e.StartTime]
		if !ok {
			i = len(groups)
			index[e.StartTime] = i
			groups = append(groups, Group{StartTime: e.StartTime})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}

// Top picks the event with the highest pitch. On equal pitches the first
// one wins.
func (g Group) Top() model.RawNoteEvent {
	top := g.Events[0]
	for _, e := range g.Events[1:] {
		if e.Pitch > top.Pitch {
			top = e
		}
	}
	return top
}

// Flatten reduces every chord to its top note, keeping that note's own
// start time and duration. Lone events pass through untouched.
func Flatten(events []model.RawNoteEvent) []model.RawNoteEvent {
	groups := GroupByStart(events)
	res := make([]model.RawNoteEvent, 0, len(groups))
	for _, g := range groups {
		res = append(res, g.Top())
	}
	return res
}
