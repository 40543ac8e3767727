package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/scoreclean/chord"
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/model"
	"github.com/jsphweid/scoreclean/quantize"
	"github.com/jsphweid/scoreclean/transpose"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrInvalidNote    = errors.New("invalid note")
	ErrDegenerateGrid = errors.New("grid must be a positive finite number")
)

type Result struct {
	Notes []model.NormalizedNote
	Stats model.NormalizeStats
}

func validateGrid(grid float64) error {
	if !(grid > 0) || math.IsInf(grid, 1) {
		return fmt.Errorf("%w: got %v", ErrDegenerateGrid, grid)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate rejects the whole input if any note has a negative or
// non-finite start time or duration.
func Validate(events []model.RawNoteEvent) error {
	for i, e := range events {
		if !isFinite(e.StartTime) || e.StartTime < 0 {
			return fmt.Errorf("%w: note %d has start time %v", ErrInvalidNote, i, e.StartTime)
		}
		if !isFinite(e.Duration) || e.Duration < 0 {
			return fmt.Errorf("%w: note %d has duration %v", ErrInvalidNote, i, e.Duration)
		}
	}
	return nil
}

func sortByStart(events []model.RawNoteEvent) {
	slices.SortStableFunc(events, func(a, b model.RawNoteEvent) bool {
		return a.StartTime < b.StartTime
	})
}

type resolveStats struct {
	dropped  int
	extended int
}

// Resolve walks notes already sorted by start time and decides each one's
// final start and duration. Starts snap to grid. A note whose successor
// quantizes onto the same or an earlier slot is dropped. A note ending
// within a beat of its successor is stretched to touch it, otherwise it
// keeps its quantized length clipped to the gap. The last note is never
// shorter than one grid unit.
func Resolve(sorted []model.RawNoteEvent, grid float64) []model.NormalizedNote {
	res, _ := resolve(sorted, grid)
	return res
}

// fit shortens dur until start+dur no longer rounds past next. gap and
// start+gap can disagree by an ulp on grids that aren't powers of two.
func fit(start, dur, next float64) float64 {
	for dur > 0 && start+dur > next {
		dur = math.Nextafter(dur, 0)
	}
	return dur
}

func resolve(sorted []model.RawNoteEvent, grid float64) ([]model.NormalizedNote, resolveStats) {
	var stats resolveStats
	res := make([]model.NormalizedNote, 0, len(sorted))

	for i, curr := range sorted {
		start := quantize.Quantize(curr.StartTime, grid)

		if i == len(sorted)-1 {
			dur := math.Max(grid, quantize.Quantize(curr.Duration, grid))
			res = append(res, model.NormalizedNote{Pitch: curr.Pitch, StartTime: start, Duration: dur})
			break
		}

		// recomputed from the raw start, never from a previous assignment
		nextStart := quantize.Quantize(sorted[i+1].StartTime, grid)
		gap := nextStart - start
		if gap <= 0 {
			stats.dropped++
			continue
		}

		var dur float64
		naturalEnd := start + curr.Duration
		if nextStart-naturalEnd < constants.LegatoThreshold {
			dur = gap
			stats.extended++
		} else {
			// floored at one grid unit so a short note never collapses to zero length
			qDur := math.Max(grid, quantize.Quantize(curr.Duration, grid))
			dur = math.Min(qDur, gap)
		}
		res = append(res, model.NormalizedNote{Pitch: curr.Pitch, StartTime: start, Duration: fit(start, dur, nextStart)})
	}

	return res, stats
}

func resolvePerVoice(sorted []model.RawNoteEvent, grid float64) ([]model.NormalizedNote, resolveStats) {
	voices := make(map[int][]model.RawNoteEvent)
	for _, e := range sorted {
		voices[e.Voice] = append(voices[e.Voice], e)
	}
	ids := maps.Keys(voices)
	slices.Sort(ids)

	var total resolveStats
	res := make([]model.NormalizedNote, 0, len(sorted))
	for _, id := range ids {
		notes, stats := resolve(voices[id], grid)
		res = append(res, notes...)
		total.dropped += stats.dropped
		total.extended += stats.extended
	}
	slices.SortStableFunc(res, func(a, b model.NormalizedNote) bool {
		return a.StartTime < b.StartTime
	})
	return res, total
}

// Run normalizes events in one pass: transpose, flatten chords when
// monophonic, sort by start time, then quantize and resolve overlaps.
// The input slice is never modified.
func Run(events []model.RawNoteEvent, opts ...Option) (Result, error) {
	options := applyDefaultOptions(opts...)
	if err := validateGrid(options.Grid); err != nil {
		return Result{}, err
	}
	if err := Validate(events); err != nil {
		return Result{}, err
	}

	res := Result{Notes: []model.NormalizedNote{}}
	res.Stats.Input = len(events)
	if len(events) == 0 {
		return res, nil
	}

	working := make([]model.RawNoteEvent, len(events))
	copy(working, events)
	working = transpose.Transpose(working, options.Transpose)

	if options.Monophonic {
		working = chord.Flatten(working)
		res.Stats.Flattened = len(events) - len(working)
	}

	sortByStart(working)

	var stats resolveStats
	if options.PerVoice {
		res.Notes, stats = resolvePerVoice(working, options.Grid)
	} else {
		res.Notes, stats = resolve(working, options.Grid)
	}
	res.Stats.Dropped = stats.dropped
	res.Stats.Extended = stats.extended
	res.Stats.Output = len(res.Notes)
	return res, nil
}

// Normalize is Run without the statistics.
func Normalize(events []model.RawNoteEvent, opts ...Option) ([]model.NormalizedNote, error) {
	res, err := Run(events, opts...)
	if err != nil {
		return nil, err
	}
	return res.Notes, nil
}
