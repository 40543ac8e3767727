package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jsphweid/scoreclean/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

var (
	ErrUnsupportedTimeFormat = errors.New("only metric time formats are supported")
	ErrPitchOutOfRange       = errors.New("pitch outside of MIDI range")
)

// Read parses a standard MIDI file.
func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file... %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file... %w", err)
	}
	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file... %w", err)
	}
	return Read(bytes.NewReader(dat))
}

type noteKey struct {
	channel uint8
	key     uint8
}

type openNote struct {
	ticks int64
}

// ExtractNotes turns note on/off pairs into note events measured in beats.
// A note-on with velocity 0 ends a note. Repeated note-ons for the same key
// are closed first in, first out. Notes still sounding when their track ends
// stop at the track's last event. The track index becomes the voice.
func ExtractNotes(s *smf.SMF) ([]model.RawNoteEvent, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return nil, ErrUnsupportedTimeFormat
	}
	perBeat := float64(ticks)

	var res []model.RawNoteEvent
	for trackNum, track := range s.Tracks {
		var absTicks int64
		pressed := make(map[noteKey][]openNote)
		var order []noteKey

		emit := func(k noteKey, on openNote, off int64) {
			res = append(res, model.RawNoteEvent{
				Pitch:     int(k.key),
				StartTime: float64(on.ticks) / perBeat,
				Duration:  float64(off-on.ticks) / perBeat,
				Voice:     trackNum,
			})
		}

		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				k := noteKey{channel, key}
				if len(pressed[k]) == 0 {
					order = append(order, k)
				}
				pressed[k] = append(pressed[k], openNote{ticks: absTicks})
			case event.Message.GetNoteOff(&channel, &key, &velocity),
				event.Message.GetNoteOn(&channel, &key, &velocity):
				k := noteKey{channel, key}
				if len(pressed[k]) == 0 {
					continue
				}
				emit(k, pressed[k][0], absTicks)
				pressed[k] = pressed[k][1:]
			}
		}

		for _, k := range order {
			for _, on := range pressed[k] {
				emit(k, on, absTicks)
			}
			delete(pressed, k)
		}
	}

	slices.SortStableFunc(res, func(a, b model.RawNoteEvent) bool {
		return a.StartTime < b.StartTime
	})
	return res, nil
}

type timedEvent struct {
	ticks int64
	isOff bool
	msg   midi.Message
}

// Write lays the notes out on a single track at the given resolution.
func Write(notes []model.NormalizedNote, resolution uint16) (*smf.SMF, error) {
	var events []timedEvent
	for i, n := range notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			return nil, fmt.Errorf("%w: note %d has pitch %d", ErrPitchOutOfRange, i, n.Pitch)
		}
		key := uint8(n.Pitch)
		on := int64(math.Round(n.StartTime * float64(resolution)))
		off := int64(math.Round(n.End() * float64(resolution)))
		events = append(events,
			timedEvent{ticks: on, msg: midi.NoteOn(0, key, 100)},
			timedEvent{ticks: off, isOff: true, msg: midi.NoteOff(0, key)},
		)
	}

	// offs before ons on the same tick so repeated pitches retrigger
	slices.SortStableFunc(events, func(a, b timedEvent) bool {
		if a.ticks != b.ticks {
			return a.ticks < b.ticks
		}
		return a.isOff && !b.isOff
	})

	var track smf.Track
	var last int64
	for _, e := range events {
		track = append(track, smf.Event{
			Delta:   uint32(e.ticks - last),
			Message: smf.Message(e.msg),
		})
		last = e.ticks
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)
	if err := s.Add(track); err != nil {
		return nil, err
	}
	return s, nil
}

func WriteTo(w io.Writer, notes []model.NormalizedNote, resolution uint16) error {
	s, err := Write(notes, resolution)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}
