package live

import (
	"sync"

	"github.com/jsphweid/scoreclean/model"
)

// Take collects notes played on a live input. Timestamps are the
// driver's milliseconds. The first note played is beat 0.
type Take struct {
	mu      sync.Mutex
	bpm     float64
	started bool
	origin  int32
	pressed map[uint8]int32
	notes   []model.RawNoteEvent
}

func NewTake(bpm float64) *Take {
	return &Take{bpm: bpm, pressed: make(map[uint8]int32)}
}

func (t *Take) toBeats(ms int32) float64 {
	return float64(ms-t.origin) / 1000 * t.bpm / 60
}

func (t *Take) Start(key uint8, ms int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		t.started = true
		t.origin = ms
	}
	// a retrigger without release closes the sounding note first
	if on, ok := t.pressed[key]; ok {
		t.close(key, on, ms)
	}
	t.pressed[key] = ms
}

// End closes a sounding note and reports whether there was one.
func (t *Take) End(key uint8, ms int32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	on, ok := t.pressed[key]
	if !ok {
		return false
	}
	t.close(key, on, ms)
	delete(t.pressed, key)
	return true
}

func (t *Take) close(key uint8, on int32, off int32) {
	start := t.toBeats(on)
	t.notes = append(t.notes, model.RawNoteEvent{
		Pitch:     int(key),
		StartTime: start,
		Duration:  t.toBeats(off) - start,
	})
}

// Notes returns a copy of the finished notes.
func (t *Take) Notes() []model.RawNoteEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.RawNoteEvent(nil), t.notes...)
}

func (t *Take) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = false
	t.origin = 0
	t.pressed = make(map[uint8]int32)
	t.notes = nil
}
