package live

import (
	"testing"

	"github.com/jsphweid/scoreclean/model"
	"github.com/stretchr/testify/assert"
)

func TestTakeConvertsMillisToBeats(t *testing.T) {
	take := NewTake(120)
	take.Start(60, 1000)
	take.Start(64, 1500)
	assert.True(t, take.End(60, 1500))
	assert.True(t, take.End(64, 2500))

	assert.Equal(t, []model.RawNoteEvent{
		{Pitch: 60, StartTime: 0, Duration: 1},
		{Pitch: 64, StartTime: 1, Duration: 2},
	}, take.Notes())
}

func TestTakeIgnoresUnknownRelease(t *testing.T) {
	take := NewTake(60)
	assert.False(t, take.End(60, 10))
	assert.Empty(t, take.Notes())
}

func TestTakeRetriggerClosesSoundingNote(t *testing.T) {
	take := NewTake(60)
	take.Start(60, 0)
	take.Start(60, 1000)
	take.End(60, 1500)

	assert.Equal(t, []model.RawNoteEvent{
		{Pitch: 60, StartTime: 0, Duration: 1},
		{Pitch: 60, StartTime: 1, Duration: 0.5},
	}, take.Notes())
}

func TestTakeReset(t *testing.T) {
	take := NewTake(60)
	take.Start(60, 5000)
	take.End(60, 6000)
	take.Reset()
	take.Start(62, 9000)
	take.End(62, 10000)

	assert.Equal(t, []model.RawNoteEvent{{Pitch: 62, StartTime: 0, Duration: 1}}, take.Notes())
}
