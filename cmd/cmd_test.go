package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scoreclean/batch"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/instrument"
	"github.com/jsphweid/scoreclean/midi"
	"github.com/jsphweid/scoreclean/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONNotes(t *testing.T, notes []model.RawNoteEvent) string {
	path := filepath.Join(t.TempDir(), "notes.json")
	data, err := json.Marshal(notes)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0666))
	return path
}

func TestCleanJSONToStdout(t *testing.T) {
	path := writeJSONNotes(t, []model.RawNoteEvent{
		{Pitch: 60, StartTime: 0, Duration: 0.5},
		{Pitch: 62, StartTime: 3, Duration: 0.5},
	})

	var out bytes.Buffer
	require.NoError(t, clean(path, "", &out, []engine.Option{engine.WithGrid(0.5)}))

	var notes []model.NormalizedNote
	require.NoError(t, json.Unmarshal(out.Bytes(), &notes))
	assert.Equal(t, []model.NormalizedNote{
		{Pitch: 60, StartTime: 0, Duration: 0.5},
		{Pitch: 62, StartTime: 3, Duration: 0.5},
	}, notes)
}

func TestCleanWritesMidi(t *testing.T) {
	path := writeJSONNotes(t, []model.RawNoteEvent{{Pitch: 70, StartTime: 0.1, Duration: 0.9}})
	out := filepath.Join(t.TempDir(), "out.mid")

	require.NoError(t, clean(path, out, nil, []engine.Option{engine.WithGrid(0.5)}))

	s, err := midi.ReadMidiFile(out)
	require.NoError(t, err)
	notes, err := midi.ExtractNotes(s)
	require.NoError(t, err)
	assert.Equal(t, []model.RawNoteEvent{{Pitch: 70, StartTime: 0, Duration: 1}}, notes)
}

func TestCleanSurfacesInvalidInput(t *testing.T) {
	path := writeJSONNotes(t, []model.RawNoteEvent{{Pitch: 60, StartTime: -1, Duration: 1}})
	err := clean(path, "", &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, engine.ErrInvalidNote)
}

func TestInspect(t *testing.T) {
	path := writeJSONNotes(t, []model.RawNoteEvent{
		{Pitch: 60, StartTime: 0, Duration: 1},
		{Pitch: 67, StartTime: 0, Duration: 1},
		{Pitch: 64, StartTime: 1, Duration: 1},
	})

	var out bytes.Buffer
	require.NoError(t, inspect(path, &out, 0, 0, []engine.Option{engine.WithMonophonic(true)}))

	assert := assert.New(t)
	assert.Contains(out.String(), "chord at 0: 60-67")
	assert.Contains(out.String(), "raw notes: 3, chords: 1, cleaned notes: 2, dropped: 0")
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, batch.WriteManifest(dir, model.Manifest{
		0: {Source: "a.mid", Output: "x.mid", Stats: model.NormalizeStats{Input: 4, Output: 3, Dropped: 1}},
		1: {Source: "b.mid", Err: "boom"},
	}))

	var out bytes.Buffer
	require.NoError(t, report(dir, &out))

	assert := assert.New(t)
	assert.Contains(out.String(), "files: 2 (1 failed)")
	assert.Contains(out.String(), "dropped by collisions: 1")
	assert.Contains(out.String(), "failed: b.mid: boom")
}

func TestNormalizeFlagsOverridePreset(t *testing.T) {
	var f normalizeFlags
	c := &cobra.Command{Use: "x"}
	f.register(c)
	require.NoError(t, c.ParseFlags([]string{"--instrument", "Trumpet (Bb)", "--transpose", "0", "--simplify=false"}))

	events := []model.RawNoteEvent{
		{Pitch: 60, StartTime: 0.3, Duration: 1},
		{Pitch: 64, StartTime: 0.3, Duration: 1},
	}
	res, err := engine.Normalize(events, f.options(c, instrument.Builtin())...)
	require.NoError(t, err)

	// mono from the preset, transposition overridden to 0, sixteenth grid
	assert.Equal(t, []model.NormalizedNote{{Pitch: 64, StartTime: 0.25, Duration: 1}}, res)
}

func TestOverridesGrid(t *testing.T) {
	no := false
	grid := 1.0

	assert := assert.New(t)
	assert.Equal(0.5, overrides{}.grid())
	assert.Equal(0.25, overrides{Simplify: &no}.grid())
	assert.Equal(1.0, overrides{Simplify: &no, Grid: &grid}.grid())
}

func TestPresetsWithoutDynamoIsBuiltin(t *testing.T) {
	var f normalizeFlags
	c := &cobra.Command{Use: "x"}
	f.register(c)
	require.NoError(t, c.ParseFlags(nil))

	table, err := f.presets()
	require.NoError(t, err)
	assert.Equal(t, instrument.Builtin(), table)
}
