package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/midi"
	"github.com/jsphweid/scoreclean/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeMidi(t *testing.T, path string, notes []model.NormalizedNote) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, midi.WriteTo(f, notes, 96))
}

func TestNumberFiles(t *testing.T) {
	m := NumberFiles([]string{"a.mid", "b.mid"})
	assert.Equal(t, model.FileNumToMidiPath{0: "a.mid", 1: "b.mid"}, m)
}

func TestCleanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.mid")
	writeMidi(t, path, []model.NormalizedNote{
		{Pitch: 60, StartTime: 0, Duration: 0.75},
		{Pitch: 64, StartTime: 0, Duration: 0.75},
		{Pitch: 62, StartTime: 1, Duration: 0.5},
	})

	res, err := CleanFile(path, engine.WithMonophonic(true), engine.WithSimplify(true))
	require.NoError(t, err)

	assert.Equal(t, []model.NormalizedNote{
		{Pitch: 64, StartTime: 0, Duration: 1},
		{Pitch: 62, StartTime: 1, Duration: 0.5},
	}, res.Notes)
}

func TestProcessAllMidiFiles(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	good := filepath.Join(in, "good.mid")
	bad := filepath.Join(in, "bad.mid")
	writeMidi(t, good, []model.NormalizedNote{{Pitch: 60, StartTime: 0, Duration: 1}})
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0666))

	manifest := ProcessAllMidiFiles(NumberFiles([]string{good, bad}), out, zap.NewNop())
	require.NoError(t, WriteManifest(out, manifest))

	read, err := ReadManifest(out)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(manifest, read)
	assert.Empty(read[0].Err)
	assert.FileExists(filepath.Join(out, read[0].Output))
	assert.NotEmpty(read[1].Err)
	assert.Empty(read[1].Output)

	s := Summarize(read)
	assert.Equal(2, s.NumFiles)
	assert.Equal(1, s.NumFailed)
	assert.Equal(1, s.Totals.Output)
}
