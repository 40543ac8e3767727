package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/midi"
	"github.com/jsphweid/scoreclean/model"
	"github.com/jsphweid/scoreclean/util"
	"go.uber.org/zap"
)

func NumberFiles(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// CleanFile reads a MIDI file and normalizes its notes.
func CleanFile(path string, opts ...engine.Option) (engine.Result, error) {
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		return engine.Result{}, err
	}
	notes, err := midi.ExtractNotes(parsed)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.Run(notes, opts...)
}

func processMidiFile(path string, outDir string, opts ...engine.Option) (model.ManifestEntry, error) {
	entry := model.ManifestEntry{Source: path}
	res, err := CleanFile(path, opts...)
	if err != nil {
		return entry, err
	}
	entry.Stats = res.Stats

	filename := uuid.New().String() + ".mid"
	f, err := os.Create(filepath.Join(outDir, filename))
	if err != nil {
		return entry, fmt.Errorf("could not create output file: %w", err)
	}
	defer f.Close()
	if err := midi.WriteTo(f, res.Notes, constants.OutputResolution); err != nil {
		return entry, err
	}
	entry.Output = filename
	return entry, nil
}

// ProcessAllMidiFiles cleans every file into outDir. Files that fail are
// skipped and keep their error in the manifest.
func ProcessAllMidiFiles(m model.FileNumToMidiPath, outDir string, logger *zap.Logger, opts ...engine.Option) model.Manifest {
	manifest := make(model.Manifest)
	keys := util.GetSortedKeys(m)
	for i, num := range keys {
		logger.Info("processing midi file",
			zap.Int("n", i+1),
			zap.Int("of", len(keys)),
			zap.String("file", m[num]))

		entry, err := processMidiFile(m[num], outDir, opts...)
		if err != nil {
			logger.Warn("skipping midi file", zap.String("file", m[num]), zap.Error(err))
			entry.Err = err.Error()
		} else {
			logger.Debug("cleaned midi file",
				zap.String("file", m[num]),
				zap.String("output", entry.Output),
				zap.Int("dropped", entry.Stats.Dropped))
		}
		manifest[num] = entry
	}
	return manifest
}

func ManifestPath(outDir string) string {
	return filepath.Join(outDir, constants.ManifestFilename)
}

func WriteManifest(outDir string, manifest model.Manifest) error {
	return util.CreateBinary(ManifestPath(outDir), manifest)
}

func ReadManifest(outDir string) (model.Manifest, error) {
	return util.ReadBinary[model.Manifest](ManifestPath(outDir))
}

type Summary struct {
	NumFiles  int
	NumFailed int
	Totals    model.NormalizeStats
}

func Summarize(manifest model.Manifest) Summary {
	var s Summary
	for _, entry := range manifest {
		s.NumFiles++
		if entry.Err != "" {
			s.NumFailed++
			continue
		}
		s.Totals.Input += entry.Stats.Input
		s.Totals.Flattened += entry.Stats.Flattened
		s.Totals.Dropped += entry.Stats.Dropped
		s.Totals.Extended += entry.Stats.Extended
		s.Totals.Output += entry.Stats.Output
	}
	return s
}
