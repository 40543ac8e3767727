package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/midi"
	"github.com/jsphweid/scoreclean/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cleanFlags normalizeFlags

func init() {
	cleanFlags.register(cleanCmd)
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean <input.mid|input.json> [output.mid]",
	Short: "Cleans one file",
	Long: `Cleans one file of detected notes. Input is a MIDI file or a JSON array of
{"pitch", "start_time", "duration"} events. With no output path the cleaned notes
are printed as JSON.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cleanFlags.presets()
		if err != nil {
			return err
		}
		opts := cleanFlags.options(cmd, table)
		var out string
		if len(args) == 2 {
			out = args[1]
		}
		return clean(args[0], out, os.Stdout, opts)
	},
}

func readJSONNotes(path string) ([]model.RawNoteEvent, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var notes []model.RawNoteEvent
	if err := json.Unmarshal(dat, &notes); err != nil {
		return nil, fmt.Errorf("could not parse %v: %w", path, err)
	}
	return notes, nil
}

func readNotes(path string) ([]model.RawNoteEvent, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readJSONNotes(path)
	}
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return midi.ExtractNotes(parsed)
}

func clean(in string, out string, stdout io.Writer, opts []engine.Option) error {
	notes, err := readNotes(in)
	if err != nil {
		return err
	}

	res, err := engine.Run(notes, opts...)
	if err != nil {
		return err
	}
	log.Info("cleaned notes",
		zap.String("file", in),
		zap.Int("input", res.Stats.Input),
		zap.Int("output", res.Stats.Output),
		zap.Int("dropped", res.Stats.Dropped))

	if out == "" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Notes)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return midi.WriteTo(f, res.Notes, constants.OutputResolution)
}
