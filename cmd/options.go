package cmd

import (
	"github.com/jsphweid/scoreclean/db"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/instrument"
	"github.com/jsphweid/scoreclean/model"
	"github.com/jsphweid/scoreclean/quantize"
	"github.com/spf13/cobra"
)

// overrides are the per-call knobs that win over an instrument preset.
type overrides struct {
	Simplify   *bool
	Transpose  *int
	Monophonic *bool
	Grid       *float64
	PerVoice   bool
}

func (o overrides) grid() float64 {
	if o.Grid != nil {
		return *o.Grid
	}
	simplify := true
	if o.Simplify != nil {
		simplify = *o.Simplify
	}
	return quantize.GridFor(simplify)
}

func buildOptions(preset model.InstrumentPreset, o overrides) []engine.Option {
	opts := []engine.Option{
		engine.WithPreset(preset),
		engine.WithGrid(o.grid()),
		engine.WithPerVoice(o.PerVoice),
	}
	if o.Transpose != nil {
		opts = append(opts, engine.WithTranspose(*o.Transpose))
	}
	if o.Monophonic != nil {
		opts = append(opts, engine.WithMonophonic(*o.Monophonic))
	}
	return opts
}

type normalizeFlags struct {
	instrument string
	simplify   bool
	transpose  int
	mono       bool
	grid       float64
	perVoice   bool
	dynamo     bool
}

func (f *normalizeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.instrument, "instrument", "i", instrument.Piano.String(), "instrument preset name")
	flags.BoolVar(&f.simplify, "simplify", true, "snap to eighth notes instead of sixteenths")
	flags.IntVar(&f.transpose, "transpose", 0, "semitones to transpose by (overrides the preset)")
	flags.BoolVar(&f.mono, "mono", false, "flatten chords to the top note (overrides the preset)")
	flags.Float64Var(&f.grid, "grid", 0, "grid size in beats (overrides --simplify)")
	flags.BoolVar(&f.perVoice, "per-voice", false, "resolve overlaps separately for each track")
	flags.BoolVar(&f.dynamo, "dynamo-presets", false, "look the instrument up in the DynamoDB preset table first")
}

// presets is the builtin table, plus the DynamoDB row for the chosen
// instrument when --dynamo-presets is set.
func (f *normalizeFlags) presets() (instrument.Table, error) {
	table := instrument.Builtin()
	if !f.dynamo {
		return table, nil
	}
	remote, err := db.GetInstrumentPresets([]string{f.instrument})
	if err != nil {
		return nil, err
	}
	return table.Merge(remote), nil
}

func (f *normalizeFlags) overrides(cmd *cobra.Command) overrides {
	o := overrides{Simplify: &f.simplify, PerVoice: f.perVoice}
	flags := cmd.Flags()
	if flags.Changed("transpose") {
		o.Transpose = &f.transpose
	}
	if flags.Changed("mono") {
		o.Monophonic = &f.mono
	}
	if flags.Changed("grid") {
		o.Grid = &f.grid
	}
	return o
}

func (f *normalizeFlags) options(cmd *cobra.Command, table instrument.Table) []engine.Option {
	preset, ok := table.Lookup(f.instrument)
	if !ok {
		log.Sugar().Warnf("unknown instrument %q, using %v", f.instrument, instrument.Piano)
		preset = table.LookupOrDefault(f.instrument)
	}
	return buildOptions(preset, f.overrides(cmd))
}
