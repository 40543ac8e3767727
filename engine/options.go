package engine

import (
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/model"
	"github.com/jsphweid/scoreclean/quantize"
)

// Options controls one normalization call.
type Options struct {
	Transpose  int     // Semitones added to every pitch before anything else.
	Monophonic bool    // Flatten chords to their top note.
	Grid       float64 // Rhythmic unit in beats that starts snap to.
	PerVoice   bool    // Resolve overlaps separately for each voice.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithTranspose shifts all pitches by semitones.
func WithTranspose(semitones int) Option {
	return func(opts *Options) {
		opts.Transpose = semitones
	}
}

// WithMonophonic turns chord flattening on or off.
func WithMonophonic(mono bool) Option {
	return func(opts *Options) {
		opts.Monophonic = mono
	}
}

// WithGrid sets the quantization grid directly.
func WithGrid(grid float64) Option {
	return func(opts *Options) {
		opts.Grid = grid
	}
}

// WithSimplify picks eighth notes when simplify is set, sixteenths otherwise.
func WithSimplify(simplify bool) Option {
	return func(opts *Options) {
		opts.Grid = quantize.GridFor(simplify)
	}
}

// WithPerVoice resolves overlaps independently per voice instead of across
// the merged stream.
func WithPerVoice(perVoice bool) Option {
	return func(opts *Options) {
		opts.PerVoice = perVoice
	}
}

// WithPreset applies an instrument's transposition and monophony settings.
func WithPreset(p model.InstrumentPreset) Option {
	return func(opts *Options) {
		opts.Transpose = p.Semitones
		opts.Monophonic = p.Monophonic
	}
}

func applyDefaultOptions(opts ...Option) Options {
	options := Options{Grid: constants.DetailedGrid}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
