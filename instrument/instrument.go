package instrument

import (
	"github.com/jsphweid/scoreclean/model"
	"golang.org/x/exp/slices"
)

type ID int

const (
	Piano ID = iota
	Guitar
	Violin
	Flute
	Trumpet
	Clarinet
	AltoSax
	TenorSax
	FrenchHorn
)

var names = map[ID]string{
	Piano:      "Piano (C)",
	Guitar:     "Guitar (C)",
	Violin:     "Violin (C)",
	Flute:      "Flute (C)",
	Trumpet:    "Trumpet (Bb)",
	Clarinet:   "Clarinet (Bb)",
	AltoSax:    "Alto Sax (Eb)",
	TenorSax:   "Tenor Sax (Bb)",
	FrenchHorn: "French Horn (F)",
}

func (id ID) String() string {
	return names[id]
}

// Table maps a display name to its preset. Semitones is the interval that
// takes concert pitch to the instrument's written pitch.
type Table map[string]model.InstrumentPreset

// ordered list, used for display
var builtinOrder = []ID{Piano, Guitar, Violin, Flute, Trumpet, Clarinet, AltoSax, TenorSax, FrenchHorn}

var builtin = map[ID]model.InstrumentPreset{
	Piano:      {Semitones: 0, Monophonic: false},
	Guitar:     {Semitones: 0, Monophonic: false},
	Violin:     {Semitones: 0, Monophonic: false},
	Flute:      {Semitones: 0, Monophonic: true},
	Trumpet:    {Semitones: 2, Monophonic: true},
	Clarinet:   {Semitones: 2, Monophonic: true},
	AltoSax:    {Semitones: 9, Monophonic: true},
	TenorSax:   {Semitones: 2, Monophonic: true},
	FrenchHorn: {Semitones: 7, Monophonic: true},
}

func Preset(id ID) model.InstrumentPreset {
	p := builtin[id]
	p.Name = id.String()
	return p
}

// Builtin returns a fresh copy of the default preset table.
func Builtin() Table {
	t := make(Table, len(builtin))
	for _, id := range builtinOrder {
		t[id.String()] = Preset(id)
	}
	return t
}

// Names lists the built-in instruments first, in their usual order,
// followed by any extra entries sorted by name.
func (t Table) Names() []string {
	res := make([]string, 0, len(t))
	seen := make(map[string]bool)
	for _, id := range builtinOrder {
		if _, ok := t[id.String()]; ok {
			res = append(res, id.String())
			seen[id.String()] = true
		}
	}
	var extra []string
	for name := range t {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(res, extra...)
}

func (t Table) Lookup(name string) (model.InstrumentPreset, bool) {
	p, ok := t[name]
	return p, ok
}

// LookupOrDefault falls back to the piano preset for unknown names.
func (t Table) LookupOrDefault(name string) model.InstrumentPreset {
	if p, ok := t[name]; ok {
		return p
	}
	if p, ok := t[Piano.String()]; ok {
		return p
	}
	return Preset(Piano)
}

// Merge returns a new table where overrides replace or extend t.
func (t Table) Merge(overrides map[string]model.InstrumentPreset) Table {
	res := make(Table, len(t)+len(overrides))
	for k, v := range t {
		res[k] = v
	}
	for k, v := range overrides {
		v.Name = k
		res[k] = v
	}
	return res
}
