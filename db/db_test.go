package db

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jsphweid/scoreclean/model"
	"github.com/stretchr/testify/assert"
)

func TestPresetFromItem(t *testing.T) {
	item := Item{
		"PK":         {S: aws.String("Baritone Sax (Eb)")},
		"Semitones":  {N: aws.String("21")},
		"SingleNote": {BOOL: aws.Bool(true)},
	}

	p, err := presetFromItem(item)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.InstrumentPreset{Name: "Baritone Sax (Eb)", Semitones: 21, Monophonic: true}, p)
}

func TestPresetFromItemDefaults(t *testing.T) {
	p, err := presetFromItem(Item{"PK": {S: aws.String("Harp")}})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(0, p.Semitones)
	assert.False(p.Monophonic)
}

func TestPresetFromItemRejectsBadRows(t *testing.T) {
	cases := map[string]Item{
		"no PK":         {"Semitones": {N: aws.String("2")}},
		"bad semitones": {"PK": {S: aws.String("Oboe")}, "Semitones": {N: aws.String("2.5")}},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := presetFromItem(item)
			assert.True(t, errors.Is(err, ErrMalformedItem))
		})
	}
}

func TestCollect(t *testing.T) {
	res := make(map[string]model.InstrumentPreset)
	err := collect([]map[string]*dynamodb.AttributeValue{
		{"PK": {S: aws.String("A")}, "Semitones": {N: aws.String("-3")}},
		{"PK": {S: aws.String("B")}},
	}, res)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(res, 2)
	assert.Equal(-3, res["A"].Semitones)
}

func TestGetInstrumentPresetsWithNoNames(t *testing.T) {
	res, err := GetInstrumentPresets(nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(res)
}

func TestPending(t *testing.T) {
	unprocessed := map[string]*dynamodb.KeysAndAttributes{
		"presets": {Keys: []Item{{"PK": {S: aws.String("Oboe")}}}},
		"empty":   {},
		"nil":     nil,
	}

	res := pending(unprocessed)

	assert := assert.New(t)
	assert.Len(res, 1)
	assert.Equal("Oboe", *res["presets"].Keys[0]["PK"].S)
	assert.Empty(pending(nil))
}
