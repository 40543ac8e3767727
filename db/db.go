package db

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

type Item = map[string]*dynamodb.AttributeValue

var ErrMalformedItem = errors.New("malformed preset item")

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return dynamodb.New(sess), nil
}

// presetFromItem reads one row: PK is the instrument name, Semitones a
// number and SingleNote an optional bool.
func presetFromItem(v Item) (model.InstrumentPreset, error) {
	var p model.InstrumentPreset
	if v["PK"] == nil || v["PK"].S == nil {
		return p, fmt.Errorf("%w: missing PK", ErrMalformedItem)
	}
	p.Name = *v["PK"].S
	if v["Semitones"] != nil && v["Semitones"].N != nil {
		semitones, err := strconv.Atoi(*v["Semitones"].N)
		if err != nil {
			return p, fmt.Errorf("%w: %v has Semitones %q", ErrMalformedItem, p.Name, *v["Semitones"].N)
		}
		p.Semitones = semitones
	}
	if v["SingleNote"] != nil && v["SingleNote"].BOOL != nil {
		p.Monophonic = *v["SingleNote"].BOOL
	}
	return p, nil
}

func collect(items []Item, res map[string]model.InstrumentPreset) error {
	for _, v := range items {
		p, err := presetFromItem(v)
		if err != nil {
			return err
		}
		res[p.Name] = p
	}
	return nil
}

// pending drops tables whose unprocessed key list came back empty.
func pending(unprocessed map[string]*dynamodb.KeysAndAttributes) map[string]*dynamodb.KeysAndAttributes {
	res := make(map[string]*dynamodb.KeysAndAttributes)
	for table, ka := range unprocessed {
		if ka != nil && len(ka.Keys) > 0 {
			res[table] = ka
		}
	}
	return res
}

// GetInstrumentPresets fetches presets for the given instrument names.
// Names without a row are simply missing from the result.
func GetInstrumentPresets(names []string) (map[string]model.InstrumentPreset, error) {
	res := make(map[string]model.InstrumentPreset)
	if len(names) == 0 {
		return res, nil
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	table := constants.GetPresetTable()
	for start := 0; start < len(names); start += constants.MaxBatchGetKeys {
		end := start + constants.MaxBatchGetKeys
		if end > len(names) {
			end = len(names)
		}

		var keys []Item
		for _, name := range names[start:end] {
			keys = append(keys, Item{"PK": {S: aws.String(name)}})
		}

		request := map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		}
		for len(request) > 0 {
			dbres, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, fmt.Errorf("error from DynamoDB: %w", err)
			}
			if err := collect(dbres.Responses[table], res); err != nil {
				return nil, err
			}
			request = pending(dbres.UnprocessedKeys)
		}
	}

	return res, nil
}

// GetAllInstrumentPresets scans the whole preset table.
func GetAllInstrumentPresets() (map[string]model.InstrumentPreset, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	res := make(map[string]model.InstrumentPreset)
	input := &dynamodb.ScanInput{TableName: aws.String(constants.GetPresetTable())}
	for {
		out, err := client.Scan(input)
		if err != nil {
			return nil, fmt.Errorf("error from DynamoDB: %w", err)
		}
		if err := collect(out.Items, res); err != nil {
			return nil, err
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return res, nil
}
