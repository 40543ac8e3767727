package constants

import "os"

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetOutDir() string {
	return getEnv("OUT_PATH", "./out")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

func GetPresetTable() string {
	return getEnv("PRESET_TABLE", "scoreclean-presets")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMO_REGION", "localhost")
}

// eighth notes
const SimplifiedGrid = 0.5

// sixteenth notes
const DetailedGrid = 0.25

// A note whose natural end lands closer than this (in beats) to the next
// note's start gets stretched to touch it. Independent of grid size.
const LegatoThreshold = 1.0

const DefaultInstrument = "Piano (C)"

const ManifestFilename = "manifest.dat"

// ticks per quarter note for files we write
const OutputResolution = 480

// DynamoDB BatchGetItem limit
const MaxBatchGetKeys = 100
