package model

type FileNum = uint32
type FileNumToMidiPath = map[FileNum]string

type ManifestEntry struct {
	Source string
	Output string
	Stats  NormalizeStats
	Err    string
}

type Manifest = map[FileNum]ManifestEntry
