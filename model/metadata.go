package model

type MidiMetadata struct {
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Title   string `json:"title"`
	Year    uint   `json:"year,omitempty"`
}

type FileNumToMidiPath = map[uint32]string
