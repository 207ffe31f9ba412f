package model

import "fmt"

type WarningKind uint8

const (
	// WarningOrphanNoteOff is a release with no sounding note for its key.
	WarningOrphanNoteOff WarningKind = iota + 1
	// WarningUnterminatedNote is a note still sounding at the end of the
	// stream, closed at the final tick.
	WarningUnterminatedNote
	// WarningRetrigger is a note-on for a key that was already sounding.
	WarningRetrigger
)

func (k WarningKind) String() string {
	switch k {
	case WarningOrphanNoteOff:
		return "orphan-note-off"
	case WarningUnterminatedNote:
		return "unterminated-note"
	case WarningRetrigger:
		return "retrigger"
	default:
		return fmt.Sprintf("warning(%d)", uint8(k))
	}
}

// IsInformational reports warnings that do not indicate malformed input.
func (k WarningKind) IsInformational() bool {
	return k == WarningRetrigger
}

func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *WarningKind) UnmarshalText(text []byte) error {
	for _, kind := range []WarningKind{WarningOrphanNoteOff, WarningUnterminatedNote, WarningRetrigger} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown warning kind %q", text)
}

// Warning is a non-fatal per-event anomaly. The run that produced it still
// completes.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Tick    int64       `json:"tick"`
	Track   int         `json:"track"`
	Channel uint8       `json:"channel"`
	Pitch   uint8       `json:"pitch"`
}

func (w Warning) Error() string {
	return fmt.Sprintf("%v at tick %d (track %d, ch=%d, pitch=%d)", w.Kind, w.Tick, w.Track, w.Channel, w.Pitch)
}
