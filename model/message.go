package model

// MessageKind tags the variant carried by a RawMessage.
type MessageKind uint8

const (
	KindOther MessageKind = iota
	KindNoteOn
	KindNoteOff
	KindTempoChange
	KindProgramChange
	KindTimeSignature
	KindKeySignature
)

func (k MessageKind) String() string {
	switch k {
	case KindNoteOn:
		return "note-on"
	case KindNoteOff:
		return "note-off"
	case KindTempoChange:
		return "tempo-change"
	case KindProgramChange:
		return "program-change"
	case KindTimeSignature:
		return "time-signature"
	case KindKeySignature:
		return "key-signature"
	default:
		return "other"
	}
}

// RawMessage is a single timestamped message as delivered by the container
// parser. Only the fields relevant to Kind are meaningful.
type RawMessage struct {
	Kind  MessageKind
	Tick  int64
	Track int

	Channel  uint8
	Pitch    uint8
	Velocity uint8

	// TempoChange only
	MicrosPerQuarter int64

	// ProgramChange only
	Program uint8

	// TimeSignature only
	Numerator   uint8
	Denominator uint8

	// KeySignature only, e.g. "GMaj"
	Key string
}

func NoteOn(tick int64, channel, pitch, velocity uint8) RawMessage {
	return RawMessage{Kind: KindNoteOn, Tick: tick, Channel: channel, Pitch: pitch, Velocity: velocity}
}

func NoteOff(tick int64, channel, pitch uint8) RawMessage {
	return RawMessage{Kind: KindNoteOff, Tick: tick, Channel: channel, Pitch: pitch}
}

func TempoChange(tick int64, microsPerQuarter int64) RawMessage {
	return RawMessage{Kind: KindTempoChange, Tick: tick, MicrosPerQuarter: microsPerQuarter}
}

func ProgramChange(tick int64, channel, program uint8) RawMessage {
	return RawMessage{Kind: KindProgramChange, Tick: tick, Channel: channel, Program: program}
}

func TimeSignatureMessage(tick int64, numerator, denominator uint8) RawMessage {
	return RawMessage{Kind: KindTimeSignature, Tick: tick, Numerator: numerator, Denominator: denominator}
}

func KeySignatureMessage(tick int64, key string) RawMessage {
	return RawMessage{Kind: KindKeySignature, Tick: tick, Key: key}
}

func Other(tick int64) RawMessage {
	return RawMessage{Kind: KindOther, Tick: tick}
}

// IsRelease reports whether the message ends a sounding note: a note-off or
// a note-on with zero velocity.
func (m RawMessage) IsRelease() bool {
	return m.Kind == KindNoteOff || (m.Kind == KindNoteOn && m.Velocity == 0)
}

// Division is the time division declared by the container.
type Division struct {
	TicksPerQuarter int
	// FrameBased is set for SMPTE division, which is not supported.
	FrameBased bool
}

// Stream is a fully decoded piece: its division plus one message list per
// track, each in declaration order.
type Stream struct {
	Division Division
	Tracks   [][]RawMessage
}

// NumMessages returns the total number of messages over all tracks.
func (s Stream) NumMessages() int {
	var n int
	for _, t := range s.Tracks {
		n += len(t)
	}
	return n
}
