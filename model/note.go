package model

import "fmt"

// MusicalNote is a completed note. Duration is real time in seconds and
// already accounts for every tempo change inside the note's span.
type MusicalNote struct {
	Pitch    uint8   `json:"pitch"`
	Velocity uint8   `json:"velocity"`
	Duration float64 `json:"duration"`
	// Program is the channel's instrument when the note started.
	Program uint8 `json:"program"`

	Channel       uint8 `json:"channel"`
	StartTick     int64 `json:"start_tick"`
	EndTick       int64 `json:"end_tick"`
	DurationTicks int64 `json:"duration_ticks"`
}

// SoundEvent is one onset: a single note, or a chord when several notes
// start on the same tick.
type SoundEvent struct {
	StartTick    int64   `json:"start_tick"`
	StartSeconds float64 `json:"start_seconds"`
	PauseBefore  float64 `json:"pause_before"`
	// PauseAfter runs to the next onset, or to the end of the piece.
	PauseAfter float64       `json:"pause_after"`
	Notes      []MusicalNote `json:"notes"`
}

func (e SoundEvent) IsChord() bool {
	return len(e.Notes) > 1
}

// Pitches returns the pitches of the event in note order.
func (e SoundEvent) Pitches() []uint8 {
	res := make([]uint8, 0, len(e.Notes))
	for _, n := range e.Notes {
		res = append(res, n.Pitch)
	}
	return res
}

type TempoSegment struct {
	StartTick        int64 `json:"start_tick"`
	MicrosPerQuarter int64 `json:"micros_per_quarter"`
}

// BPM returns the segment tempo in quarter notes per minute.
func (s TempoSegment) BPM() float64 {
	return 60000000 / float64(s.MicrosPerQuarter)
}

type TimeSignature struct {
	Tick        int64 `json:"tick"`
	Numerator   uint8 `json:"numerator"`
	Denominator uint8 `json:"denominator"`
}

func (s TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", s.Numerator, s.Denominator)
}

type KeySignature struct {
	Tick int64  `json:"tick"`
	Key  string `json:"key"`
}

// Meta holds the score context found along the notes.
type Meta struct {
	TimeSignatures []TimeSignature `json:"time_signatures"`
	KeySignatures  []KeySignature  `json:"key_signatures"`
}

// Output is the result of one conversion run.
type Output struct {
	Resolution    int            `json:"resolution"`
	FinalTick     int64          `json:"final_tick"`
	LengthSeconds float64        `json:"length_seconds"`
	Tempos        []TempoSegment `json:"tempos"`
	Meta          Meta           `json:"meta"`
	Events        []SoundEvent   `json:"events"`
	Warnings      []Warning      `json:"warnings"`
}

// NumNotes counts the notes over all events.
func (o Output) NumNotes() int {
	var n int
	for _, e := range o.Events {
		n += len(e.Notes)
	}
	return n
}

// NumWarnings counts the warnings that point at problems in the input.
// Retriggers are informational and left out.
func (o Output) NumWarnings() int {
	var n int
	for _, w := range o.Warnings {
		if !w.Kind.IsInformational() {
			n++
		}
	}
	return n
}

// CountWarnings returns how many warnings of the given kind were recorded.
func (o Output) CountWarnings(kind WarningKind) int {
	var n int
	for _, w := range o.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
