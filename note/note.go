package note

import (
	"sort"

	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/tempo"
)

// key packs channel and pitch; one pending note per key.
type key = uint16

func keyOf(channel, pitch uint8) key {
	return (uint16(channel) << 8) | uint16(pitch)
}

// Pending is a note that has been started but not released yet.
type Pending struct {
	Channel   uint8
	Pitch     uint8
	StartTick int64
	Velocity  uint8
	Program   uint8
	Track     int
	// Seq is the position of the note-on among all note-ons of the run.
	Seq int
}

// Completed is a matched note together with the ordering data needed to
// place it in a sound event.
type Completed struct {
	Note model.MusicalNote
	Seq  int
}

// Matcher pairs note-ons with their releases per (channel, pitch).
type Matcher struct {
	converter *tempo.Converter
	pending   map[key]Pending
	nextSeq   int
	// current program per channel
	programs [16]uint8

	completed []Completed
	warnings  []model.Warning
}

func NewMatcher(converter *tempo.Converter) *Matcher {
	return &Matcher{
		converter: converter,
		pending:   make(map[key]Pending),
		completed: []Completed{},
		warnings:  []model.Warning{},
	}
}

// Handle feeds one message to the matcher. Messages must arrive in
// non-decreasing tick order. Program changes set the instrument of later
// notes on their channel; other kinds are ignored.
func (m *Matcher) Handle(msg model.RawMessage) {
	switch {
	case msg.Kind == model.KindProgramChange:
		m.programs[msg.Channel&0x0f] = msg.Program
	case msg.IsRelease():
		m.release(msg)
	case msg.Kind == model.KindNoteOn:
		m.press(msg)
	}
}

func (m *Matcher) press(msg model.RawMessage) {
	k := keyOf(msg.Channel, msg.Pitch)
	if p, ok := m.pending[k]; ok {
		// retrigger: close the sounding note where the new one starts
		m.warn(model.WarningRetrigger, msg)
		m.complete(p, msg.Tick)
	}
	m.pending[k] = Pending{
		Channel:   msg.Channel,
		Pitch:     msg.Pitch,
		StartTick: msg.Tick,
		Velocity:  msg.Velocity,
		Program:   m.programs[msg.Channel&0x0f],
		Track:     msg.Track,
		Seq:       m.nextSeq,
	}
	m.nextSeq++
}

func (m *Matcher) release(msg model.RawMessage) {
	k := keyOf(msg.Channel, msg.Pitch)
	p, ok := m.pending[k]
	if !ok {
		m.warn(model.WarningOrphanNoteOff, msg)
		return
	}
	delete(m.pending, k)
	m.complete(p, msg.Tick)
}

func (m *Matcher) complete(p Pending, endTick int64) {
	m.completed = append(m.completed, Completed{
		Seq: p.Seq,
		Note: model.MusicalNote{
			Pitch:         p.Pitch,
			Velocity:      p.Velocity,
			Duration:      m.converter.ElapsedSeconds(p.StartTick, endTick),
			Program:       p.Program,
			Channel:       p.Channel,
			StartTick:     p.StartTick,
			EndTick:       endTick,
			DurationTicks: endTick - p.StartTick,
		},
	})
}

func (m *Matcher) warn(kind model.WarningKind, msg model.RawMessage) {
	m.warnings = append(m.warnings, model.Warning{
		Kind:    kind,
		Tick:    msg.Tick,
		Track:   msg.Track,
		Channel: msg.Channel,
		Pitch:   msg.Pitch,
	})
}

// Close ends every note still sounding at finalTick, in note-on order, and
// records an unterminated-note warning for each.
func (m *Matcher) Close(finalTick int64) {
	open := make([]Pending, 0, len(m.pending))
	for _, p := range m.pending {
		open = append(open, p)
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].Seq < open[j].Seq
	})
	for _, p := range open {
		end := finalTick
		if end < p.StartTick {
			end = p.StartTick
		}
		m.warnings = append(m.warnings, model.Warning{
			Kind:    model.WarningUnterminatedNote,
			Tick:    end,
			Track:   p.Track,
			Channel: p.Channel,
			Pitch:   p.Pitch,
		})
		m.complete(p, end)
	}
	m.pending = make(map[key]Pending)
}

// NumSounding returns how many keys currently have a pending note.
func (m *Matcher) NumSounding() int {
	return len(m.pending)
}

// Sounding reports whether channel/pitch has a pending note.
func (m *Matcher) Sounding(channel, pitch uint8) bool {
	_, ok := m.pending[keyOf(channel, pitch)]
	return ok
}

// Completed returns the notes matched so far, in completion order.
func (m *Matcher) Completed() []Completed {
	return m.completed
}

func (m *Matcher) Warnings() []model.Warning {
	return m.warnings
}
