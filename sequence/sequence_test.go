package sequence

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/tempo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ppq480 = model.Division{TicksPerQuarter: 480}

func TestSingleNoteAt120BPM(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{{
		model.NoteOn(0, 0, 60, 100),
		model.NoteOff(480, 0, 60),
	}}, ppq480)
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, out.Events, 1)
	assert.Equal(int64(0), out.Events[0].StartTick)
	require.Len(t, out.Events[0].Notes, 1)
	n := out.Events[0].Notes[0]
	assert.Equal(uint8(60), n.Pitch)
	assert.Equal(uint8(100), n.Velocity)
	assert.Equal(0.5, n.Duration)
	assert.Empty(out.Warnings)
	assert.Equal(0.5, out.LengthSeconds)
	assert.Equal(480, out.Resolution)
}

func TestTempoChangeInsideNote(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{
		{model.TempoChange(240, 1000000)},
		{model.NoteOn(0, 0, 60, 100), model.NoteOff(480, 0, 60)},
	}, ppq480)
	require.NoError(t, err)

	require.Len(t, out.Events, 1)
	require.Len(t, out.Events[0].Notes, 1)
	assert.Equal(t, 0.75, out.Events[0].Notes[0].Duration)
	assert.Equal(t, []model.TempoSegment{
		{StartTick: 0, MicrosPerQuarter: 500000},
		{StartTick: 240, MicrosPerQuarter: 1000000},
	}, out.Tempos)
}

func TestOrphanNoteOffCompletesRun(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{{
		model.NoteOff(0, 0, 67),
		model.NoteOn(100, 0, 60, 90),
		model.NoteOff(580, 0, 60),
	}}, ppq480)
	require.NoError(t, err)

	assert := assert.New(t)
	for _, e := range out.Events {
		for _, n := range e.Notes {
			assert.NotEqual(uint8(67), n.Pitch)
		}
	}
	assert.Equal(1, out.NumNotes())
	assert.Equal(1, out.CountWarnings(model.WarningOrphanNoteOff))
	assert.Equal(uint8(67), out.Warnings[0].Pitch)
}

func TestSameTickNotesFormChord(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{
		{model.NoteOn(0, 0, 60, 100), model.NoteOff(480, 0, 60)},
		{model.NoteOn(0, 1, 64, 90), model.NoteOff(240, 1, 64)},
	}, ppq480)
	require.NoError(t, err)

	require.Len(t, out.Events, 1)
	e := out.Events[0]
	assert.True(t, e.IsChord())
	// note-on order, not release order
	assert.Equal(t, []uint8{60, 64}, e.Pitches())
	assert.Equal(t, 0.5, e.Notes[0].Duration)
	assert.Equal(t, 0.25, e.Notes[1].Duration)
}

func TestEventsOrderedByOnsetNotRelease(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{{
		model.NoteOn(0, 0, 48, 100),
		model.NoteOn(480, 0, 60, 100),
		model.NoteOff(720, 0, 60),
		model.NoteOff(1920, 0, 48),
	}}, ppq480)
	require.NoError(t, err)

	require.Len(t, out.Events, 2)
	assert := assert.New(t)
	assert.Equal(int64(0), out.Events[0].StartTick)
	assert.Equal(uint8(48), out.Events[0].Notes[0].Pitch)
	assert.Equal(2.0, out.Events[0].Notes[0].Duration)
	assert.Equal(int64(480), out.Events[1].StartTick)
	assert.Equal(0.5, out.Events[1].StartSeconds)
	assert.Equal(0.5, out.Events[1].PauseBefore)
	assert.Equal(0.5, out.Events[0].PauseAfter)
	// last onset runs to the end of the piece at tick 1920
	assert.Equal(1.5, out.Events[1].PauseAfter)
}

func TestUnterminatedNoteClosedAtFinalTick(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{
		{model.NoteOn(0, 0, 60, 100)},
		{model.Other(960)},
	}, ppq480)
	require.NoError(t, err)

	require.Len(t, out.Events, 1)
	assert.Equal(t, 1.0, out.Events[0].Notes[0].Duration)
	assert.Equal(t, int64(960), out.FinalTick)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, model.WarningUnterminatedNote, out.Warnings[0].Kind)
}

func TestRetriggerEmitsBackToBackNotes(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{{
		model.NoteOn(0, 0, 60, 100),
		model.NoteOn(480, 0, 60, 100),
		model.NoteOff(960, 0, 60),
	}}, ppq480)
	require.NoError(t, err)

	require.Len(t, out.Events, 2)
	first, second := out.Events[0].Notes[0], out.Events[1].Notes[0]
	assert.Equal(t, first.EndTick, second.StartTick)
	assert.Equal(t, 0.5, first.Duration)
	assert.Equal(t, 0.5, second.Duration)
}

func TestSimultaneousTempoChangesLastWins(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{
		{model.TempoChange(0, 1000000)},
		{model.TempoChange(0, 250000), model.NoteOn(0, 0, 60, 1), model.NoteOff(480, 0, 60)},
	}, ppq480)
	require.NoError(t, err)

	assert.Equal(t, 0.25, out.Events[0].Notes[0].Duration)
	assert.Len(t, out.Tempos, 1)
}

func TestInvalidTempoAbortsRun(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{{
		model.NoteOn(0, 0, 60, 100),
		model.NoteOff(480, 0, 60),
		model.TempoChange(960, 0),
	}}, ppq480)

	var tempoErr *tempo.InvalidTempoError
	require.True(t, errors.As(err, &tempoErr))
	assert.Equal(t, int64(960), tempoErr.Tick)
	assert.Empty(t, out.Events)
	assert.Empty(t, out.Warnings)
}

func TestUnsupportedDivisionAbortsBeforeProcessing(t *testing.T) {
	for _, d := range []model.Division{{TicksPerQuarter: 0}, {TicksPerQuarter: 480, FrameBased: true}} {
		_, err := Build(model.Stream{
			Division: d,
			Tracks:   [][]model.RawMessage{{model.TempoChange(0, -1)}},
		})

		var formatErr *tempo.UnsupportedFormatError
		assert.True(t, errors.As(err, &formatErr))
	}
}

func TestEmptyStream(t *testing.T) {
	out, err := Build(model.Stream{Division: ppq480})
	require.NoError(t, err)

	assert.Empty(t, out.Events)
	assert.Equal(t, 0.0, out.LengthSeconds)
	assert.Len(t, out.Tempos, 1)
}

func TestEmptyStreamSerializesArrays(t *testing.T) {
	out, err := Build(model.Stream{Division: ppq480})
	require.NoError(t, err)

	dat, err := json.Marshal(out)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(dat, &raw))
	assert.JSONEq(t, "[]", string(raw["events"]))
	assert.JSONEq(t, "[]", string(raw["warnings"]))
	assert.JSONEq(t, `{"time_signatures": [], "key_signatures": []}`, string(raw["meta"]))
}

func TestProgramChangeSetsInstrumentPerChannel(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{
		{model.ProgramChange(0, 1, 40), model.NoteOn(0, 1, 67, 80), model.NoteOff(480, 1, 67)},
		{model.NoteOn(0, 0, 60, 100), model.NoteOff(480, 0, 60)},
		{model.ProgramChange(480, 1, 42), model.NoteOn(480, 1, 69, 80), model.NoteOff(960, 1, 69)},
	}, ppq480)
	require.NoError(t, err)

	require.Len(t, out.Events, 2)
	assert := assert.New(t)
	assert.Equal([]uint8{67, 60}, out.Events[0].Pitches())
	assert.Equal(uint8(40), out.Events[0].Notes[0].Program)
	assert.Equal(uint8(0), out.Events[0].Notes[1].Program)
	assert.Equal(uint8(42), out.Events[1].Notes[0].Program)
	assert.Empty(out.Warnings)
}

func TestMetaCollectedInTickOrder(t *testing.T) {
	out, err := BuildTracks([][]model.RawMessage{
		{model.NoteOn(0, 0, 60, 100), model.NoteOff(1920, 0, 60)},
		{model.TimeSignatureMessage(960, 6, 8), model.KeySignatureMessage(960, "DMaj")},
		{model.TimeSignatureMessage(0, 4, 4), model.KeySignatureMessage(0, "CMaj")},
	}, ppq480)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.TimeSignature{
		{Tick: 0, Numerator: 4, Denominator: 4},
		{Tick: 960, Numerator: 6, Denominator: 8},
	}, out.Meta.TimeSignatures)
	assert.Equal([]model.KeySignature{{Tick: 0, Key: "CMaj"}, {Tick: 960, Key: "DMaj"}}, out.Meta.KeySignatures)
	require.Len(t, out.Events, 1)
	assert.Equal(2.0, out.Events[0].PauseAfter)
}
