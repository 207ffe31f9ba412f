package sequence

import (
	"sort"

	"github.com/jsphweid/soundevents/logger"
	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/note"
	"github.com/jsphweid/soundevents/tempo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Build converts a decoded stream into its sound events.
func Build(stream model.Stream) (model.Output, error) {
	return BuildTracks(stream.Tracks, stream.Division)
}

// BuildTracks merges the tracks, drives the tempo map and the note matcher
// in tick order, and groups the matched notes into sound events. Tempo and
// division errors abort the run and no output is returned.
func BuildTracks(tracks [][]model.RawMessage, division model.Division) (model.Output, error) {
	tempos := tempo.NewMap()
	converter, err := tempo.NewConverter(tempos, division)
	if err != nil {
		return model.Output{}, err
	}

	matcher := note.NewMatcher(converter)
	meta := model.Meta{
		TimeSignatures: []model.TimeSignature{},
		KeySignatures:  []model.KeySignature{},
	}
	var finalTick int64
	for _, msg := range Merge(tracks) {
		if msg.Tick > finalTick {
			finalTick = msg.Tick
		}
		switch msg.Kind {
		case model.KindTempoChange:
			if err := tempos.RecordTempoChange(msg.Tick, msg.MicrosPerQuarter); err != nil {
				return model.Output{}, errors.Wrapf(err, "track %d", msg.Track)
			}
		case model.KindNoteOn, model.KindNoteOff, model.KindProgramChange:
			matcher.Handle(msg)
		case model.KindTimeSignature:
			meta.TimeSignatures = append(meta.TimeSignatures, model.TimeSignature{
				Tick: msg.Tick, Numerator: msg.Numerator, Denominator: msg.Denominator,
			})
		case model.KindKeySignature:
			meta.KeySignatures = append(meta.KeySignatures, model.KeySignature{Tick: msg.Tick, Key: msg.Key})
		}
	}
	matcher.Close(finalTick)

	length := converter.SecondsAt(finalTick)
	out := model.Output{
		Resolution:    converter.Resolution(),
		FinalTick:     finalTick,
		LengthSeconds: length,
		Tempos:        tempos.Segments(),
		Meta:          meta,
		Events:        group(matcher.Completed(), converter, length),
		Warnings:      matcher.Warnings(),
	}
	logWarnings(out.Warnings)
	return out, nil
}

// group orders notes by onset, then note-on order, and appends each to the
// tail event when it shares the tail's start tick. The last event's pause
// runs to the end of the piece.
func group(completed []note.Completed, converter *tempo.Converter, length float64) []model.SoundEvent {
	sorted := make([]note.Completed, len(completed))
	copy(sorted, completed)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Note.StartTick != sorted[j].Note.StartTick {
			return sorted[i].Note.StartTick < sorted[j].Note.StartTick
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	events := []model.SoundEvent{}
	var prevSeconds float64
	for _, c := range sorted {
		if n := len(events); n > 0 && events[n-1].StartTick == c.Note.StartTick {
			events[n-1].Notes = append(events[n-1].Notes, c.Note)
			continue
		}
		start := converter.SecondsAt(c.Note.StartTick)
		events = append(events, model.SoundEvent{
			StartTick:    c.Note.StartTick,
			StartSeconds: start,
			PauseBefore:  start - prevSeconds,
			Notes:        []model.MusicalNote{c.Note},
		})
		prevSeconds = start
	}
	for i := range events {
		next := length
		if i+1 < len(events) {
			next = events[i+1].StartSeconds
		}
		events[i].PauseAfter = next - events[i].StartSeconds
	}
	return events
}

func logWarnings(warnings []model.Warning) {
	log := logger.Get()
	for _, w := range warnings {
		entry := log.WithFields(logrus.Fields{
			"tick":    w.Tick,
			"track":   w.Track,
			"channel": w.Channel,
			"pitch":   w.Pitch,
		})
		switch w.Kind {
		case model.WarningRetrigger:
			entry.Debug("note retriggered while sounding")
		case model.WarningOrphanNoteOff:
			entry.Warn("note off for unpressed note")
		case model.WarningUnterminatedNote:
			entry.Warn("missing note off, closed at final tick")
		}
	}
}
