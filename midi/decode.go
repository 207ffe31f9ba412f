package midi

import (
	"math"

	"github.com/jsphweid/soundevents/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Decode turns a parsed SMF into absolute-tick messages per track. Any time
// format other than metric ticks is reported as frame based.
func Decode(s *smf.SMF) model.Stream {
	stream := model.Stream{Division: division(s.TimeFormat)}
	for i, track := range s.Tracks {
		var absTicks int64
		msgs := make([]model.RawMessage, 0, len(track))
		for _, event := range track {
			absTicks += int64(event.Delta)
			msg := decodeMessage(absTicks, event.Message)
			msg.Track = i
			msgs = append(msgs, msg)
		}
		stream.Tracks = append(stream.Tracks, msgs)
	}
	return stream
}

func division(tf smf.TimeFormat) model.Division {
	if ticks, ok := tf.(smf.MetricTicks); ok {
		return model.Division{TicksPerQuarter: int(ticks)}
	}
	return model.Division{FrameBased: true}
}

func decodeMessage(tick int64, msg smf.Message) model.RawMessage {
	var channel, key, velocity, program uint8
	var num, denom uint8
	var bpm float64
	var sig smf.Key
	voice := gomidi.Message(msg)
	switch {
	case voice.GetNoteStart(&channel, &key, &velocity):
		return model.NoteOn(tick, channel, key, velocity)
	// also covers note-on with zero velocity
	case voice.GetNoteEnd(&channel, &key):
		return model.NoteOff(tick, channel, key)
	case voice.GetProgramChange(&channel, &program):
		return model.ProgramChange(tick, channel, program)
	case msg.GetMetaTempo(&bpm):
		return model.TempoChange(tick, microsPerQuarter(bpm))
	case msg.GetMetaMeter(&num, &denom):
		return model.TimeSignatureMessage(tick, num, denom)
	case msg.GetMetaKey(&sig):
		return model.KeySignatureMessage(tick, sig.String())
	default:
		return model.Other(tick)
	}
}

// microsPerQuarter undoes smf's bpm conversion. A zero tempo in the file
// comes back as +Inf bpm and maps to 0, which the tempo map rejects.
func microsPerQuarter(bpm float64) int64 {
	if bpm <= 0 || math.IsNaN(bpm) {
		return 0
	}
	return int64(math.Round(60000000 / bpm))
}
