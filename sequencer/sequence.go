// SPDX-License-Identifier: EPL-2.0

package sequencer

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/ik5/sfsynth/synth"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ccAllSoundOff = 120
	ccAllNotesOff = 123

	drumChannel = 9
)

// Event is a synthesizer command scheduled at an offset from the start of
// the song.
type Event struct {
	At      time.Duration
	Command synth.Command
}

// Sequence is a Standard MIDI File flattened to one time ordered list.
type Sequence struct {
	Events []Event
	// Length is the time of the last event, including ones that were not
	// converted (end of track markers, for instance).
	Length time.Duration
	// Skipped counts messages with no synthesizer equivalent.
	Skipped int
}

// Load reads a Standard MIDI File of any format. Tracks are merged; events
// sharing a timestamp keep their file order.
func Load(r io.Reader) (*Sequence, error) {
	// smf needs the whole file; buffer readers that are not already in memory.
	if _, ok := r.(*bytes.Reader); !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		r = bytes.NewReader(data)
	}

	seq := &Sequence{}

	err := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		at := time.Duration(ev.AbsMicroSeconds) * time.Microsecond
		seq.Length = max(seq.Length, at)

		cmd, ok := convert(midi.Message(ev.Message))
		if !ok {
			if !ev.Message.IsMeta() {
				seq.Skipped++
			}
			return
		}

		seq.Events = append(seq.Events, Event{At: at, Command: cmd})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	slices.SortStableFunc(seq.Events, func(a, b Event) int {
		return cmp.Compare(a.At, b.At)
	})

	return seq, nil
}

// LoadFile reads the Standard MIDI File at path.
func LoadFile(path string) (*Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return Load(bytes.NewReader(data))
}

func convert(msg midi.Message) (synth.Command, bool) {
	var channel, key, velocity, controller, value, program uint8
	var relative int16
	var absolute uint16

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return synth.NoteOnCommand{
			Channel:  int(channel),
			Key:      int(key),
			Velocity: float32(velocity) / 127,
		}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return synth.NoteOffCommand{Channel: int(channel), Key: int(key)}, true
	case msg.GetProgramChange(&channel, &program):
		return synth.PresetCommand{
			Channel:    int(channel),
			Preset:     int(program),
			Percussion: channel == drumChannel,
		}, true
	case msg.GetControlChange(&channel, &controller, &value):
		switch controller {
		case ccAllSoundOff:
			return synth.ChannelSoundOffCommand{Channel: int(channel)}, true
		case ccAllNotesOff:
			return synth.ChannelNotesOffCommand{Channel: int(channel)}, true
		}
		return synth.ControlChangeCommand{
			Channel:    int(channel),
			Controller: int(controller),
			Value:      int(value),
		}, true
	case msg.GetPitchBend(&channel, &relative, &absolute):
		return synth.PitchBendCommand{Channel: int(channel), Value: int(absolute)}, true
	}

	return nil, false
}
