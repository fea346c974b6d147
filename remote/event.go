// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ik5/sfsynth/synth"
)

// Event types accepted in the "type" field.
const (
	TypeNoteOn        = "note_on"
	TypeNoteOff       = "note_off"
	TypeNotesOff      = "notes_off"
	TypeAllNotesOff   = "all_notes_off"
	TypeSoundOff      = "sound_off"
	TypePreset        = "preset"
	TypeControlChange = "control_change"
	TypePitchBend     = "pitch_bend"
)

// Event is the JSON form of one synthesizer command, for example
//
//	{"type":"note_on","channel":0,"key":60,"velocity":0.8}
//
// Fields that do not apply to the type are ignored.
type Event struct {
	Type       string  `json:"type"`
	Channel    int     `json:"channel"`
	Key        int     `json:"key,omitempty"`
	Velocity   float32 `json:"velocity,omitempty"`
	Preset     int     `json:"preset,omitempty"`
	Percussion bool    `json:"percussion,omitempty"`
	Controller int     `json:"controller,omitempty"`
	Value      int     `json:"value,omitempty"`
}

// Command converts the event. Argument ranges are checked later by the
// synthesizer.
func (e Event) Command() (synth.Command, error) {
	switch e.Type {
	case TypeNoteOn:
		return synth.NoteOnCommand{Channel: e.Channel, Key: e.Key, Velocity: e.Velocity}, nil
	case TypeNoteOff:
		return synth.NoteOffCommand{Channel: e.Channel, Key: e.Key}, nil
	case TypeNotesOff:
		return synth.ChannelNotesOffCommand{Channel: e.Channel}, nil
	case TypeAllNotesOff:
		return synth.AllNotesOffCommand{}, nil
	case TypeSoundOff:
		return synth.ChannelSoundOffCommand{Channel: e.Channel}, nil
	case TypePreset:
		return synth.PresetCommand{Channel: e.Channel, Preset: e.Preset, Percussion: e.Percussion}, nil
	case TypeControlChange:
		return synth.ControlChangeCommand{Channel: e.Channel, Controller: e.Controller, Value: e.Value}, nil
	case TypePitchBend:
		return synth.PitchBendCommand{Channel: e.Channel, Value: e.Value}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
}

// Decode parses a message body holding one event object or an array of
// them.
func Decode(data []byte) ([]Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var events []Event
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return events, nil
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return []Event{ev}, nil
}
