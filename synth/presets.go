// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	statusControlChange = 0xb0
	statusProgramChange = 0xc0
	statusPitchBend     = 0xe0

	ccBankSelect  = 0x00
	ccAllSoundOff = 0x78
	ccAllNotesOff = 0x7b

	maxPitchBend = 1<<14 - 1

	// drumBank is the SoundFont bank holding percussion kits.
	drumBank = 128
)

// Preset describes one instrument definition in the loaded SoundFont.
type Preset struct {
	Name    string
	Bank    int
	Program int
}

// channelState remembers what a channel was told so it can be replayed when
// Configure restarts the engine.
type channelState struct {
	// selected is the bank chosen with controller 0, used by the next
	// SetChannelPreset.
	selected int
	assigned bool
	bank     int
	program  int
}

// Presets lists the presets of the loaded SoundFont ordered by bank and
// program.
func (s *Synthesizer) Presets() []Preset {
	if s.font == nil {
		return nil
	}

	presets := make([]Preset, 0, len(s.font.Presets))
	for _, p := range s.font.Presets {
		presets = append(presets, Preset{
			Name:    p.Name,
			Bank:    int(p.BankNumber),
			Program: int(p.PatchNumber),
		})
	}

	slices.SortFunc(presets, func(a, b Preset) int {
		if c := cmp.Compare(a.Bank, b.Bank); c != 0 {
			return c
		}
		return cmp.Compare(a.Program, b.Program)
	})

	return presets
}

// SetChannelPreset selects the preset later notes on channel will use.
//
// With percussion set the drum banks are searched first (128+bank:preset,
// 128:preset, then 128:0), falling back to the melodic banks; otherwise
// bank:preset then 0:preset are tried, where bank is the last value sent
// with controller 0. The flag works on every channel. Voices already
// sounding keep their preset.
func (s *Synthesizer) SetChannelPreset(channel, preset int, percussion bool) error {
	if err := s.checkChannel(channel); err != nil {
		return err
	}

	if preset < 0 || preset > 127 {
		return fmt.Errorf("%w: preset %d outside 0..127", ErrInvalidParameter, preset)
	}

	if channel >= engineChannels {
		return nil
	}

	state := &s.channels[channel]
	state.bank, state.program = s.resolvePreset(preset, percussion, state.selected)
	state.assigned = true

	s.applyChannel(channel)

	return nil
}

// resolvePreset walks the SoundFont for the bank and program to select,
// following the usual General MIDI fallbacks. When nothing matches the
// requested preset number is returned on the drum or melodic default bank so
// the engine can apply its own fallback.
func (s *Synthesizer) resolvePreset(preset int, percussion bool, selected int) (bank, program int) {
	type candidate struct{ bank, program int }

	var candidates []candidate
	if percussion {
		if selected != 0 {
			candidates = append(candidates, candidate{drumBank + selected, preset})
		}
		candidates = append(candidates, candidate{drumBank, preset}, candidate{drumBank, 0})
	}

	if selected != 0 {
		candidates = append(candidates, candidate{selected, preset})
	}
	candidates = append(candidates, candidate{0, preset})

	for _, c := range candidates {
		if s.hasPreset(c.bank, c.program) {
			return c.bank, c.program
		}
	}

	if percussion {
		return drumBank, preset
	}

	return 0, preset
}

func (s *Synthesizer) hasPreset(bank, program int) bool {
	if s.font == nil {
		return false
	}

	for _, p := range s.font.Presets {
		if int(p.BankNumber) == bank && int(p.PatchNumber) == program {
			return true
		}
	}

	return false
}

// engineBank converts a SoundFont bank into the controller 0 value the
// engine expects. The engine adds the drum bank offset to everything sent
// on its percussion channel.
func engineBank(channel, bank int) int {
	if channel == percussionChannel {
		return bank - drumBank
	}

	return bank
}

func (s *Synthesizer) applyChannel(channel int) {
	state := s.channels[channel]
	s.engine.ProcessMidiMessage(int32(channel), statusControlChange, ccBankSelect, int32(engineBank(channel, state.bank)))
	s.engine.ProcessMidiMessage(int32(channel), statusProgramChange, int32(state.program), 0)
}

func (s *Synthesizer) replayChannels() {
	for ch := range s.channels {
		switch state := s.channels[ch]; {
		case state.assigned:
			s.applyChannel(ch)
		case state.selected != 0:
			s.engine.ProcessMidiMessage(int32(ch), statusControlChange, ccBankSelect, int32(state.selected))
		}
	}
}
