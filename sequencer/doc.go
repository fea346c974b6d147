// SPDX-License-Identifier: EPL-2.0

// Package sequencer renders Standard MIDI Files through a synth.Synthesizer.
//
// Load flattens every track into one list of synth commands stamped with
// their offset from the start of the song. Play walks that list, rendering
// the frames between consecutive events and applying each event on the
// exact frame it falls on:
//
//	seq, err := sequencer.LoadFile("song.mid")
//	samples, err := sequencer.Play(s, seq, 2*time.Second)
//
// Note, program change, controller and pitch bend messages are converted.
// Program changes on channel 9 select drum kits. System and meta messages
// other than tempo changes have no effect.
package sequencer
