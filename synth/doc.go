// SPDX-License-Identifier: EPL-2.0

// Package synth renders audio from SoundFont 2 instruments.
//
// A Synthesizer wraps one engine instance built from a SoundFont. It is
// loaded from memory, a file or any io.Reader, configured once for an
// output layout, sample rate and gain, and then driven with note and
// controller events between calls to Render.
//
// # Basic Usage
//
//	s, err := synth.LoadFile("piano.sf2", synth.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Configure(synth.StereoInterleaved, 48000, 0); err != nil {
//	    return err
//	}
//
//	_ = s.NoteOn(0, 60, 0.8)
//	block, err := s.Render(4800) // 0.1 s, 9600 samples
//
// # Output Layouts
//
//   - StereoInterleaved: L0 R0 L1 R1 ...
//   - StereoUnweaved: all left samples, then all right samples
//   - Mono: the average of left and right
//
// Samples are float32, nominally within [-1, 1]. Loud material may exceed
// that range; clipping is left to the consumer.
//
// # Channels and Presets
//
// The engine exposes sixteen MIDI channels. Events for higher channels are
// accepted and ignored. SetChannelPreset picks an instrument per channel
// with General MIDI fallbacks. The percussion flag selects drum kits on any
// channel; channel 9 starts out on the standard kit.
//
// # Concurrency
//
// A Synthesizer is not safe for concurrent use. Wrap it in Locked to share
// it behind a mutex, or hand it to a Renderer, which keeps the handle on the
// render goroutine and applies Commands queued by other goroutines before
// each block:
//
//	r := synth.NewRenderer(s, 256)
//	go func() { _ = r.Send(synth.NoteOnCommand{Channel: 0, Key: 64, Velocity: 1}) }()
//	n, err := r.RenderInto(buf) // from the audio callback
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go and can be matched with errors.Is:
//
//	if errors.Is(err, synth.ErrInvalidParameter) {
//	    // rejected argument, the handle is unchanged
//	}
package synth
