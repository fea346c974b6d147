// SPDX-License-Identifier: EPL-2.0

// Package output plays a synthesizer through the system audio device using
// github.com/ebitengine/oto/v3.
//
// The device pulls samples: oto calls PCMReader.Read from its own goroutine,
// which renders the next block. Pair it with synth.Renderer so other
// goroutines can send notes without touching the synthesizer:
//
//	r := synth.NewRenderer(s, 256)
//	p, err := output.NewPlayer(r, output.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	p.Start()
//	_ = r.Send(synth.NoteOnCommand{Channel: 0, Key: 60, Velocity: 1})
package output
