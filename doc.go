// SPDX-License-Identifier: EPL-2.0

// Package sfsynth renders music from SoundFont 2 instruments.
//
// The synth subpackage holds the synthesizer itself; this package ties it
// to the audio pipeline and the file encoders.
//
// # Quick Start
//
//	s, _ := synth.LoadFile("gm.sf2")
//	defer s.Close()
//
//	_ = s.Configure(synth.StereoInterleaved, 44100, 0)
//	_ = s.NoteOn(0, 60, 1)
//
//	// Two seconds of the held note as a 16-bit WAV file.
//	stream, _ := synth.NewStream(s, 2*44100)
//	out, _ := os.Create("c4.wav")
//	enc, _ := sfsynth.DefaultRegistry(16).Get("wav")
//	_ = sfsynth.Export(out, enc, stream, 0)
//
// # Packages
//
//   - synth: SoundFont loading, output configuration, note control and
//     rendering, plus Locked and Renderer for concurrent use
//   - audio: the Source interface, Resampler and the encoder Registry
//   - formats/wav, formats/aiff: PCM encoders built on go-audio
//   - sequencer: Standard MIDI File playback
//   - output: live playback through the system audio device
//   - remote: synthesizer control over NATS
//
// # Audio Processing Pipeline
//
// A configured synthesizer becomes an audio.Source through synth.NewStream.
// Sources chain:
//
//	stream, _ := synth.NewStream(s, 0)
//	telephony, _ := audio.NewResampler(stream, 8000)
//	buf := make([]float32, 4096)
//	n, err := telephony.ReadSamples(buf)
//
// ResampleToPCM16 collects such a pipeline into 16-bit samples in one call.
//
// # Examples
//
// The examples/sfrender command renders notes or MIDI files to WAV and AIFF,
// and can play live from NATS events.
package sfsynth
