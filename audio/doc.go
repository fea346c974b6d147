// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives shared by the synthesizer
// and the file encoders.
//
// # Source Interface
//
// Everything that produces sound implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// synth.Stream turns a configured synthesizer into a Source, so rendered
// audio can be chained through a Resampler and handed to an Encoder.
//
// # Resampling
//
// The synthesis engine runs at 16 kHz or more. Resampler covers lower
// output rates (8 kHz telephony, for instance) with cubic interpolation:
//
//	resampler, err := audio.NewResampler(stream, 8000)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// # Encoder Registry
//
// Encoders are registered by format key so command-line tools can pick one
// from the output file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Encoder{})
//	registry.Register("aiff", aiff.Encoder{})
//	enc, ok := registry.Get("wav")
//
// Encoders patch container headers after the last sample and therefore
// write to an io.WriteSeeker. WriteSeekBuffer stands in for destinations
// that cannot seek, and WriteInts converts a Source to integer PCM blocks
// for go-audio based encoders.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by frame. 0.0 is silence.
//
// # Error Handling
//
// ReadSamples returns io.EOF when the stream ends; a final call may return
// both data and io.EOF:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
