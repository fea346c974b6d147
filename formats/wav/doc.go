// SPDX-License-Identifier: EPL-2.0

// Package wav encodes audio.Source streams as PCM WAV files using
// github.com/go-audio/wav.
//
// # Usage
//
//	f, err := os.Create("out.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	err = wav.Encoder{BitDepth: 24}.Encode(f, stream)
//
// Samples outside [-1, 1] are clipped. The encoder seeks back to patch the
// RIFF and data chunk sizes, so the destination must implement
// io.WriteSeeker. For pipes, encode into an audio.WriteSeekBuffer first.
package wav
