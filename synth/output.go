// SPDX-License-Identifier: EPL-2.0

package synth

// OutputMode selects the channel layout of rendered blocks.
type OutputMode int

const (
	// StereoInterleaved renders L,R pairs per frame.
	StereoInterleaved OutputMode = iota
	// StereoUnweaved renders all left samples followed by all right samples.
	StereoUnweaved
	// Mono renders one sample per frame.
	Mono
)

// Channels returns the number of output channels for the mode, or 0 for an
// unknown mode.
func (m OutputMode) Channels() int {
	switch m {
	case StereoInterleaved, StereoUnweaved:
		return 2
	case Mono:
		return 1
	default:
		return 0
	}
}

func (m OutputMode) String() string {
	switch m {
	case StereoInterleaved:
		return "stereo-interleaved"
	case StereoUnweaved:
		return "stereo-unweaved"
	case Mono:
		return "mono"
	default:
		return "unknown"
	}
}

// OutputConfig is the output format last applied with Configure.
type OutputConfig struct {
	Mode       OutputMode
	SampleRate int
	GainDB     float64
}

const (
	// MaxSampleRate is the largest rate Configure accepts (16-bit range).
	MaxSampleRate = 65535
	// MinEngineSampleRate is the lowest rate the synthesis engine runs at.
	// Lower output rates are resampled from it.
	MinEngineSampleRate = 16000
)
