// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ik5/sfsynth/audio"
	"github.com/ik5/sfsynth/utils"
	"github.com/sinshu/go-meltysynth/meltysynth"
	"go.uber.org/zap"
)

const (
	// engineChannels is the number of MIDI channels the engine exposes.
	engineChannels = 16
	// percussionChannel is the engine's fixed GM drum channel (MIDI channel 10).
	percussionChannel = 9
	// defaultEngineRate is the rate the engine runs at until Configure.
	defaultEngineRate = 44100
	// sourceBlockFrames caps how far the engine runs ahead of a resampled
	// output, which bounds the delay of events sent between renders.
	sourceBlockFrames = 64
)

// noCopy lets `go vet` report accidental copies of a Synthesizer.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Synthesizer owns one SoundFont synthesis engine instance.
//
// A Synthesizer is not safe for concurrent use. Every method mutates engine
// state, so callers sharing a handle between goroutines must either guard it
// with a mutex (see Locked) or keep it on a single render goroutine that
// drains a command queue between blocks (see Renderer). The latter never
// blocks the render path and is the better fit for audio callbacks.
//
// The handle may be handed from one goroutine to another. It must not be
// copied; always pass the pointer returned by Load, LoadMemory or LoadFile.
type Synthesizer struct {
	_ noCopy

	font   *meltysynth.SoundFont
	engine *meltysynth.Synthesizer
	opts   options

	engineRate   int
	masterVolume float32

	output     OutputConfig
	configured bool
	closed     bool

	channels [engineChannels]channelState

	left  []float32
	right []float32

	// resampler converts engine frames when the output rate is below
	// MinEngineSampleRate; nil otherwise.
	resampler *audio.Resampler
	frames    []float32
}

// Load parses SoundFont data from r.
func Load(r io.Reader, opts ...Option) (*Synthesizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	font, err := meltysynth.NewSoundFont(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	s := &Synthesizer{
		font: font,
		opts: o,
	}

	engine, err := s.newEngine(defaultEngineRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	s.engine = engine
	s.engineRate = defaultEngineRate
	s.masterVolume = engine.MasterVolume

	o.logger.Debug("soundfont loaded",
		zap.Int("presets", len(font.Presets)),
		zap.Int("instruments", len(font.Instruments)),
	)

	return s, nil
}

// LoadMemory parses SoundFont data held in memory. data is not retained.
func LoadMemory(data []byte, opts ...Option) (*Synthesizer, error) {
	return Load(bytes.NewReader(data), opts...)
}

// LoadFile parses the SoundFont file at path.
func LoadFile(path string, opts ...Option) (*Synthesizer, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidPath, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	return Load(f, opts...)
}

func (s *Synthesizer) newEngine(sampleRate int) (*meltysynth.Synthesizer, error) {
	settings := meltysynth.NewSynthesizerSettings(int32(sampleRate))
	settings.EnableReverbAndChorus = s.opts.effects
	if s.opts.polyphony > 0 {
		settings.MaximumPolyphony = int32(s.opts.polyphony)
	}

	return meltysynth.NewSynthesizer(s.font, settings)
}

// Configure sets the output layout, sample rate and global gain.
//
// sampleRate must lie in [1, MaxSampleRate]; gainDB may be any finite value.
// Rates below MinEngineSampleRate run the engine at MinEngineSampleRate and
// resample its output. Calling Configure again replaces the previous
// settings. When the rate is unchanged sounding voices carry on; a new rate
// restarts the engine, which drops sounding voices but keeps channel presets.
// On error the previous configuration stays in effect.
func (s *Synthesizer) Configure(mode OutputMode, sampleRate int, gainDB float64) error {
	if s.closed {
		return ErrClosed
	}

	if mode.Channels() == 0 {
		return fmt.Errorf("%w: output mode %d", ErrInvalidParameter, mode)
	}

	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %d outside 1..%d", ErrInvalidParameter, sampleRate, MaxSampleRate)
	}

	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return fmt.Errorf("%w: gain %v dB", ErrInvalidParameter, gainDB)
	}

	engineRate := max(sampleRate, MinEngineSampleRate)
	rateChanged := !s.configured || sampleRate != s.output.SampleRate

	if engineRate != s.engineRate {
		engine, err := s.newEngine(engineRate)
		if err != nil {
			return fmt.Errorf("%w: sample rate %d: %w", ErrInvalidParameter, sampleRate, err)
		}

		s.engine = engine
		s.engineRate = engineRate
		s.replayChannels()
		rateChanged = true
	}

	if rateChanged {
		s.resampler = nil
		if sampleRate != engineRate {
			r, err := audio.NewResampler(&engineSource{s: s}, sampleRate)
			if err != nil {
				return fmt.Errorf("%w: sample rate %d: %w", ErrInvalidParameter, sampleRate, err)
			}
			s.resampler = r
		}
	}

	s.engine.MasterVolume = s.masterVolume * float32(utils.DecibelsToGain(gainDB))
	s.output = OutputConfig{Mode: mode, SampleRate: sampleRate, GainDB: gainDB}
	s.configured = true

	s.opts.logger.Debug("output configured",
		zap.Stringer("mode", mode),
		zap.Int("sample_rate", sampleRate),
		zap.Float64("gain_db", gainDB),
	)

	return nil
}

// Output returns the current output configuration and whether Configure has
// succeeded at least once.
func (s *Synthesizer) Output() (OutputConfig, bool) {
	return s.output, s.configured
}

// Render returns frames sample frames in the configured layout, in a freshly
// allocated slice of frames*channels values.
func (s *Synthesizer) Render(frames int) ([]float32, error) {
	if err := s.checkRender(); err != nil {
		return nil, err
	}

	if frames < 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrInvalidParameter, frames)
	}

	dst := make([]float32, frames*s.output.Mode.Channels())
	s.render(dst, frames)

	return dst, nil
}

// RenderInto fills dst in the configured layout and returns the number of
// frames rendered. len(dst) must be a multiple of the channel count.
func (s *Synthesizer) RenderInto(dst []float32) (int, error) {
	if err := s.checkRender(); err != nil {
		return 0, err
	}

	channels := s.output.Mode.Channels()
	if len(dst)%channels != 0 {
		return 0, fmt.Errorf("%w: buffer of %d samples for %d channels", ErrInvalidParameter, len(dst), channels)
	}

	frames := len(dst) / channels
	s.render(dst, frames)

	return frames, nil
}

func (s *Synthesizer) checkRender() error {
	if s.closed {
		return ErrClosed
	}

	if !s.configured {
		return ErrNotConfigured
	}

	return nil
}

func (s *Synthesizer) render(dst []float32, frames int) {
	if frames == 0 {
		return
	}

	if s.resampler != nil {
		s.renderResampled(dst, frames)
		return
	}

	if s.output.Mode == StereoUnweaved {
		s.engine.Render(dst[:frames], dst[frames:2*frames])
		return
	}

	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}

	left, right := s.left[:frames], s.right[:frames]
	s.engine.Render(left, right)

	if s.output.Mode == Mono {
		for i := range frames {
			dst[i] = (left[i] + right[i]) * 0.5
		}
		return
	}

	for i := range frames {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}
}

func (s *Synthesizer) renderResampled(dst []float32, frames int) {
	if cap(s.frames) < 2*frames {
		s.frames = make([]float32, 2*frames)
	}

	// engineSource never ends, so the resampler always fills the buffer.
	buf := s.frames[:2*frames]
	_, _ = s.resampler.ReadSamples(buf)

	switch s.output.Mode {
	case StereoInterleaved:
		copy(dst, buf)
	case StereoUnweaved:
		for i := range frames {
			dst[i] = buf[2*i]
			dst[frames+i] = buf[2*i+1]
		}
	case Mono:
		for i := range frames {
			dst[i] = (buf[2*i] + buf[2*i+1]) * 0.5
		}
	}
}

// engineSource serves the engine's stereo output at the engine rate to a
// resampler, a few frames at a time.
type engineSource struct {
	s *Synthesizer
}

func (e *engineSource) SampleRate() int { return e.s.engineRate }
func (e *engineSource) Channels() int   { return 2 }
func (e *engineSource) BufSize() int    { return sourceBlockFrames * 2 }
func (e *engineSource) Close() error    { return nil }

func (e *engineSource) ReadSamples(dst []float32) (int, error) {
	frames := min(len(dst)/2, sourceBlockFrames)

	s := e.s
	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}

	left, right := s.left[:frames], s.right[:frames]
	s.engine.Render(left, right)

	for i := range frames {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}

	return frames * 2, nil
}

// NoteOn starts a voice for key on channel using the channel's preset.
// key must be 0..127 and velocity 0..1; a velocity that rounds to zero acts
// as NoteOff. Channels beyond the engine's sixteen are ignored.
func (s *Synthesizer) NoteOn(channel, key int, velocity float32) error {
	if err := s.checkChannel(channel); err != nil {
		return err
	}

	if err := checkKey(key); err != nil {
		return err
	}

	if !(velocity >= 0 && velocity <= 1) {
		return fmt.Errorf("%w: velocity %v outside 0..1", ErrInvalidParameter, velocity)
	}

	if channel >= engineChannels {
		return nil
	}

	s.engine.NoteOn(int32(channel), int32(key), int32(math.Round(float64(velocity)*127)))

	return nil
}

// NoteOff starts the release phase of key on channel.
func (s *Synthesizer) NoteOff(channel, key int) error {
	if err := s.checkChannel(channel); err != nil {
		return err
	}

	if err := checkKey(key); err != nil {
		return err
	}

	if channel >= engineChannels {
		return nil
	}

	s.engine.NoteOff(int32(channel), int32(key))

	return nil
}

// ChannelNotesOff releases every voice on channel.
func (s *Synthesizer) ChannelNotesOff(channel int) error {
	return s.controller(channel, ccAllNotesOff, 0)
}

// AllNotesOff releases every voice on every channel.
func (s *Synthesizer) AllNotesOff() error {
	return s.everyChannel(ccAllNotesOff)
}

// ChannelSoundOff silences every voice on channel without a release tail.
func (s *Synthesizer) ChannelSoundOff(channel int) error {
	return s.controller(channel, ccAllSoundOff, 0)
}

// AllSoundOff silences every voice on every channel without a release tail.
func (s *Synthesizer) AllSoundOff() error {
	return s.everyChannel(ccAllSoundOff)
}

func (s *Synthesizer) everyChannel(controller int) error {
	if s.closed {
		return ErrClosed
	}

	for ch := range engineChannels {
		s.engine.ProcessMidiMessage(int32(ch), statusControlChange, int32(controller), 0)
	}

	return nil
}

// ControlChange sends a MIDI controller message to channel. A bank select
// (controller 0) also becomes the bank the next SetChannelPreset searches.
func (s *Synthesizer) ControlChange(channel, controller, value int) error {
	if controller < 0 || controller > 127 {
		return fmt.Errorf("%w: controller %d outside 0..127", ErrInvalidParameter, controller)
	}

	if value < 0 || value > 127 {
		return fmt.Errorf("%w: controller value %d outside 0..127", ErrInvalidParameter, value)
	}

	return s.controller(channel, controller, value)
}

func (s *Synthesizer) controller(channel, controller, value int) error {
	if err := s.checkChannel(channel); err != nil {
		return err
	}

	if channel >= engineChannels {
		return nil
	}

	if controller == ccBankSelect {
		s.channels[channel].selected = value
	}

	s.engine.ProcessMidiMessage(int32(channel), statusControlChange, int32(controller), int32(value))

	return nil
}

// PitchBend sets the 14-bit pitch wheel position of channel; 8192 is centre.
func (s *Synthesizer) PitchBend(channel, value int) error {
	if err := s.checkChannel(channel); err != nil {
		return err
	}

	if value < 0 || value > maxPitchBend {
		return fmt.Errorf("%w: pitch bend %d outside 0..%d", ErrInvalidParameter, value, maxPitchBend)
	}

	if channel >= engineChannels {
		return nil
	}

	s.engine.ProcessMidiMessage(int32(channel), statusPitchBend, int32(value&0x7f), int32(value>>7))

	return nil
}

// PresetCount returns the number of presets in the loaded SoundFont.
func (s *Synthesizer) PresetCount() int {
	if s.font == nil {
		return 0
	}

	return len(s.font.Presets)
}

// Close releases the engine. It is safe to call more than once; any other
// method called afterwards returns ErrClosed.
func (s *Synthesizer) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.engine = nil
	s.font = nil
	s.left, s.right = nil, nil
	s.resampler, s.frames = nil, nil

	s.opts.logger.Debug("synthesizer closed")

	return nil
}

func (s *Synthesizer) checkChannel(channel int) error {
	if s.closed {
		return ErrClosed
	}

	if channel < 0 {
		return fmt.Errorf("%w: channel %d", ErrInvalidParameter, channel)
	}

	return nil
}

func checkKey(key int) error {
	if key < 0 || key > 127 {
		return fmt.Errorf("%w: key %d outside 0..127", ErrInvalidParameter, key)
	}

	return nil
}
