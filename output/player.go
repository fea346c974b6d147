// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/sfsynth/synth"
	"go.uber.org/zap"
)

// Options tunes the playback sink.
type Options struct {
	// BlockFrames is the number of frames rendered per refill. Defaults to 512.
	BlockFrames int
	// BufferSize is the driver buffer length. Zero lets oto choose.
	BufferSize time.Duration
	Logger     *zap.Logger
}

// Player streams a renderer to the default audio device through oto.
// oto allows one context per process, so only one Player may exist at a
// time.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	pcm    *PCMReader
	logger *zap.Logger
}

// NewPlayer opens the audio device at the renderer's configured rate and
// channel count. Commands for the synthesizer must go through r (usually a
// synth.Renderer) once playback starts.
func NewPlayer(r synth.BlockRenderer, opts Options) (*Player, error) {
	if opts.BlockFrames == 0 {
		opts.BlockFrames = 512
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	pcm, err := NewPCMReader(r, opts.BlockFrames)
	if err != nil {
		return nil, err
	}

	cfg, _ := r.Output()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: pcm.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDevice, err)
	}

	<-ready

	opts.Logger.Info("audio output opened",
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("channels", pcm.Channels()),
		zap.Int("block_frames", opts.BlockFrames),
	)

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(pcm),
		pcm:    pcm,
		logger: opts.Logger,
	}, nil
}

// Start begins pulling audio. It returns immediately.
func (p *Player) Start() {
	p.player.Play()
}

// Pause stops pulling audio until Start is called again.
func (p *Player) Pause() {
	p.player.Pause()
}

func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Close stops playback and suspends the device.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	if err := p.ctx.Suspend(); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	p.logger.Info("audio output closed")

	return nil
}
