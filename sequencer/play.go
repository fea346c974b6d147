// SPDX-License-Identifier: EPL-2.0

package sequencer

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/sfsynth/synth"
	"go.uber.org/zap"
)

// Player renders sequences offline.
type Player struct {
	logger *zap.Logger
}

// NewPlayer returns a Player. A nil logger disables logging.
func NewPlayer(logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Player{logger: logger}
}

// Play renders seq on s followed by tail of release time and returns the
// samples in the layout s was configured with. Commands the synthesizer
// rejects are logged and skipped.
func (p *Player) Play(s *synth.Synthesizer, seq *Sequence, tail time.Duration) ([]float32, error) {
	cfg, ok := s.Output()
	if !ok {
		return nil, synth.ErrNotConfigured
	}

	if cfg.Mode == synth.StereoUnweaved {
		return nil, fmt.Errorf("%w: sequences render interleaved layouts, got %s", synth.ErrInvalidParameter, cfg.Mode)
	}

	if tail < 0 {
		return nil, fmt.Errorf("%w: tail %v", synth.ErrInvalidParameter, tail)
	}

	channels := cfg.Mode.Channels()
	total := frameAt(seq.Length+tail, cfg.SampleRate)
	out := make([]float32, total*channels)

	cursor := 0
	for _, ev := range seq.Events {
		next := min(frameAt(ev.At, cfg.SampleRate), total)
		if next > cursor {
			if _, err := s.RenderInto(out[cursor*channels : next*channels]); err != nil {
				return nil, err
			}
			cursor = next
		}

		if err := ev.Command.Apply(s); err != nil {
			p.logger.Debug("midi event skipped",
				zap.Duration("at", ev.At),
				zap.String("command", fmt.Sprintf("%T", ev.Command)),
				zap.Error(err),
			)
		}
	}

	if total > cursor {
		if _, err := s.RenderInto(out[cursor*channels:]); err != nil {
			return nil, err
		}
	}

	p.logger.Debug("sequence rendered",
		zap.Int("events", len(seq.Events)),
		zap.Int("frames", total),
		zap.Duration("length", seq.Length+tail),
	)

	return out, nil
}

// Play renders seq with a Player that does not log.
func Play(s *synth.Synthesizer, seq *Sequence, tail time.Duration) ([]float32, error) {
	return NewPlayer(nil).Play(s, seq, tail)
}

func frameAt(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}
