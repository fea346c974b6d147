// SPDX-License-Identifier: EPL-2.0

package synth

import "go.uber.org/zap"

type options struct {
	logger    *zap.Logger
	effects   bool
	polyphony int
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// Option adjusts how a Synthesizer is built.
type Option func(*options)

// WithLogger sets the logger used for lifecycle events. Nothing is logged on
// the render path.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEffects enables the engine's reverb and chorus. They are off by
// default so that silence renders as exact zeros.
func WithEffects(enabled bool) Option {
	return func(o *options) {
		o.effects = enabled
	}
}

// WithPolyphony caps the number of simultaneous voices. Zero keeps the
// engine default.
func WithPolyphony(voices int) Option {
	return func(o *options) {
		o.polyphony = voices
	}
}
