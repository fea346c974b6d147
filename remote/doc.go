// SPDX-License-Identifier: EPL-2.0

// Package remote drives a synthesizer from NATS messages.
//
// Publishers send JSON events, one object or an array per message:
//
//	nats pub synth.events '{"type":"note_on","channel":0,"key":60,"velocity":0.8}'
//
// A Subscriber converts each event to a synth.Command and queues it on a
// synth.Renderer, which applies it before the next rendered block.
package remote
