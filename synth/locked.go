// SPDX-License-Identifier: EPL-2.0

package synth

import "sync"

// Locked guards a Synthesizer with a mutex so any goroutine may use it.
// The render goroutine may wait for the lock while another goroutine sends
// events; prefer Renderer for hard real-time callbacks.
type Locked struct {
	mtx   sync.Mutex
	synth *Synthesizer
}

// NewLocked takes ownership of s.
func NewLocked(s *Synthesizer) *Locked {
	return &Locked{synth: s}
}

// Do runs fn with exclusive access to the synthesizer. fn must not keep the
// pointer after it returns.
func (l *Locked) Do(fn func(*Synthesizer) error) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return fn(l.synth)
}

// Render renders frames under the lock.
func (l *Locked) Render(frames int) ([]float32, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.synth.Render(frames)
}

// NoteOn starts a note under the lock.
func (l *Locked) NoteOn(channel, key int, velocity float32) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.synth.NoteOn(channel, key, velocity)
}

// NoteOff releases a note under the lock.
func (l *Locked) NoteOff(channel, key int) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.synth.NoteOff(channel, key)
}

// Close closes the synthesizer. Later calls through l return ErrClosed.
func (l *Locked) Close() error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.synth.Close()
}
