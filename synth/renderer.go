// SPDX-License-Identifier: EPL-2.0

package synth

// Command is a deferred operation applied by the goroutine that owns a
// Synthesizer.
type Command interface {
	Apply(s *Synthesizer) error
}

type NoteOnCommand struct {
	Channel  int
	Key      int
	Velocity float32
}

func (c NoteOnCommand) Apply(s *Synthesizer) error {
	return s.NoteOn(c.Channel, c.Key, c.Velocity)
}

type NoteOffCommand struct {
	Channel int
	Key     int
}

func (c NoteOffCommand) Apply(s *Synthesizer) error {
	return s.NoteOff(c.Channel, c.Key)
}

type ChannelNotesOffCommand struct {
	Channel int
}

func (c ChannelNotesOffCommand) Apply(s *Synthesizer) error {
	return s.ChannelNotesOff(c.Channel)
}

type ChannelSoundOffCommand struct {
	Channel int
}

func (c ChannelSoundOffCommand) Apply(s *Synthesizer) error {
	return s.ChannelSoundOff(c.Channel)
}

type AllNotesOffCommand struct{}

func (AllNotesOffCommand) Apply(s *Synthesizer) error {
	return s.AllNotesOff()
}

type PresetCommand struct {
	Channel    int
	Preset     int
	Percussion bool
}

func (c PresetCommand) Apply(s *Synthesizer) error {
	return s.SetChannelPreset(c.Channel, c.Preset, c.Percussion)
}

type ControlChangeCommand struct {
	Channel    int
	Controller int
	Value      int
}

func (c ControlChangeCommand) Apply(s *Synthesizer) error {
	return s.ControlChange(c.Channel, c.Controller, c.Value)
}

type PitchBendCommand struct {
	Channel int
	Value   int
}

func (c PitchBendCommand) Apply(s *Synthesizer) error {
	return s.PitchBend(c.Channel, c.Value)
}

type ConfigureCommand struct {
	Mode       OutputMode
	SampleRate int
	GainDB     float64
}

func (c ConfigureCommand) Apply(s *Synthesizer) error {
	return s.Configure(c.Mode, c.SampleRate, c.GainDB)
}

// Renderer keeps a Synthesizer on one goroutine. Other goroutines queue
// commands with Send, which never blocks; the owner applies everything
// pending at the start of each Render or RenderInto call, so rendering never
// waits on a lock.
//
// Only Send may be called from goroutines other than the owner.
type Renderer struct {
	synth    *Synthesizer
	commands chan Command
	onError  func(Command, error)
}

// NewRenderer takes ownership of s. queueSize bounds the number of commands
// waiting between two render calls.
func NewRenderer(s *Synthesizer, queueSize int) *Renderer {
	if queueSize < 1 {
		queueSize = 1
	}

	return &Renderer{
		synth:    s,
		commands: make(chan Command, queueSize),
	}
}

// OnError registers fn to receive commands that failed when applied. It must
// be set before the first render call.
func (r *Renderer) OnError(fn func(Command, error)) {
	r.onError = fn
}

// Send queues cmd for the owner. It returns ErrQueueFull instead of waiting
// when the queue has no room.
func (r *Renderer) Send(cmd Command) error {
	select {
	case r.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain applies the commands queued when it was called and returns how many
// were applied. Commands sent while draining wait for the next call.
func (r *Renderer) Drain() int {
	pending := len(r.commands)

	for range pending {
		cmd := <-r.commands
		if err := cmd.Apply(r.synth); err != nil && r.onError != nil {
			r.onError(cmd, err)
		}
	}

	return pending
}

// Render drains pending commands then renders frames.
func (r *Renderer) Render(frames int) ([]float32, error) {
	r.Drain()
	return r.synth.Render(frames)
}

// RenderInto drains pending commands then fills dst.
func (r *Renderer) RenderInto(dst []float32) (int, error) {
	r.Drain()
	return r.synth.RenderInto(dst)
}

// Output reports the owned synthesizer's output configuration.
func (r *Renderer) Output() (OutputConfig, bool) {
	return r.synth.Output()
}

// Synthesizer returns the owned handle for use on the owner goroutine.
func (r *Renderer) Synthesizer() *Synthesizer {
	return r.synth
}
