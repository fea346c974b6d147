package remote

import (
	"errors"
	"sync"
	"testing"

	"github.com/ik5/sfsynth/synth"
	"github.com/nats-io/nats.go"
)

type mockConn struct {
	mu       sync.Mutex
	handlers map[string][]nats.MsgHandler
	failWith error
	closed   bool
}

func newMockConn() *mockConn {
	return &mockConn{handlers: make(map[string][]nats.MsgHandler)}
}

func (m *mockConn) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	m.handlers[subject] = append(m.handlers[subject], cb)

	return &nats.Subscription{}, nil
}

func (m *mockConn) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
}

func (m *mockConn) publish(subject, data string) {
	m.mu.Lock()
	handlers := m.handlers[subject]
	m.mu.Unlock()

	for _, h := range handlers {
		h(&nats.Msg{Subject: subject, Data: []byte(data)})
	}
}

type sinkFunc func(synth.Command) error

func (f sinkFunc) Send(cmd synth.Command) error { return f(cmd) }

func TestSubscriber_Forwards(t *testing.T) {
	t.Parallel()

	conn := newMockConn()

	var got []synth.Command
	sub := NewSubscriber(conn, "synth.events", sinkFunc(func(cmd synth.Command) error {
		got = append(got, cmd)
		return nil
	}), nil)

	if err := sub.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	conn.publish("synth.events", `{"type":"note_on","channel":1,"key":60,"velocity":0.5}`)
	conn.publish("synth.events", `[{"type":"preset","channel":9,"preset":8,"percussion":true},{"type":"pitch_bend","channel":2,"value":8192}]`)
	conn.publish("other.subject", `{"type":"all_notes_off"}`)

	want := []synth.Command{
		synth.NoteOnCommand{Channel: 1, Key: 60, Velocity: 0.5},
		synth.PresetCommand{Channel: 9, Preset: 8, Percussion: true},
		synth.PitchBendCommand{Channel: 2, Value: 8192},
	}

	if len(got) != len(want) {
		t.Fatalf("forwarded %d commands, want %d: %+v", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if received, dropped := sub.Stats(); received != 3 || dropped != 0 {
		t.Errorf("Stats() = %d, %d, want 3, 0", received, dropped)
	}
}

func TestSubscriber_Drops(t *testing.T) {
	t.Parallel()

	conn := newMockConn()
	sub := NewSubscriber(conn, "synth.events", sinkFunc(func(synth.Command) error {
		return synth.ErrQueueFull
	}), nil)

	if err := sub.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	conn.publish("synth.events", `not json`)
	conn.publish("synth.events", `{"type":"explode"}`)
	conn.publish("synth.events", `{"type":"note_off","key":60}`)

	if received, dropped := sub.Stats(); received != 2 || dropped != 3 {
		t.Errorf("Stats() = %d, %d, want 2, 3", received, dropped)
	}
}

func TestSubscriber_StartError(t *testing.T) {
	t.Parallel()

	conn := newMockConn()
	conn.failWith = nats.ErrConnectionClosed

	sub := NewSubscriber(conn, "synth.events", sinkFunc(func(synth.Command) error { return nil }), nil)
	if err := sub.Start(); !errors.Is(err, nats.ErrConnectionClosed) {
		t.Errorf("Start() error = %v, want %v", err, nats.ErrConnectionClosed)
	}

	sub.Close()
	if !conn.closed {
		t.Error("Close() did not close the connection")
	}
}

func TestSubscriber_Renderer(t *testing.T) {
	t.Parallel()

	conn := newMockConn()
	r := synth.NewRenderer(nil, 4)

	sub := NewSubscriber(conn, "synth.events", r, nil)
	if err := sub.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	conn.publish("synth.events", `{"type":"note_on","key":60,"velocity":1}`)

	if _, dropped := sub.Stats(); dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
}
