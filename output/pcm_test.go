package output

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/ik5/sfsynth/internal/synthtest"
	"github.com/ik5/sfsynth/synth"
)

// fakeRenderer fills blocks with a counter so byte order can be checked.
type fakeRenderer struct {
	cfg     synth.OutputConfig
	ok      bool
	next    float32
	renders int
	err     error
}

func (f *fakeRenderer) Output() (synth.OutputConfig, bool) { return f.cfg, f.ok }

func (f *fakeRenderer) RenderInto(dst []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}

	f.renders++
	for i := range dst {
		dst[i] = f.next
		f.next++
	}

	return len(dst) / f.cfg.Mode.Channels(), nil
}

func TestNewPCMReader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		r     *fakeRenderer
		block int
		want  error
	}{
		{"not configured", &fakeRenderer{}, 16, synth.ErrNotConfigured},
		{"unweaved", &fakeRenderer{cfg: synth.OutputConfig{Mode: synth.StereoUnweaved, SampleRate: 44100}, ok: true}, 16, synth.ErrInvalidParameter},
		{"empty block", &fakeRenderer{cfg: synth.OutputConfig{Mode: synth.Mono, SampleRate: 44100}, ok: true}, 0, synth.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewPCMReader(tt.r, tt.block); !errors.Is(err, tt.want) {
				t.Errorf("NewPCMReader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPCMReader_Read(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{cfg: synth.OutputConfig{Mode: synth.StereoInterleaved, SampleRate: 48000}, ok: true}

	pcm, err := NewPCMReader(r, 4)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	// 12 odd-sized reads cover 3 blocks of 8 samples.
	var got []byte
	buf := make([]byte, 8)
	for len(got) < 3*8*bytesPerSample {
		n, err := pcm.Read(buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got = append(got, buf[:n]...)
	}

	if r.renders != 3 {
		t.Errorf("renders = %d, want 3", r.renders)
	}

	for i := range 24 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(got[i*4:]))
		if v != float32(i) {
			t.Fatalf("sample %d = %v, want %d", i, v, i)
		}
	}
}

func TestPCMReader_RenderError(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{cfg: synth.OutputConfig{Mode: synth.Mono, SampleRate: 48000}, ok: true}

	pcm, err := NewPCMReader(r, 4)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	r.err = synth.ErrClosed
	if _, err := pcm.Read(make([]byte, 16)); !errors.Is(err, synth.ErrClosed) {
		t.Errorf("Read() error = %v, want %v", err, synth.ErrClosed)
	}
}

func TestPCMReader_OutputChanged(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{cfg: synth.OutputConfig{Mode: synth.StereoInterleaved, SampleRate: 48000}, ok: true}

	pcm, err := NewPCMReader(r, 4)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	buf := make([]byte, 4*2*bytesPerSample)
	if _, err := pcm.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	r.cfg = synth.OutputConfig{Mode: synth.Mono, SampleRate: 48000}

	if n, err := pcm.Read(buf); n != 0 || !errors.Is(err, synth.ErrInvalidParameter) {
		t.Errorf("Read() = %d, %v, want 0, %v", n, err, synth.ErrInvalidParameter)
	}
}

func TestPCMReader_RendererReconfigured(t *testing.T) {
	t.Parallel()

	s, err := synth.LoadMemory(synthtest.SoundFont())
	if err != nil {
		t.Fatalf("LoadMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Configure(synth.StereoInterleaved, 44100, 0); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	r := synth.NewRenderer(s, 4)

	pcm, err := NewPCMReader(r, 32)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	if err := r.Send(synth.ConfigureCommand{Mode: synth.StereoInterleaved, SampleRate: 22050}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if _, err := pcm.Read(make([]byte, 256)); !errors.Is(err, synth.ErrInvalidParameter) {
		t.Errorf("Read() error = %v, want %v", err, synth.ErrInvalidParameter)
	}
}
