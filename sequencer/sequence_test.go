package sequencer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/sfsynth/internal/synthtest"
	"github.com/ik5/sfsynth/synth"
)

// song is a single track file at 96 ticks per quarter note and 120 BPM:
// one note held for half a second, then a pitch wheel reset and an all
// notes off, with the track ending at one second.
var song = smfFile(96, []byte{
	0x00, 0xff, 0x51, 0x03, 0x07, 0xa1, 0x20, // tempo 500000 µs per quarter
	0x00, 0xc0, 0x10, // program 16
	0x00, 0xb0, 0x07, 0x64, // volume 100
	0x00, 0x90, 0x3c, 0x64, // note on C4
	0x60, 0x80, 0x3c, 0x40, // note off after a quarter
	0x00, 0xe0, 0x00, 0x40, // pitch bend centre
	0x00, 0xb0, 0x7b, 0x00, // all notes off
	0x60, 0xff, 0x2f, 0x00, // end of track
})

func smfFile(division uint16, track []byte) []byte {
	buf := new(bytes.Buffer)

	buf.WriteString("MThd")
	_ = binary.Write(buf, binary.BigEndian, []uint32{6})
	_ = binary.Write(buf, binary.BigEndian, []uint16{0, 1, division})

	buf.WriteString("MTrk")
	_ = binary.Write(buf, binary.BigEndian, uint32(len(track)))
	buf.Write(track)

	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	t.Parallel()

	seq, err := Load(bytes.NewReader(song))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []Event{
		{0, synth.PresetCommand{Channel: 0, Preset: 16}},
		{0, synth.ControlChangeCommand{Channel: 0, Controller: 7, Value: 100}},
		{0, synth.NoteOnCommand{Channel: 0, Key: 60, Velocity: 100.0 / 127}},
		{500 * time.Millisecond, synth.NoteOffCommand{Channel: 0, Key: 60}},
		{500 * time.Millisecond, synth.PitchBendCommand{Channel: 0, Value: 8192}},
		{500 * time.Millisecond, synth.ChannelNotesOffCommand{Channel: 0}},
	}

	if len(seq.Events) != len(want) {
		t.Fatalf("len(Events) = %d, want %d: %+v", len(seq.Events), len(want), seq.Events)
	}

	for i := range want {
		if seq.Events[i] != want[i] {
			t.Errorf("Events[%d] = %+v, want %+v", i, seq.Events[i], want[i])
		}
	}

	if seq.Length < 500*time.Millisecond {
		t.Errorf("Length = %v, want at least 500ms", seq.Length)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Load(bytes.NewReader([]byte("MThd garbage")))
	if !errors.Is(err, ErrParse) {
		t.Errorf("Load() error = %v, want %v", err, ErrParse)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "song.mid")
	if err := os.WriteFile(path, song, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	seq, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if len(seq.Events) != 6 {
		t.Errorf("len(Events) = %d, want 6", len(seq.Events))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.mid")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestConvert_DrumChannel(t *testing.T) {
	t.Parallel()

	cmd, ok := convert([]byte{0xc9, 0x00})
	if !ok {
		t.Fatal("convert(program change) ok = false")
	}

	want := synth.PresetCommand{Channel: 9, Preset: 0, Percussion: true}
	if cmd != want {
		t.Errorf("convert() = %+v, want %+v", cmd, want)
	}

	cmd, _ = convert([]byte{0xb2, 0x78, 0x00})
	if cmd != (synth.ChannelSoundOffCommand{Channel: 2}) {
		t.Errorf("convert(CC 120) = %+v, want ChannelSoundOffCommand", cmd)
	}

	if _, ok := convert([]byte{0xf8}); ok {
		t.Error("convert(timing clock) ok = true, want false")
	}
}

func newSynth(t *testing.T, mode synth.OutputMode) *synth.Synthesizer {
	t.Helper()

	s, err := synth.LoadMemory(synthtest.SoundFont(
		synthtest.Preset{Name: "Piano", Bank: 0, Program: 0},
		synthtest.Preset{Name: "Organ", Bank: 0, Program: 16},
	))
	if err != nil {
		t.Fatalf("LoadMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Configure(mode, 48000, 0); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	return s
}

func TestPlay(t *testing.T) {
	t.Parallel()

	seq, err := Load(bytes.NewReader(song))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out, err := Play(newSynth(t, synth.Mono), seq, time.Second)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := frameAt(seq.Length+time.Second, 48000)
	if len(out) != want {
		t.Fatalf("len(Play()) = %d, want %d", len(out), want)
	}

	var loud bool
	for _, v := range out[:24000] {
		if v != 0 {
			loud = true
			break
		}
	}

	if !loud {
		t.Error("first half second is silent, want the held note")
	}
}

func TestPlay_Errors(t *testing.T) {
	t.Parallel()

	s, err := synth.LoadMemory(synthtest.SoundFont())
	if err != nil {
		t.Fatalf("LoadMemory() error = %v", err)
	}
	defer s.Close()

	if _, err := Play(s, &Sequence{}, 0); !errors.Is(err, synth.ErrNotConfigured) {
		t.Errorf("Play(unconfigured) error = %v, want %v", err, synth.ErrNotConfigured)
	}

	if _, err := Play(newSynth(t, synth.StereoUnweaved), &Sequence{}, 0); !errors.Is(err, synth.ErrInvalidParameter) {
		t.Errorf("Play(unweaved) error = %v, want %v", err, synth.ErrInvalidParameter)
	}

	if _, err := Play(newSynth(t, synth.Mono), &Sequence{}, -time.Second); !errors.Is(err, synth.ErrInvalidParameter) {
		t.Errorf("Play(negative tail) error = %v, want %v", err, synth.ErrInvalidParameter)
	}
}

func TestPlay_SkipsRejectedCommands(t *testing.T) {
	t.Parallel()

	seq := &Sequence{
		Events: []Event{
			{0, synth.NoteOnCommand{Channel: 0, Key: 300, Velocity: 1}},
			{10 * time.Millisecond, synth.NoteOnCommand{Channel: 0, Key: 60, Velocity: 1}},
		},
		Length: 100 * time.Millisecond,
	}

	out, err := Play(newSynth(t, synth.StereoInterleaved), seq, 0)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(out) != 2*4800 {
		t.Fatalf("len(Play()) = %d, want 9600", len(out))
	}

	for i, v := range out[:2*480] {
		if v != 0 {
			t.Fatalf("sample %d = %v before the first valid note, want 0", i, v)
		}
	}
}
