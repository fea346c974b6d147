// SPDX-License-Identifier: EPL-2.0

// Package synthtest builds small SoundFont 2 files for tests.
//
// Every preset produced here plays the same looped sine instrument, so the
// files stay a few hundred bytes long while still exercising the whole
// RIFF structure the engine parses. Presets tell themselves apart by pitch:
// Transpose shifts a preset by whole semitones.
package synthtest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Preset names one preset header of the generated file.
type Preset struct {
	Name      string
	Bank      int
	Program   int
	Transpose int
}

// DefaultPreset is used when SoundFont is called without presets.
var DefaultPreset = Preset{Name: "Sine", Bank: 0, Program: 0}

const (
	sinePeriod  = 64
	samplePad   = 46
	sampleRate  = 22050
	rootKey     = 60
	amplitude   = 16000
	genCoarse   = 51
	genInst     = 41
	genRelease  = 38
	genModes    = 54
	genSampleID = 53
	monoSample  = 1
	loopForever = 1
)

// BaseFrequency is the pitch in Hz of key 60 on an untransposed preset.
const BaseFrequency = float64(sampleRate) / sinePeriod

// SoundFont returns the bytes of a valid SoundFont 2 file holding presets.
func SoundFont(presets ...Preset) []byte {
	if len(presets) == 0 {
		presets = []Preset{DefaultPreset}
	}

	body := new(bytes.Buffer)
	body.WriteString("sfbk")
	body.Write(list("INFO", infoChunks()))
	body.Write(list("sdta", chunk("smpl", sampleData())))
	body.Write(list("pdta", presetData(presets)))

	return chunk("RIFF", body.Bytes())
}

// WriteFile stores a generated SoundFont in a temporary directory and
// returns its path.
func WriteFile(tb testing.TB, presets ...Preset) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.sf2")
	if err := os.WriteFile(path, SoundFont(presets...), 0o600); err != nil {
		tb.Fatalf("write soundfont: %v", err)
	}

	return path
}

func infoChunks() []byte {
	buf := new(bytes.Buffer)

	version := make([]byte, 4)
	binary.LittleEndian.PutUint16(version[0:], 2)
	binary.LittleEndian.PutUint16(version[2:], 1)
	buf.Write(chunk("ifil", version))
	buf.Write(chunk("isng", zstr("EMU8000")))
	buf.Write(chunk("INAM", zstr("synthtest")))

	return buf.Bytes()
}

func sampleData() []byte {
	buf := make([]byte, 2*(sinePeriod+samplePad))
	for i := range sinePeriod {
		v := int16(math.Round(amplitude * math.Sin(2*math.Pi*float64(i)/sinePeriod)))
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}

	return buf
}

func presetData(presets []Preset) []byte {
	buf := new(bytes.Buffer)

	phdr := new(bytes.Buffer)
	pbag := new(bytes.Buffer)
	pgen := new(bytes.Buffer)
	for i, p := range presets {
		phdr.Write(name(p.Name))
		le(phdr, uint16(p.Program), uint16(p.Bank), uint16(i), uint32(0), uint32(0), uint32(0))
		le(pbag, uint16(2*i), uint16(0))
		le(pgen, uint16(genCoarse), int16(p.Transpose), uint16(genInst), uint16(0))
	}
	phdr.Write(name("EOP"))
	le(phdr, uint16(0), uint16(0), uint16(len(presets)), uint32(0), uint32(0), uint32(0))
	le(pbag, uint16(2*len(presets)), uint16(0))
	le(pgen, uint16(0), uint16(0))

	buf.Write(chunk("phdr", phdr.Bytes()))
	buf.Write(chunk("pbag", pbag.Bytes()))
	buf.Write(chunk("pmod", make([]byte, 10)))
	buf.Write(chunk("pgen", pgen.Bytes()))

	inst := new(bytes.Buffer)
	inst.Write(name("Sine"))
	le(inst, uint16(0))
	inst.Write(name("EOI"))
	le(inst, uint16(1))

	ibag := new(bytes.Buffer)
	le(ibag, uint16(0), uint16(0), uint16(3), uint16(0))

	igen := new(bytes.Buffer)
	le(igen,
		uint16(genModes), uint16(loopForever),
		uint16(genRelease), int16(-1200),
		uint16(genSampleID), uint16(0),
		uint16(0), uint16(0),
	)

	shdr := new(bytes.Buffer)
	shdr.Write(name("Sine"))
	le(shdr,
		uint32(0), uint32(sinePeriod), uint32(0), uint32(sinePeriod),
		uint32(sampleRate), uint8(rootKey), int8(0), uint16(0), uint16(monoSample),
	)
	shdr.Write(name("EOS"))
	le(shdr, uint32(0), uint32(0), uint32(0), uint32(0), uint32(0), uint8(0), int8(0), uint16(0), uint16(0))

	buf.Write(chunk("inst", inst.Bytes()))
	buf.Write(chunk("ibag", ibag.Bytes()))
	buf.Write(chunk("imod", make([]byte, 10)))
	buf.Write(chunk("igen", igen.Bytes()))
	buf.Write(chunk("shdr", shdr.Bytes()))

	return buf.Bytes()
}

func chunk(id string, data []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(id)
	le(buf, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func list(kind string, data []byte) []byte {
	return chunk("LIST", append([]byte(kind), data...))
}

// name returns a NUL padded 20 byte record name.
func name(s string) []byte {
	b := make([]byte, 20)
	copy(b[:19], s)
	return b
}

// zstr returns s NUL terminated and padded to an even length.
func zstr(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}

	return b
}

func le(buf *bytes.Buffer, values ...any) {
	for _, v := range values {
		// Writes to a bytes.Buffer only fail on unsupported types.
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
}
