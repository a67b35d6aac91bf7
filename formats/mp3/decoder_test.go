// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// fakePCM stands in for gomp3.Decoder and hands out at most chunk bytes
// per Read.
type fakePCM struct {
	rate  int
	data  []byte
	chunk int
	err   error
}

func newFakePCM(rate, chunk int, samples ...int16) *fakePCM {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &fakePCM{rate: rate, data: data, chunk: chunk}
}

func (f *fakePCM) SampleRate() int { return f.rate }

func (f *fakePCM) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), f.chunk)], f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("This is not MP3 data"),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: Decode() error = nil", name)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakePCM(44100, 64)}
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0}
	// 3-byte reads split samples across calls; ReadFull stitches them.
	src := &source{dec: newFakePCM(8000, 3, in...)}

	var out []float32
	buf := make([]float32, 4)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(out) != len(in) {
		t.Fatalf("got %d samples, want %d", len(out), len(in))
	}
	for i, v := range in {
		if want := float32(v) / 32768; out[i] != want {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestSource_DropsPartialFrame(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakePCM(8000, 64, 1, 2, 3)}
	n, err := src.ReadSamples(make([]float32, 8))
	if n != 2 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 2, EOF", n, err)
	}
}

func TestSource_OddDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakePCM(8000, 64, 1, 2)}
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples() = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	f := newFakePCM(8000, 64)
	f.err = boom

	_, err := (&source{dec: f}).ReadSamples(make([]float32, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want corrupt frame", err)
	}
}
