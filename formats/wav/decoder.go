// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/soundbind/audio"
	"github.com/ik5/soundbind/formats/internal/intpcm"
)

const formatPCM = 1

// Decoder reads RIFF/WAVE integer PCM at 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav data: %w", err)
	}

	var pcm intpcm.Reader = dec
	if dec.BitDepth == 8 {
		pcm = unsigned8{dec}
	}

	src, err := intpcm.New(pcm, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return src, nil
}

// unsigned8 recentres 8-bit WAV samples, which are stored unsigned.
type unsigned8 struct{ *gowav.Decoder }

func (u unsigned8) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n, err := u.Decoder.PCMBuffer(buf)
	for i := range buf.Data[:n] {
		buf.Data[i] -= 128
	}
	return n, err
}
