// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundbind/utils"
)

// ResampleToMono16 resamples src to targetRate, folds it to mono and
// collects the whole stream as 16-bit PCM. bufferSize is the number of
// samples read per step.
func ResampleToMono16(src Source, targetRate, bufferSize int) ([]int16, error) {
	var in Source = src
	if src.SampleRate() != targetRate {
		in = NewResampler(src, targetRate)
	}
	mono := NewMonoMixer(in)

	pcm := make([]int16, 0, targetRate)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		pcm = utils.AppendInt16(pcm, buf[:n])

		if errors.Is(err, io.EOF) {
			return pcm, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resampling to mono: %w", err)
		}
	}
}
