// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 clamps x to [-1,1] and scales it to the full int16 range.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32768
	case x < 0:
		return int16(x * 32768)
	default:
		return int16(x * 32767)
	}
}

// Int16ToFloat32 maps a PCM sample into [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// AppendInt16 converts src and appends it to dst.
func AppendInt16(dst []int16, src []float32) []int16 {
	dst = grow(dst, len(src))
	for _, x := range src {
		dst = append(dst, Float32ToInt16(x))
	}
	return dst
}

// PCM16LEToFloat32 decodes little-endian 16-bit samples from src into dst
// and returns the number of samples written. A trailing odd byte is ignored.
func PCM16LEToFloat32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = Int16ToFloat32(int16(binary.LittleEndian.Uint16(src[2*i:])))
	}
	return n
}

func grow(s []int16, n int) []int16 {
	if cap(s)-len(s) >= n {
		return s
	}
	out := make([]int16, len(s), len(s)+max(n, cap(s)))
	copy(out, s)
	return out
}
