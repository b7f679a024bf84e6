package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data by radix-2
// decimation. The length must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude of the positive-frequency half
// of the spectrum. The input is truncated to the largest power-of-two
// prefix.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	if n < 2 {
		return nil
	}

	fft := FFT(data[:n])
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency estimates the strongest frequency component (Hz)
// of a signal sampled every dt seconds. The DC bin is ignored.
// Resolution is limited to 1/(n·dt) for the power-of-two prefix n.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}

	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	return float64(best) / (float64(n) * dt)
}
