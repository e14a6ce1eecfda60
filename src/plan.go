package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Precomputed per-session FSK parameters: sample rate, tone
 *		frequencies, analysis bandwidth, derived FFT size and bin
 *		indices, and the frame bit count.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"math"
)

// analyzeNSteps is the sub-bit-width grid resolution the frame analyzer
// scans at, named FSK_ANALYZE_NSTEPS in the original minimodem.c.
const analyzeNSteps = 10

// maxNoConfidenceFrames is the consecutive-no-confidence streak above which
// carrier is considered lost (FSK_MAX_NOCONFIDENCE_BITS in minimodem.c).
const maxNoConfidenceFrames = 20

// frameOverscanFraction is the fraction of a bit width the receive loop
// overscans by when re-aligning a locked frame. Flagged sensitive by the
// spec; deliberately not a CLI-tunable.
const frameOverscanFraction = 0.5

// Plan holds the derived, immutable-after-construction parameters for one
// FSK session: sample rate, tone frequencies, analysis bandwidth, the FFT
// size implied by the bandwidth, the mark/space bin indices, and the frame
// bit count (prev-stop + start + data bits + stop).
type Plan struct {
	SampleRate int
	MarkFreq   float64
	SpaceFreq  float64
	BandWidth  float64
	NDataBits  int
	FFTSize    int
	BMark      int
	BSpace     int
	NFrameBits int
}

// NewPlan derives a Plan from session parameters. It fails if any parameter
// is non-positive, if a tone frequency is at or beyond Nyquist, or if the
// mark and space tones collide into the same analysis bin.
func NewPlan(sampleRate int, markFreq, spaceFreq, bandWidth float64, nDataBits int) (*Plan, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("minimodem: sample rate must be positive, got %d", sampleRate)
	}
	if markFreq <= 0 || spaceFreq <= 0 {
		return nil, fmt.Errorf("minimodem: mark/space frequencies must be positive (mark=%g space=%g)", markFreq, spaceFreq)
	}
	if bandWidth <= 0 {
		return nil, fmt.Errorf("minimodem: band width must be positive, got %g", bandWidth)
	}
	if nDataBits != 5 && nDataBits != 8 {
		return nil, fmt.Errorf("minimodem: n_data_bits must be 5 or 8, got %d", nDataBits)
	}

	nyquist := float64(sampleRate) / 2
	if markFreq >= nyquist || spaceFreq >= nyquist {
		return nil, fmt.Errorf("minimodem: tone frequency exceeds Nyquist limit of %.1f Hz (mark=%g space=%g)", nyquist, markFreq, spaceFreq)
	}

	fftSize := smallestPow2AtLeast(int(math.Ceil(float64(sampleRate) / bandWidth)))

	bMark := int(math.Round(markFreq / bandWidth))
	bSpace := int(math.Round(spaceFreq / bandWidth))
	if bMark <= 0 || bSpace <= 0 {
		return nil, fmt.Errorf("minimodem: mark/space bin index must be positive (mark=%d space=%d)", bMark, bSpace)
	}
	if bMark == bSpace {
		return nil, fmt.Errorf("minimodem: mark and space frequencies collide into the same %gHz-wide bin", bandWidth)
	}

	return &Plan{
		SampleRate: sampleRate,
		MarkFreq:   markFreq,
		SpaceFreq:  spaceFreq,
		BandWidth:  bandWidth,
		NDataBits:  nDataBits,
		FFTSize:    fftSize,
		BMark:      bMark,
		BSpace:     bSpace,
		NFrameBits: nDataBits + 3,
	}, nil
}

// smallestPow2AtLeast picks fft_size as the smallest power of two >= n, per
// spec.md's "smallest power-of-two or convenient size" requirement.
func smallestPow2AtLeast(n int) int {
	if n < 1 {
		return 1
	}
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// SetTonesByBandshift retunes the plan after carrier auto-detection: b_mark
// is the detected bin, b_shift the signed, mode-specific offset to the
// space bin (negative for Bell 103/RTTY, where space < mark).
func (p *Plan) SetTonesByBandshift(bMark, bShift int) error {
	bSpace := bMark + bShift
	if bSpace < 1 {
		return fmt.Errorf("minimodem: bandshift would produce a space bin of %d (< 1)", bSpace)
	}
	p.BMark = bMark
	p.BSpace = bSpace
	p.MarkFreq = float64(bMark) * p.BandWidth
	p.SpaceFreq = float64(bSpace) * p.BandWidth
	return nil
}
