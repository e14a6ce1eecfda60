package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Phase-continuous sine tone synthesis for the transmit loop.
 *
 * Description:	Ported from samoyed's src/gen_tone.go technique (a running
 *		phase accumulator advanced by ticks-per-sample each output
 *		sample, optionally looked up in a precomputed sine table
 *		instead of calling math.Sin every sample) but reworked from
 *		gen_tone.go's fixed-point uint32 phase / int16 sample_t to
 *		float64 radians / float32 samples, per spec.md section 4.1's
 *		phase-in-radians requirement.
 *
 *---------------------------------------------------------------*/

import "math"

const twoPi = 2 * math.Pi

// ToneGenerator synthesizes FSK tones sample-by-sample, carrying a phase
// accumulator across calls so consecutive tones (e.g. successive bits at
// different frequencies) stay phase-continuous — no click at the boundary.
type ToneGenerator struct {
	sampleRate int
	phase      float64 // radians, kept in [0, 2*pi)
	lut        []float32
}

// NewToneGenerator builds a generator for the given sample rate. lutLen is
// the sine lookup table length; 0 disables the LUT and falls back to
// math.Sin per sample, matching gen_tone.go's --lut 0 behavior.
func NewToneGenerator(sampleRate, lutLen int) *ToneGenerator {
	g := &ToneGenerator{sampleRate: sampleRate}
	if lutLen > 0 {
		g.lut = make([]float32, lutLen)
		for i := range g.lut {
			g.lut[i] = float32(math.Sin(twoPi * float64(i) / float64(lutLen)))
		}
	}
	return g
}

// Generate appends n samples of a freqHz tone to dst and returns the
// extended slice, advancing the phase accumulator by the corresponding
// per-sample phase increment each step. freqHz == 0 produces n samples of
// silence without disturbing the phase accumulator, matching the trailer's
// half-second of quiet in the original tx_stop_transmit path.
func (g *ToneGenerator) Generate(dst []float32, freqHz float64, n int) []float32 {
	if freqHz == 0 {
		for i := 0; i < n; i++ {
			dst = append(dst, 0)
		}
		return dst
	}

	ticksPerSample := twoPi * freqHz / float64(g.sampleRate)
	for i := 0; i < n; i++ {
		dst = append(dst, g.sample())
		g.phase += ticksPerSample
		if g.phase >= twoPi {
			g.phase -= twoPi
		}
	}
	return dst
}

func (g *ToneGenerator) sample() float32 {
	if g.lut == nil {
		return float32(math.Sin(g.phase))
	}
	idx := int(g.phase / twoPi * float64(len(g.lut)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(g.lut) {
		idx = len(g.lut) - 1
	}
	return g.lut[idx]
}
