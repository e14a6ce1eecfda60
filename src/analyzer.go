package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Frame analyzer: scores a candidate frame start/bit-width
 *		against the mark/space tones and returns a confidence value
 *		plus the decoded frame bits.
 *
 * Description:	The per-bit power estimate is a single-bin Goertzel filter,
 *		ported directly from samoyed's src/dtmf.go (dtmf_init/
 *		dtmf_sample): the bin coefficient is computed from an
 *		unrounded bin index k = N*freq/sampleRate (dtmf.go's comment:
 *		"why do some insist on rounding k to the nearest integer? ...
 *		more consistent results... when k is not rounded off"), and
 *		the block-end power is Q1^2 + Q2^2 - Q1*Q2*coef, the same
 *		combination dtmf.go takes a square root of to get amplitude.
 *		We keep the squared form since only the mark/space power
 *		ratio matters here, and normalize by block length squared so
 *		the ratio is comparable across the three bit-width scales
 *		tried per candidate.
 *
 *---------------------------------------------------------------*/

import "math"

// AnalyzeResult is the outcome of scoring one candidate frame start.
type AnalyzeResult struct {
	Confidence       float64
	Bits             uint32
	FrameStartSample int
}

// FindFrame scans candidate frame starts in the window
// [tryFirstSample, tryFirstSample+tryMaxNSamples) in steps of
// tryStepNSamples, at three bit-width scales (nominal, and +-1/N to absorb
// clock skew, matching minimodem.c's FSK_ANALYZE_NSTEPS grid), and returns
// the highest-confidence candidate. Ties keep the earliest candidate found.
// Search stops early once a candidate's confidence reaches
// confidenceSearchLimit.
func FindFrame(plan *Plan, samples []float32, samplesPerBit float64, tryFirstSample, tryMaxNSamples, tryStepNSamples int, confidenceSearchLimit float64) AnalyzeResult {
	var best AnalyzeResult
	best.Confidence = -1

	scales := [3]float64{
		1.0,
		1.0 + 1.0/analyzeNSteps,
		1.0 - 1.0/analyzeNSteps,
	}

	if tryStepNSamples < 1 {
		tryStepNSamples = 1
	}

	for start := tryFirstSample; start < tryFirstSample+tryMaxNSamples; start += tryStepNSamples {
		for _, scale := range scales {
			spb := samplesPerBit * scale
			needed := start + int(math.Ceil(spb*float64(plan.NFrameBits)))
			if needed > len(samples) {
				continue
			}
			confidence, bits := scoreFrame(plan, samples, start, spb)
			if confidence > best.Confidence {
				best = AnalyzeResult{Confidence: confidence, Bits: bits, FrameStartSample: start}
			}
		}
		if best.Confidence >= confidenceSearchLimit {
			break
		}
	}

	if best.Confidence < 0 {
		best.Confidence = 0
	}
	return best
}

// scoreFrame evaluates one candidate (start, samplesPerBit) pair: decodes
// every bit in the frame by comparing mark vs space Goertzel power, checks
// that the framing bits (prev-stop and stop = mark-like, start = space-like)
// hold, and returns the mean mark/space power ratio across the data bits as
// confidence, heavily penalized when framing doesn't hold.
func scoreFrame(plan *Plan, samples []float32, start int, samplesPerBit float64) (float64, uint32) {
	var bits uint32
	framingOK := true
	var confidenceSum float64

	for i := 0; i < plan.NFrameBits; i++ {
		s0 := start + int(float64(i)*samplesPerBit+0.5)
		s1 := start + int(float64(i+1)*samplesPerBit+0.5)
		if s1 > len(samples) {
			s1 = len(samples)
		}
		if s1 <= s0 {
			continue
		}
		block := samples[s0:s1]

		markPower := goertzelPower(block, plan.MarkFreq, float64(plan.SampleRate))
		spacePower := goertzelPower(block, plan.SpaceFreq, float64(plan.SampleRate))

		value := 0
		if markPower > spacePower {
			value = 1
			bits |= 1 << uint(i)
		}

		switch i {
		case 0, plan.NFrameBits - 1: // prev-stop, stop: expected mark
			if value != 1 {
				framingOK = false
			}
		case 1: // start: expected space
			if value != 0 {
				framingOK = false
			}
		default: // data bit: score the winning/losing power ratio
			winning, losing := spacePower, markPower
			if value == 1 {
				winning, losing = markPower, spacePower
			}
			if losing <= 0 {
				losing = 1e-12
			}
			confidenceSum += winning / losing
		}
	}

	confidence := confidenceSum / float64(plan.NDataBits)
	if !framingOK {
		confidence *= 0.05
	}
	return confidence, bits
}

// goertzelPower runs a single-bin Goertzel filter over samples at freqHz
// and returns a power estimate normalized by block length squared, so candidates of
// different bit-width scales remain comparable. See file comment for the
// dtmf.go grounding of the coefficient/recurrence/power formula.
func goertzelPower(samples []float32, freqHz, sampleRate float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	k := float64(n) * freqHz / sampleRate
	omega := twoPi * k / float64(n)
	coef := 2 * math.Cos(omega)

	var q1, q2 float64
	for _, x := range samples {
		q0 := float64(x) + q1*coef - q2
		q2 = q1
		q1 = q0
	}
	raw := q1*q1 + q2*q2 - q1*q2*coef
	return raw / float64(n*n)
}
