package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Carrier auto-detection: scan a block of samples across the
 *		analysis bins and report the strongest one, for --auto-carrier
 *		mode where mark/space are not known in advance.
 *
 *---------------------------------------------------------------*/

// DetectCarrier runs a Goertzel scan across the bins below Nyquist (bin 0,
// DC, is skipped) and reports the bin with the largest power, if that power
// exceeds the mean bin power by more than threshold. threshold <= 0 always
// reports not-found, matching --auto-carrier being off by default.
func DetectCarrier(plan *Plan, samples []float32, threshold float64) (int, bool) {
	if threshold <= 0 || len(samples) == 0 {
		return 0, false
	}

	nBins := plan.FFTSize / 2
	if nBins < 2 {
		return 0, false
	}

	var sum float64
	bestBin := -1
	var bestPower float64

	for b := 1; b < nBins; b++ {
		freq := float64(b) * plan.BandWidth
		if freq >= float64(plan.SampleRate)/2 {
			break
		}
		power := goertzelPower(samples, freq, float64(plan.SampleRate))
		sum += power
		if power > bestPower {
			bestPower = power
			bestBin = b
		}
	}

	if bestBin < 1 {
		return 0, false
	}

	mean := sum / float64(nBins-1)
	if mean <= 0 {
		return 0, false
	}
	if bestPower <= mean*(1+threshold) {
		return 0, false
	}
	return bestBin, true
}
