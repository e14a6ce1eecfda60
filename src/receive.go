package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Receive loop: shift-then-refill sample buffer, SEARCHING/
 *		LOCKED carrier state machine, frame analysis and decode.
 *		Ported close to line-for-line from minimodem.c's main() read
 *		loop, translated from its C buffer/pointer arithmetic into
 *		Go slices.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"math"
	"unicode"

	"github.com/charmbracelet/log"
)

// ReceiverState is the carrier-tracking state carried across reads.
type ReceiverState struct {
	CarrierPresent     bool
	CarrierBand        *int
	NoConfidenceStreak uint
	CarrierNSamples    uint64
	NFramesDecoded     uint64
	ConfidenceTotal    float64
}

// flusher is implemented by buffered writers (e.g. *bufio.Writer); Out is
// flushed after every decoded frame when it satisfies this interface,
// matching minimodem.c's fflush(stdout) after each frame's output.
type flusher interface {
	Flush() error
}

// ReceiveLoop drives one receive session end to end.
type ReceiveLoop struct {
	Plan   *Plan
	Codec  FrameCodec
	Config *Config
	Stream Stream
	Out    io.Writer
	Err    io.Writer
	Logger *log.Logger

	state ReceiverState
}

// Run reads samples from Stream until it is exhausted, decoding frames and
// writing printable output to Out, and reporting carrier state transitions
// to Err (unless Config.Quiet).
func (r *ReceiveLoop) Run() error {
	samplesPerBit := float64(r.Plan.SampleRate) / r.Config.DataRate

	overscan := int(samplesPerBit*frameOverscanFraction + 0.5)
	if overscan < 1 {
		overscan = 1
	}

	bufSize := int(math.Ceil(samplesPerBit)) * (r.Config.NDataBits + 4)
	buf := make([]float32, bufSize)
	samplesValid := 0

	frameNSamples := int(samplesPerBit * float64(r.Plan.NFrameBits))
	tryMaxNSamples := int(samplesPerBit) + overscan
	tryStepNSamples := int(samplesPerBit) / analyzeNSteps
	if tryStepNSamples < 1 {
		tryStepNSamples = 1
	}

	mask := uint32(0xFF)
	if r.Plan.NDataBits == 5 {
		mask = 0x1F
	}

	advance := 0
	for {
		if advance > 0 {
			if advance >= bufSize {
				samplesValid = 0
			} else if advance <= samplesValid {
				copy(buf, buf[advance:samplesValid])
				samplesValid -= advance
			} else {
				samplesValid = 0
			}
		}

		n, err := r.Stream.ReadSamples(buf[samplesValid:])
		if err != nil {
			return fmt.Errorf("minimodem: receive read: %w", err)
		}
		samplesValid += n
		if n == 0 {
			break
		}

		if r.Config.CarrierAutodetectThreshold > 0 && r.state.CarrierBand == nil {
			advance = r.tryAutodetect(buf[:samplesValid], samplesValid)
			if r.state.CarrierBand == nil {
				continue
			}
		}

		if samplesValid < frameNSamples {
			advance = 0
			continue
		}

		tryFirst := 0
		searchLimit := math.Inf(1)
		if r.state.CarrierPresent {
			tryFirst = overscan
			searchLimit = r.Config.ConfidenceSearchLimit
		}

		result := FindFrame(r.Plan, buf[:samplesValid], samplesPerBit, tryFirst, tryMaxNSamples, tryStepNSamples, searchLimit)
		r.debugf("advance candidate start=%d confidence=%.3f", result.FrameStartSample, result.Confidence)

		if result.Confidence <= r.Config.ConfidenceThreshold {
			r.handleNoConfidence(samplesPerBit)
			advance = tryMaxNSamples
			continue
		}

		r.handleConfidentFrame(result, samplesPerBit, overscan)
		dataBits := (result.Bits >> 2) & mask
		r.emit(dataBits)

		advance = result.FrameStartSample + int(samplesPerBit*float64(r.Plan.NDataBits+2)) - overscan
		if advance < 1 {
			advance = 1
		}
	}

	if r.state.CarrierPresent {
		r.report(func() { writeNoCarrierReport(r.Err, r.Plan, r.Config.DataRate, &r.state, samplesPerBit) })
	}
	return nil
}

// tryAutodetect scans for a carrier in fftsize-or-bitwidth chunks, whichever
// is smaller, and tunes the plan once one is found. Returns the number of
// samples to advance by regardless of outcome.
func (r *ReceiveLoop) tryAutodetect(samples []float32, samplesValid int) int {
	scanLen := int(float64(r.Plan.SampleRate) / r.Config.DataRate)
	if scanLen > r.Plan.FFTSize {
		scanLen = r.Plan.FFTSize
	}
	if scanLen < 1 {
		scanLen = 1
	}

	i := 0
	for ; i+scanLen <= samplesValid; i += scanLen {
		band, ok := DetectCarrier(r.Plan, samples[i:i+scanLen], r.Config.CarrierAutodetectThreshold)
		if !ok {
			continue
		}
		bShift := -int(math.Round((r.Config.AutodetectShift + r.Plan.BandWidth/2) / r.Plan.BandWidth))
		if err := r.Plan.SetTonesByBandshift(band, bShift); err != nil {
			continue
		}
		b := band
		r.state.CarrierBand = &b
		i += scanLen
		break
	}
	if i > samplesValid {
		i = samplesValid
	}
	return i
}

func (r *ReceiveLoop) handleNoConfidence(samplesPerBit float64) {
	r.state.NoConfidenceStreak++
	if r.state.NoConfidenceStreak <= maxNoConfidenceFrames {
		return
	}
	r.state.CarrierBand = nil
	if r.state.CarrierPresent {
		r.report(func() { writeNoCarrierReport(r.Err, r.Plan, r.Config.DataRate, &r.state, samplesPerBit) })
		r.state.CarrierPresent = false
		r.state.CarrierNSamples = 0
		r.state.ConfidenceTotal = 0
		r.state.NFramesDecoded = 0
	}
}

func (r *ReceiveLoop) handleConfidentFrame(result AnalyzeResult, samplesPerBit float64, overscan int) {
	r.state.CarrierNSamples += uint64(samplesPerBit * float64(r.Plan.NDataBits+2))
	if r.state.CarrierPresent {
		r.state.CarrierNSamples += uint64(result.FrameStartSample)
		if uint64(overscan) <= r.state.CarrierNSamples {
			r.state.CarrierNSamples -= uint64(overscan)
		}
	} else {
		r.report(func() { writeCarrierReport(r.Err, r.Plan, r.Config.DataRate) })
		r.state.CarrierPresent = true
		r.Codec.Reset()
	}
	r.state.ConfidenceTotal += result.Confidence
	r.state.NFramesDecoded++
	r.state.NoConfidenceStreak = 0
}

func (r *ReceiveLoop) emit(dataBits uint32) {
	decoded := r.Codec.Decode(dataBits)
	if len(decoded) == 0 {
		return
	}
	out := make([]byte, len(decoded))
	for i, b := range decoded {
		if unicode.IsPrint(rune(b)) || unicode.IsSpace(rune(b)) {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	r.Out.Write(out)
	if f, ok := r.Out.(flusher); ok {
		f.Flush()
	}
}

func (r *ReceiveLoop) report(fn func()) {
	if !r.Config.Quiet {
		fn()
	}
}

func (r *ReceiveLoop) debugf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Debug(fmt.Sprintf(format, args...))
	}
}
