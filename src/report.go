package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	CARRIER/NOCARRIER stderr report lines. The exact format is a
 *		tested contract (spec.md section 6), matching
 *		report_no_carrier() and the CARRIER-report call site in
 *		main() in minimodem.c, including main()'s use of the
 *		analyzer's bin-center frequency (b_mark * band_width) rather
 *		than the configured tone. Deliberately not routed through
 *		charmbracelet/log (see log.go).
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"math"
)

// writeCarrierReport prints "### CARRIER <rate> @ <hz> Hz ###" on carrier
// acquisition. Data rates >= 100 print as an integer; slower rates (RTTY)
// print with two decimal places, matching minimodem.c's format selection.
func writeCarrierReport(w io.Writer, plan *Plan, dataRate float64) {
	markHz := float64(plan.BMark) * plan.BandWidth
	if dataRate >= 100 {
		fmt.Fprintf(w, "### CARRIER %d @ %.1f Hz ###\n", int(dataRate+0.5), markHz)
	} else {
		fmt.Fprintf(w, "### CARRIER %.2f @ %.1f Hz ###\n", dataRate, markHz)
	}
}

// writeNoCarrierReport prints the NOCARRIER summary on carrier loss:
// "### NOCARRIER ndata=N confidence=C throughput=T (... ) ###", where the
// parenthetical reports "rate perfect" or a signed percentage skew,
// matching report_no_carrier() in minimodem.c.
func writeNoCarrierReport(w io.Writer, plan *Plan, dataRate float64, state *ReceiverState, samplesPerBit float64) {
	if state.NFramesDecoded == 0 || state.CarrierNSamples == 0 {
		fmt.Fprintf(w, "### NOCARRIER ndata=%d confidence=%.3f throughput=0.00 ###\n", state.NFramesDecoded, 0.0)
		return
	}

	nBitsTotal := state.NFramesDecoded * uint64(plan.NDataBits+2)
	throughput := float64(nBitsTotal) * float64(plan.SampleRate) / float64(state.CarrierNSamples)
	avgConfidence := state.ConfidenceTotal / float64(state.NFramesDecoded)

	fmt.Fprintf(w, "### NOCARRIER ndata=%d confidence=%.3f throughput=%.2f",
		state.NFramesDecoded, avgConfidence, throughput)

	expected := uint64(float64(nBitsTotal)*samplesPerBit + 0.5)
	if expected == state.CarrierNSamples {
		fmt.Fprint(w, " (rate perfect) ###\n")
		return
	}

	skew := (throughput - dataRate) / dataRate
	direction := "fast"
	if skew < 0 {
		direction = "slow"
	}
	fmt.Fprintf(w, " (%.1f%% %s) ###\n", math.Abs(skew)*100, direction)
}
