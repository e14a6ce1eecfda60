package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Debug-trace logging via charmbracelet/log. Declared in the
 *		teacher's go.mod but never actually called anywhere in
 *		samoyed (it uses its own text_color_set/dw_printf instead,
 *		both cgo-era artifacts) — first real wiring of it here.
 *
 *---------------------------------------------------------------*/

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the debug-trace logger used by the receive loop for
// frame-candidate/confidence tracing. It never carries the
// CARRIER/NOCARRIER report lines — those have a tested wire format and go
// through report.go directly.
func NewLogger(verbose bool, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "minimodem",
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
