package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	-V/--version banner, ported from minimodem.c's version().
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
)

const versionString = "0.1.0"

// PrintVersion writes a short version/license banner, matching the shape of
// minimodem.c's version() output.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "minimodem %s\n", versionString)
	fmt.Fprintln(w, "Software FSK/AFSK modem: Bell 103/202, RTTY.")
	fmt.Fprintln(w, "This is free software; see the source for copying conditions.")
}
