package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Stream is the audio transport the transmit/receive loops are
 *		built against — system-default device, raw file, or in-memory
 *		benchmark sink. Adapted from samoyed's src/audio.go adev_s
 *		(one handle per device, blocking read/write), translated off
 *		cgo/ALSA onto native Go backends.
 *
 *---------------------------------------------------------------*/

import "io"

// Stream is the audio transport abstraction. ReadSamples blocks until it
// fills dst or the source is exhausted (returning a short read with nil
// error at EOF, never a partial read with an error). WriteTone synthesizes
// and emits n samples of the given tone.
type Stream interface {
	SampleRate() int
	ReadSamples(dst []float32) (int, error)
	WriteTone(freqHz float64, nSamples int) error
	io.Closer
}
