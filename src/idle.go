package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Idle-timeout stdin reader for interactive transmit, using
 *		github.com/pkg/term raw mode with a read deadline. Repurposed
 *		from the teacher's serial-port PTT use of pkg/term
 *		(src/ptt.go) onto a different job: detecting an idle gap
 *		between keystrokes so the transmit loop can emit the trailer
 *		without blocking forever, the non-signal alternative to
 *		minimodem.c's SIGALRM-driven tx_stop_transmit_sighandler
 *		(see spec.md section 9's stated preference away from signals).
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"time"

	"github.com/pkg/term"
)

// errIdleTimeout is returned by TermIdleReader.ReadByte when no byte
// arrives before the deadline.
var errIdleTimeout = errors.New("minimodem: idle timeout")

// IdleReader reads one byte at a time, returning errIdleTimeout instead of
// blocking when the input has gone idle.
type IdleReader interface {
	ReadByte() (byte, error)
}

// TermIdleReader is an IdleReader backed by a raw-mode terminal device.
type TermIdleReader struct {
	t       *term.Term
	timeout time.Duration
}

// NewTermIdleReader opens path (e.g. "/dev/tty") in raw mode with a read
// deadline derived from the data rate: 1/(dataRate*1.03) seconds, slightly
// shorter than one bit period, so a pause between keystrokes trips the
// trailer.
func NewTermIdleReader(path string, dataRate float64) (*TermIdleReader, error) {
	t, err := term.Open(path)
	if err != nil {
		return nil, err
	}
	if err := term.RawMode(t); err != nil {
		t.Close()
		return nil, err
	}
	timeout := time.Duration(float64(time.Second) / (dataRate * 1.03))
	if err := t.SetReadTimeout(timeout); err != nil {
		t.Close()
		return nil, err
	}
	return &TermIdleReader{t: t, timeout: timeout}, nil
}

func (r *TermIdleReader) ReadByte() (byte, error) {
	buf := make([]byte, 1)
	n, err := r.t.Read(buf)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errIdleTimeout
	}
	return buf[0], nil
}

func (r *TermIdleReader) Close() error { return r.t.Close() }

var _ IdleReader = (*TermIdleReader)(nil)
