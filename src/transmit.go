package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	Transmit loop: leader/data/trailer framing, mirrors
 *		fsk_transmit_stdin() in minimodem.c. Reworked away from
 *		SIGALRM-driven idle detection (tx_stop_transmit_sighandler)
 *		onto the IdleReader read-deadline abstraction in idle.go, per
 *		spec.md section 9's stated preference.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"io"
)

// TransmitLoop drives one transmit session: reads bytes from In, encodes
// them through Codec, and writes FSK tones to Stream, keying PTT (if
// configured) around the leader/trailer.
type TransmitLoop struct {
	Config *Config
	Codec  FrameCodec
	Stream Stream
	In     io.Reader
	PTT    PTTDriver

	// Idle, if non-nil, is used instead of a plain buffered reader: its
	// ReadByte returns errIdleTimeout after a quiet gap, which closes out
	// the trailer without waiting for EOF. Used for interactive
	// (terminal) input; omitted for piped/file input.
	Idle IdleReader
}

func (t *TransmitLoop) Run() error {
	bitNSamples := int(float64(t.Stream.SampleRate())/t.Config.DataRate + 0.5)
	stopNSamples := int(float64(bitNSamples) * t.Config.TxStopBits)
	transmitting := false

	var reader *bufio.Reader
	if t.Idle == nil {
		reader = bufio.NewReader(t.In)
	}

	emitTrailer := func() error {
		for i := 0; i < t.Config.TxTrailerBits; i++ {
			if err := t.Stream.WriteTone(t.Config.MarkFreq, bitNSamples); err != nil {
				return err
			}
		}
		if err := t.Stream.WriteTone(0, t.Stream.SampleRate()/2); err != nil {
			return err
		}
		if t.PTT != nil {
			if err := t.PTT.Deassert(); err != nil {
				return err
			}
		}
		transmitting = false
		return nil
	}

	for {
		var b byte
		var err error
		if t.Idle != nil {
			b, err = t.Idle.ReadByte()
			if err == errIdleTimeout {
				if transmitting {
					if e := emitTrailer(); e != nil {
						return e
					}
				}
				continue
			}
		} else {
			b, err = reader.ReadByte()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		words := t.Codec.Encode(b)
		if len(words) == 0 {
			continue
		}

		if !transmitting {
			if t.PTT != nil {
				if err := t.PTT.Assert(); err != nil {
					return err
				}
			}
			for i := 0; i < t.Config.TxLeaderBits; i++ {
				if err := t.Stream.WriteTone(t.Config.MarkFreq, bitNSamples); err != nil {
					return err
				}
			}
			transmitting = true
		}

		for _, word := range words {
			if err := t.Stream.WriteTone(t.Config.SpaceFreq, bitNSamples); err != nil { // start bit
				return err
			}
			for i := 0; i < t.Config.NDataBits; i++ {
				freq := t.Config.SpaceFreq
				if (word>>uint(i))&1 == 1 {
					freq = t.Config.MarkFreq
				}
				if err := t.Stream.WriteTone(freq, bitNSamples); err != nil {
					return err
				}
			}
			if err := t.Stream.WriteTone(t.Config.MarkFreq, stopNSamples); err != nil { // stop bit(s)
				return err
			}
		}
	}

	if transmitting {
		return emitTrailer()
	}
	return nil
}
