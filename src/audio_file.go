package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	File-backed audio backend: raw little-endian float32 PCM,
 *		selected by -f/--file. No WAV/container parsing — matches
 *		minimodem.c's simpleaudio file backend in spirit (a plain
 *		sample stream), not its exact container format.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// FileStream reads or writes raw float32 PCM samples to a file.
type FileStream struct {
	f          *os.File
	sampleRate int
	tone       *ToneGenerator
}

// OpenFileStream opens path for reading (forWrite=false) or creates it for
// writing (forWrite=true).
func OpenFileStream(path string, sampleRate, lutLen int, forWrite bool) (*FileStream, error) {
	var f *os.File
	var err error
	if forWrite {
		f, err = os.Create(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("minimodem: opening audio file %q: %w", path, err)
	}
	return &FileStream{
		f:          f,
		sampleRate: sampleRate,
		tone:       NewToneGenerator(sampleRate, lutLen),
	}, nil
}

func (s *FileStream) SampleRate() int { return s.sampleRate }

func (s *FileStream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	buf := make([]byte, 4*len(dst))
	n, err := io.ReadFull(s.f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("minimodem: reading audio file: %w", err)
	}
	nSamples := n / 4
	for i := 0; i < nSamples; i++ {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return nSamples, nil
}

func (s *FileStream) WriteTone(freqHz float64, n int) error {
	samples := s.tone.Generate(make([]float32, 0, n), freqHz, n)
	buf := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	if _, err := s.f.Write(buf); err != nil {
		return fmt.Errorf("minimodem: writing audio file: %w", err)
	}
	return nil
}

func (s *FileStream) Close() error { return s.f.Close() }
