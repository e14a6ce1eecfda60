package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	In-memory audio backend, used by tests (Feed/ReadSamples) and
 *		by --benchmarks (WriteTone in discard mode). Ported from
 *		minimodem.c's generate_test_tones()/benchmarks(): 1000Hz and
 *		1777Hz alternating test tones, timed once with the sine LUT
 *		enabled and once disabled.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"time"
)

// MemoryStream is an in-memory Stream: WriteTone appends to an internal
// buffer (or discards, in benchmark mode), ReadSamples serves back whatever
// was appended via WriteTone or Feed.
type MemoryStream struct {
	sampleRate int
	tone       *ToneGenerator
	buf        []float32
	readPos    int
	discard    bool
}

// NewMemoryStream builds a buffering stream for tests: writes accumulate,
// reads drain the buffer in order.
func NewMemoryStream(sampleRate, lutLen int) *MemoryStream {
	return &MemoryStream{sampleRate: sampleRate, tone: NewToneGenerator(sampleRate, lutLen)}
}

// NewDiscardStream builds a write-only stream that synthesizes but discards
// samples, for timing tone generation in isolation.
func NewDiscardStream(sampleRate, lutLen int) *MemoryStream {
	return &MemoryStream{sampleRate: sampleRate, tone: NewToneGenerator(sampleRate, lutLen), discard: true}
}

func (s *MemoryStream) SampleRate() int { return s.sampleRate }

func (s *MemoryStream) WriteTone(freqHz float64, n int) error {
	if s.discard {
		s.tone.Generate(make([]float32, 0, n), freqHz, n)
		return nil
	}
	s.buf = s.tone.Generate(s.buf, freqHz, n)
	return nil
}

func (s *MemoryStream) ReadSamples(dst []float32) (int, error) {
	n := copy(dst, s.buf[s.readPos:])
	s.readPos += n
	return n, nil
}

// Feed appends externally synthesized samples (e.g. test fixtures with
// injected noise) for a receiver under test to consume.
func (s *MemoryStream) Feed(samples []float32) {
	s.buf = append(s.buf, samples...)
}

func (s *MemoryStream) Close() error { return nil }

// BenchmarkResult is one --benchmarks timing run.
type BenchmarkResult struct {
	LUTLen  int
	Elapsed time.Duration
}

// RunBenchmarks times ten seconds of tone generation with the sine LUT
// enabled (length 1024) and disabled (length 0), matching minimodem.c's
// benchmarks(): simpleaudio_tone_init(1024) then simpleaudio_tone_init(0).
func RunBenchmarks(sampleRate int) []BenchmarkResult {
	var results []BenchmarkResult
	for _, lutLen := range []int{1024, 0} {
		s := NewDiscardStream(sampleRate, lutLen)
		start := time.Now()
		generateTestTones(s, 10)
		results = append(results, BenchmarkResult{LUTLen: lutLen, Elapsed: time.Since(start)})
	}
	return results
}

// PrintBenchmarks runs RunBenchmarks and prints elapsed time per LUT
// configuration to w, matching minimodem.c's --benchmarks stdout output.
func PrintBenchmarks(w io.Writer, sampleRate int) {
	for _, result := range RunBenchmarks(sampleRate) {
		if result.LUTLen > 0 {
			fmt.Fprintf(w, "LUT(%d) samples: %s\n", result.LUTLen, result.Elapsed)
		} else {
			fmt.Fprintf(w, "no LUT (math.Sin): %s\n", result.Elapsed)
		}
	}
}

// generateTestTones writes durationSec seconds of alternating 1000Hz/1777Hz
// tones in tenth-second chunks, the same fixed pair minimodem.c's
// generate_test_tones() uses.
func generateTestTones(s Stream, durationSec int) {
	chunk := s.SampleRate() / 10
	nChunks := (s.SampleRate() / chunk) * durationSec
	for i := 0; i < nChunks; i++ {
		freq := 1000.0
		if i%2 == 1 {
			freq = 1777.0
		}
		s.WriteTone(freq, chunk)
	}
}
