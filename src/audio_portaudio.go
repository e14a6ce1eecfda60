package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	System-default audio backend via gordonklaus/portaudio's
 *		blocking Read/Write API — the real-hardware analog of
 *		minimodem.c's SA_BACKEND_SYSDEFAULT. Declared in the
 *		teacher's go.mod but never called there; this is the first
 *		wiring of it.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const portAudioChunkFrames = 1024

// PortAudioStream is a capture-only or playback-only stream bound to the
// host's default input or output device.
type PortAudioStream struct {
	stream     *portaudio.Stream
	sampleRate int
	tone       *ToneGenerator
	chunk      []float32 // fixed-length buffer bound to the portaudio stream
}

// OpenPortAudioCapture opens the default input device for receive.
func OpenPortAudioCapture(sampleRate int) (*PortAudioStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("minimodem: portaudio init: %w", err)
	}
	s := &PortAudioStream{sampleRate: sampleRate, chunk: make([]float32, portAudioChunkFrames)}
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(s.chunk), s.chunk)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("minimodem: opening portaudio capture stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("minimodem: starting portaudio capture stream: %w", err)
	}
	return s, nil
}

// OpenPortAudioPlayback opens the default output device for transmit.
func OpenPortAudioPlayback(sampleRate, lutLen int) (*PortAudioStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("minimodem: portaudio init: %w", err)
	}
	s := &PortAudioStream{
		sampleRate: sampleRate,
		tone:       NewToneGenerator(sampleRate, lutLen),
		chunk:      make([]float32, portAudioChunkFrames),
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(s.chunk), s.chunk)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("minimodem: opening portaudio playback stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("minimodem: starting portaudio playback stream: %w", err)
	}
	return s, nil
}

func (s *PortAudioStream) SampleRate() int { return s.sampleRate }

func (s *PortAudioStream) ReadSamples(dst []float32) (int, error) {
	total := 0
	for total < len(dst) {
		n := len(s.chunk)
		if remaining := len(dst) - total; remaining < n {
			n = remaining
		}
		if err := s.stream.Read(); err != nil {
			return 0, fmt.Errorf("minimodem: portaudio read: %w", err)
		}
		copy(dst[total:total+n], s.chunk[:n])
		total += n
	}
	return total, nil
}

func (s *PortAudioStream) WriteTone(freqHz float64, n int) error {
	remaining := n
	for remaining > 0 {
		chunkN := len(s.chunk)
		if remaining < chunkN {
			chunkN = remaining
		}
		tmp := s.tone.Generate(make([]float32, 0, chunkN), freqHz, chunkN)
		copy(s.chunk, tmp)
		for i := len(tmp); i < len(s.chunk); i++ {
			s.chunk[i] = 0
		}
		if err := s.stream.Write(); err != nil {
			return fmt.Errorf("minimodem: portaudio write: %w", err)
		}
		remaining -= chunkN
	}
	return nil
}

func (s *PortAudioStream) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
