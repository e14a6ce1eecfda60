package minimodem

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildConfig mirrors ParseArgs' baudmode preset resolution without going
// through the CLI, for tests that need to hand-construct a Config.
func buildConfig(dataRate, mark, space, bandWidth float64, nDataBits int, stopBits float64) *Config {
	return &Config{
		SampleRate:                 48000,
		MarkFreq:                   mark,
		SpaceFreq:                  space,
		DataRate:                   dataRate,
		NDataBits:                  nDataBits,
		BandWidth:                  bandWidth,
		TxStopBits:                 stopBits,
		TxLeaderBits:               2,
		TxTrailerBits:              2,
		TxSinTableLen:              4096,
		ConfidenceThreshold:        2.0,
		ConfidenceSearchLimit:      2.3,
		CarrierAutodetectThreshold: 0,
	}
}

func transmitToMemory(t *testing.T, cfg *Config, codec FrameCodec, payload []byte) *MemoryStream {
	t.Helper()
	stream := NewMemoryStream(cfg.SampleRate, cfg.TxSinTableLen)
	loop := &TransmitLoop{
		Config: cfg,
		Codec:  codec,
		Stream: stream,
		In:     bytes.NewReader(payload),
	}
	require.NoError(t, loop.Run())
	return stream
}

func receiveFromMemory(t *testing.T, cfg *Config, plan *Plan, codec FrameCodec, stream *MemoryStream) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	loop := &ReceiveLoop{
		Plan:   plan,
		Codec:  codec,
		Config: cfg,
		Stream: stream,
		Out:    &out,
		Err:    &errOut,
	}
	require.NoError(t, loop.Run())
	return out.String(), errOut.String()
}

// S1: Bell 202 @ 1200 baud, clean signal, ASCII8.
func TestEndToEnd_S1_Bell202Clean(t *testing.T) {
	cfg := buildConfig(1200, 1200, 2200, 200, 8, 1.0)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	payload := []byte("Hello, World!\n")
	stream := transmitToMemory(t, cfg, NewASCII8Codec(), payload)

	out, errOut := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), stream)
	assert.Equal(t, string(payload), out)
	assert.Contains(t, errOut, "### CARRIER 1200 @ 1200.0 Hz ###")
}

// S2: Bell 103 @ 300 baud, single alternating-bits byte.
func TestEndToEnd_S2_Bell103SingleByte(t *testing.T) {
	cfg := buildConfig(300, 1270, 1070, 50, 8, 1.0)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	stream := transmitToMemory(t, cfg, NewASCII8Codec(), []byte{0x55})
	out, _ := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), stream)
	assert.Equal(t, "U", out)
}

// S3: RTTY @ 45.45 baud, "RYRY" in Baudot (R and Y share no shift change).
func TestEndToEnd_S3_RTTY_RYRY(t *testing.T) {
	cfg := buildConfig(45.45, 1585, 1415, 10, 5, 1.5)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	stream := transmitToMemory(t, cfg, NewBaudot5Codec(), []byte("RYRY"))
	out, _ := receiveFromMemory(t, cfg, plan, NewBaudot5Codec(), stream)
	assert.Equal(t, "RYRY", out)
}

// S4: RTTY transmission of "1A" requires a FIGS shift before '1' and a LTRS
// shift before 'A'; the receiver must round-trip the pair regardless.
func TestEndToEnd_S4_RTTY_ShiftPair(t *testing.T) {
	cfg := buildConfig(45.45, 1585, 1415, 10, 5, 1.5)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	txCodec := NewBaudot5Codec()
	words1 := txCodec.Encode('1')
	assert.Len(t, words1, 2, "'1' is in FIGURES only, from a LETTERS start: needs a shift code")
	wordsA := txCodec.Encode('A')
	assert.Len(t, wordsA, 2, "'A' is in LETTERS only, from a FIGURES state: needs a shift code")

	stream := transmitToMemory(t, cfg, NewBaudot5Codec(), []byte("1A"))
	out, _ := receiveFromMemory(t, cfg, plan, NewBaudot5Codec(), stream)
	assert.Equal(t, "1A", out)
}

// S5: pure noise must decode to nothing and never claim carrier.
func TestEndToEnd_S5_NoiseProducesNoOutput(t *testing.T) {
	cfg := buildConfig(1200, 1200, 2200, 200, 8, 1.0)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	stream := NewMemoryStream(cfg.SampleRate, 0)
	rng := rand.New(rand.NewSource(7))
	noise := make([]float32, cfg.SampleRate*2) // 2 seconds
	for i := range noise {
		noise[i] = float32(rng.NormFloat64() * 0.2)
	}
	stream.Feed(noise)

	out, errOut := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), stream)
	assert.Empty(t, out)
	assert.NotContains(t, errOut, "### CARRIER")
}

// S6: S1 + 1s silence + S1 again must bracket two identical payloads with
// two CARRIER and two NOCARRIER reports.
func TestEndToEnd_S6_CarrierDropAndReacquire(t *testing.T) {
	cfg := buildConfig(1200, 1200, 2200, 200, 8, 1.0)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	payload := []byte("Hello, World!\n")
	first := transmitToMemory(t, cfg, NewASCII8Codec(), payload)
	second := transmitToMemory(t, cfg, NewASCII8Codec(), payload)

	combined := NewMemoryStream(cfg.SampleRate, 0)
	combined.Feed(first.buf)
	combined.Feed(make([]float32, cfg.SampleRate)) // 1s silence
	combined.Feed(second.buf)

	out, errOut := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), combined)

	assert.Equal(t, strings.Repeat(string(payload), 2), out)
	assert.Equal(t, 2, strings.Count(errOut, "### CARRIER"))
	assert.Equal(t, 2, strings.Count(errOut, "### NOCARRIER"))
}

func TestReceiveLoop_QuietSuppressesReports(t *testing.T) {
	cfg := buildConfig(1200, 1200, 2200, 200, 8, 1.0)
	cfg.Quiet = true
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	stream := transmitToMemory(t, cfg, NewASCII8Codec(), []byte("hi\n"))
	out, errOut := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), stream)
	assert.Equal(t, "hi\n", out)
	assert.Empty(t, errOut)
}

func TestReceiveLoop_NonPrintableRewrittenAsDot(t *testing.T) {
	cfg := buildConfig(1200, 1200, 2200, 200, 8, 1.0)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	stream := transmitToMemory(t, cfg, NewASCII8Codec(), []byte{0x01, 'A', 0x02})
	out, _ := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), stream)
	assert.Equal(t, ".A.", out)
}

// TestCarrierAccounting_ThroughputAndSkew is spec property 6: the reported
// throughput and skew percentage are derived from the same accounting the
// receiver keeps internally.
func TestCarrierAccounting_ThroughputAndSkew(t *testing.T) {
	cfg := buildConfig(1200, 1200, 2200, 200, 8, 1.0)
	plan, err := NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	require.NoError(t, err)

	payload := []byte("The quick brown fox jumps over the lazy dog")
	stream := transmitToMemory(t, cfg, NewASCII8Codec(), payload)
	_, errOut := receiveFromMemory(t, cfg, plan, NewASCII8Codec(), stream)

	require.Contains(t, errOut, "### NOCARRIER")
	assert.Contains(t, errOut, "throughput=")
	// With no injected clock skew the transmit and nominal sample rates
	// match exactly, so the loop should report the signal as clean.
	assert.Contains(t, errOut, "(rate perfect)")
}

func TestOverscan_WithinBitWidth(t *testing.T) {
	samplesPerBit := 40.0
	overscan := int(samplesPerBit*frameOverscanFraction + 0.5)
	assert.Greater(t, overscan, 0)
	assert.Less(t, float64(overscan), samplesPerBit)
}

func TestDetectCarrier_FindsInjectedTone(t *testing.T) {
	plan, err := NewPlan(48000, 1200, 2200, 200, 8)
	require.NoError(t, err)

	gen := NewToneGenerator(48000, 0)
	samples := gen.Generate(nil, 1200, int(float64(plan.SampleRate)/1200.0)*4)

	band, ok := DetectCarrier(plan, samples, 0.001)
	require.True(t, ok)
	assert.InDelta(t, plan.BMark, band, 1)
}

func TestDetectCarrier_DisabledByZeroThreshold(t *testing.T) {
	plan, err := NewPlan(48000, 1200, 2200, 200, 8)
	require.NoError(t, err)
	gen := NewToneGenerator(48000, 0)
	samples := gen.Generate(nil, 1200, 4000)
	_, ok := DetectCarrier(plan, samples, 0)
	assert.False(t, ok)
}
