package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	CLI parsing and baudmode preset derivation. Ported from
 *		minimodem.c's main() option table and preset logic, with the
 *		pflag idiom from samoyed's src/kissutil.go / src/appserver.go
 *		(custom pflag.Usage closure, Arg(0) for the positional
 *		baudmode).
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	defaultSampleRate            = 48000
	defaultConfidenceThreshold   = 2.0
	defaultConfidenceSearchLimit = 2.3
	defaultTxLeaderBits          = 2
	defaultTxTrailerBits         = 2
	defaultTxSinTableLen         = 4096
	autoCarrierThreshold         = 0.001
)

// Config is the fully resolved set of session parameters, after CLI parsing
// and baudmode preset derivation.
type Config struct {
	TxMode  bool `yaml:"tx_mode"`
	Quiet   bool `yaml:"quiet"`
	Verbose bool `yaml:"verbose"`

	SampleRate int     `yaml:"sample_rate"`
	MarkFreq   float64 `yaml:"mark_freq"`
	SpaceFreq  float64 `yaml:"space_freq"`
	DataRate   float64 `yaml:"data_rate"`
	NDataBits  int     `yaml:"n_data_bits"`
	BandWidth  float64 `yaml:"band_width"`

	TxStopBits    float64 `yaml:"tx_stop_bits"`
	TxLeaderBits  int     `yaml:"tx_leader_bits"`
	TxTrailerBits int     `yaml:"tx_trailer_bits"`
	TxSinTableLen int     `yaml:"tx_sin_table_len"`

	ConfidenceThreshold        float64 `yaml:"confidence_threshold"`
	ConfidenceSearchLimit      float64 `yaml:"confidence_search_limit"`
	CarrierAutodetectThreshold float64 `yaml:"carrier_autodetect_threshold"`
	AutodetectShift            float64 `yaml:"autodetect_shift"`

	FilePath string `yaml:"file_path,omitempty"`
	UseALSA  bool    `yaml:"use_alsa"`

	PTTGPIOChip     string `yaml:"ptt_gpiochip,omitempty"`
	PTTGPIOLine     int    `yaml:"ptt_gpio_line"`
	PTTHamlibRig    int    `yaml:"ptt_hamlib_rig"`
	PTTHamlibDevice string `yaml:"ptt_hamlib_device,omitempty"`

	ListDevices bool `yaml:"-"`
	DumpConfig  bool `yaml:"-"`
	Benchmarks  bool `yaml:"-"`
	ShowVersion bool `yaml:"-"`
}

// ParseArgs parses args (normally os.Args[1:]) into a Config, applying the
// baudmode preset derivation from minimodem.c's main(). A *pflag.FlagSet is
// built fresh per call rather than using pflag's package-level functions, so
// repeated calls (as in tests) don't collide on global flag registration.
func ParseArgs(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("minimodem", pflag.ContinueOnError)
	var cfg Config

	tx := fs.BoolP("tx", "t", false, "Transmit mode.")
	rx := fs.BoolP("rx", "r", false, "Receive mode (default).")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress CARRIER/NOCARRIER reports.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose debug tracing.")
	confidence := fs.Float64P("confidence", "c", defaultConfidenceThreshold, "Minimum confidence threshold to report a decoded frame.")
	limit := fs.Float64P("limit", "l", defaultConfidenceSearchLimit, "Confidence value above which the frame search stops early.")
	auto := fs.BoolP("auto-carrier", "a", false, "Auto-detect the carrier frequency instead of using fixed mark/space.")
	ascii := fs.BoolP("ascii", "8", false, "8-N-1 ASCII framing.")
	baudot := fs.BoolP("baudot", "5", false, "5-N-1 Baudot (ITA2) framing.")
	fs.StringVarP(&cfg.FilePath, "file", "f", "", "Read/write raw float32 samples from/to this file instead of the default audio device.")
	bandwidth := fs.Float64P("bandwidth", "b", 0, "Analysis bandwidth in Hz.")
	mark := fs.Float64P("mark", "M", 0, "Mark tone frequency in Hz.")
	space := fs.Float64P("space", "S", 0, "Space tone frequency in Hz.")
	txstop := fs.Float64P("txstopbits", "T", 0, "Transmit stop-bit length, in bits.")
	fs.IntVarP(&cfg.SampleRate, "samplerate", "R", defaultSampleRate, "Sample rate in Hz.")
	fs.BoolVarP(&cfg.UseALSA, "alsa", "A", false, "Accepted for compatibility; this build has no separate ALSA backend, so it has no effect.")
	fs.IntVar(&cfg.TxSinTableLen, "lut", defaultTxSinTableLen, "Transmit sine lookup table length (0 disables the LUT).")
	fs.BoolVar(&cfg.Benchmarks, "benchmarks", false, "Time tone generation with and without the LUT, then exit.")
	version := fs.BoolP("version", "V", false, "Print version and exit.")
	fs.BoolVar(&cfg.ListDevices, "list-devices", false, "List known sound devices and exit.")
	fs.BoolVar(&cfg.DumpConfig, "dump-config", false, "Print the resolved configuration as YAML to stderr before starting.")
	fs.StringVar(&cfg.PTTGPIOChip, "ptt-gpiochip", "", "GPIO chip device for PTT (e.g. gpiochip0).")
	fs.IntVar(&cfg.PTTGPIOLine, "ptt-gpio-line", -1, "GPIO line offset for PTT.")
	fs.IntVar(&cfg.PTTHamlibRig, "ptt-hamlib-rig", -1, "Hamlib rig model number for CAT PTT.")
	fs.StringVar(&cfg.PTTHamlibDevice, "ptt-hamlib-device", "", "Serial or network device for Hamlib CAT control.")
	var floatSamples bool
	fs.BoolVar(&floatSamples, "float-samples", false, "Use float sample format (forced on for receive; accepted as a no-op here).")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [--tx|--rx] [options] {baudmode}\n", progName())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *version {
		cfg.ShowVersion = true
		return &cfg, nil
	}
	if cfg.Benchmarks {
		cfg.SampleRate = defaultSampleRate
		if cfg.SampleRate == 0 {
			cfg.SampleRate = defaultSampleRate
		}
		return &cfg, nil
	}
	if cfg.ListDevices {
		return &cfg, nil
	}

	if *tx && *rx {
		return nil, fmt.Errorf("minimodem: --tx and --rx are mutually exclusive")
	}
	cfg.TxMode = *tx

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("minimodem: exactly one {baudmode} argument is required (e.g. \"300\" or \"rtty\")")
	}
	modemMode := fs.Arg(0)

	if *ascii && *baudot {
		return nil, fmt.Errorf("minimodem: --ascii and --baudot are mutually exclusive")
	}
	switch {
	case *ascii:
		cfg.NDataBits = 8
	case *baudot:
		cfg.NDataBits = 5
	}

	if strings.EqualFold(modemMode, "rtty") {
		cfg.DataRate = 45.45
		if cfg.NDataBits == 0 {
			cfg.NDataBits = 5
		}
		if *txstop == 0 {
			cfg.TxStopBits = 1.5
		}
	} else {
		rate, err := strconv.ParseFloat(modemMode, 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("minimodem: invalid baudmode %q (expected \"rtty\" or a positive baud rate)", modemMode)
		}
		cfg.DataRate = rate
		if cfg.NDataBits == 0 {
			cfg.NDataBits = 8
		}
	}
	if cfg.TxStopBits == 0 {
		if *txstop != 0 {
			cfg.TxStopBits = *txstop
		} else {
			cfg.TxStopBits = 1.0
		}
	}

	switch {
	case cfg.DataRate >= 400: // Bell 202 territory
		cfg.AutodetectShift = -cfg.DataRate * 5 / 6
		if *mark == 0 {
			cfg.MarkFreq = cfg.DataRate/2 + 600
		} else {
			cfg.MarkFreq = *mark
		}
		if *space == 0 {
			cfg.SpaceFreq = cfg.MarkFreq - cfg.AutodetectShift
		} else {
			cfg.SpaceFreq = *space
		}
		if *bandwidth == 0 {
			cfg.BandWidth = 200
		} else {
			cfg.BandWidth = *bandwidth
		}
	case cfg.DataRate >= 100: // Bell 103 territory
		cfg.AutodetectShift = 200
		if *mark == 0 {
			cfg.MarkFreq = 1270
		} else {
			cfg.MarkFreq = *mark
		}
		if *space == 0 {
			cfg.SpaceFreq = cfg.MarkFreq - cfg.AutodetectShift
		} else {
			cfg.SpaceFreq = *space
		}
		if *bandwidth == 0 {
			cfg.BandWidth = 50
		} else {
			cfg.BandWidth = *bandwidth
		}
	default: // RTTY territory
		cfg.AutodetectShift = 170
		if *mark == 0 {
			cfg.MarkFreq = 1585
		} else {
			cfg.MarkFreq = *mark
		}
		if *space == 0 {
			cfg.SpaceFreq = cfg.MarkFreq - cfg.AutodetectShift
		} else {
			cfg.SpaceFreq = *space
		}
		if *bandwidth == 0 {
			cfg.BandWidth = 10
		} else {
			cfg.BandWidth = *bandwidth
		}
	}

	if cfg.BandWidth > cfg.DataRate {
		cfg.BandWidth = cfg.DataRate
	}

	cfg.ConfidenceThreshold = *confidence
	cfg.ConfidenceSearchLimit = *limit
	if cfg.ConfidenceSearchLimit < cfg.ConfidenceThreshold {
		cfg.ConfidenceSearchLimit = cfg.ConfidenceThreshold
	}

	if *auto {
		cfg.CarrierAutodetectThreshold = autoCarrierThreshold
	}

	cfg.TxLeaderBits = defaultTxLeaderBits
	cfg.TxTrailerBits = defaultTxTrailerBits

	return &cfg, nil
}

func progName() string {
	return filepath.Base(os.Args[0])
}

// DumpYAML writes the resolved Config and its derived Plan as YAML, for
// --dump-config.
func DumpYAML(w *os.File, cfg *Config, plan *Plan) error {
	doc := struct {
		Config *Config `yaml:"config"`
		Plan   *Plan   `yaml:"plan"`
	}{cfg, plan}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}
