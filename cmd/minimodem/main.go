package main

/*------------------------------------------------------------------
 *
 * Purpose:	Entry point: parse options, dispatch to the transmit or
 *		receive loop, map errors to exit codes. Ported from
 *		minimodem.c's main(), reduced to wiring now that option
 *		parsing, baudmode presets and both loops live in src/.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/soundmodem/minimodem/src"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := minimodem.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch {
	case cfg.ShowVersion:
		minimodem.PrintVersion(os.Stdout)
		return 0
	case cfg.Benchmarks:
		minimodem.PrintBenchmarks(os.Stdout, cfg.SampleRate)
		return 0
	case cfg.ListDevices:
		if err := minimodem.ListDevices(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	plan, err := minimodem.NewPlan(cfg.SampleRate, cfg.MarkFreq, cfg.SpaceFreq, cfg.BandWidth, cfg.NDataBits)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cfg.DumpConfig {
		if err := minimodem.DumpYAML(os.Stderr, cfg, plan); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	var codec minimodem.FrameCodec
	if cfg.NDataBits == 5 {
		codec = minimodem.NewBaudot5Codec()
	} else {
		codec = minimodem.NewASCII8Codec()
	}

	ptt, err := minimodem.NewPTTDriver(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if ptt != nil {
		defer ptt.Close()
	}

	if cfg.TxMode {
		return runTransmit(cfg, codec, ptt)
	}
	return runReceive(cfg, plan, codec)
}

func runTransmit(cfg *minimodem.Config, codec minimodem.FrameCodec, ptt minimodem.PTTDriver) int {
	stream, err := openTxStream(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer stream.Close()

	loop := &minimodem.TransmitLoop{
		Config: cfg,
		Codec:  codec,
		Stream: stream,
		In:     os.Stdin,
		PTT:    ptt,
	}

	// Interactive transmit (stdin is a terminal, not a pipe/redirect): arm
	// the idle-timeout trailer, matching minimodem.c's tx_interactive
	// branch. Piped/file input has no "typing pause" to detect, so it
	// relies on EOF alone, same as the non-interactive C path.
	if cfg.FilePath == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		idle, err := minimodem.NewTermIdleReader("/dev/tty", cfg.DataRate)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer idle.Close()
		loop.Idle = idle
	}

	if err := loop.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReceive(cfg *minimodem.Config, plan *minimodem.Plan, codec minimodem.FrameCodec) int {
	stream, err := openRxStream(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer stream.Close()

	loop := &minimodem.ReceiveLoop{
		Plan:   plan,
		Codec:  codec,
		Config: cfg,
		Stream: stream,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: minimodem.NewLogger(cfg.Verbose, os.Stderr),
	}
	if err := loop.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func openTxStream(cfg *minimodem.Config) (minimodem.Stream, error) {
	if cfg.FilePath != "" {
		return minimodem.OpenFileStream(cfg.FilePath, cfg.SampleRate, cfg.TxSinTableLen, true)
	}
	return minimodem.OpenPortAudioPlayback(cfg.SampleRate, cfg.TxSinTableLen)
}

func openRxStream(cfg *minimodem.Config) (minimodem.Stream, error) {
	if cfg.FilePath != "" {
		return minimodem.OpenFileStream(cfg.FilePath, cfg.SampleRate, 0, false)
	}
	return minimodem.OpenPortAudioCapture(cfg.SampleRate)
}
