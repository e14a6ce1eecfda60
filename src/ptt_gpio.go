package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	GPIO-line PTT driver via warthog618/go-gpiocdev. Finishes the
 *		PTT_METHOD_GPIOD branch samoyed's src/ptt.go declares and
 *		stubs out behind a "mid-stage porting" FIXME, never actually
 *		calling into it.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOPTT asserts PTT by driving a gpiod output line high.
type GPIOPTT struct {
	line *gpiocdev.Line
}

// NewGPIOPTT requests lineOffset on chip as an output, initially low.
func NewGPIOPTT(chip string, lineOffset int) (*GPIOPTT, error) {
	if lineOffset < 0 {
		return nil, fmt.Errorf("minimodem: --ptt-gpio-line must be set when --ptt-gpiochip is used")
	}
	line, err := gpiocdev.RequestLine(chip, lineOffset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("minimodem: opening PTT GPIO %s:%d: %w", chip, lineOffset, err)
	}
	return &GPIOPTT{line: line}, nil
}

func (p *GPIOPTT) Assert() error   { return p.line.SetValue(1) }
func (p *GPIOPTT) Deassert() error { return p.line.SetValue(0) }
func (p *GPIOPTT) Close() error    { return p.line.Close() }

var _ PTTDriver = (*GPIOPTT)(nil)
