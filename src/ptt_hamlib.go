package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	CAT-controlled PTT via xylo04/goHamlib. Finishes the
 *		PTT_METHOD_HAMLIB branch samoyed's src/ptt.go declares and
 *		stubs out alongside the GPIO branch, also never called.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	hamlib "github.com/xylo04/goHamlib"
)

// HamlibPTT asserts PTT through a rig's CAT control interface.
type HamlibPTT struct {
	rig *hamlib.Rig
}

// NewHamlibPTT opens rig model and, if device is non-empty, points it at
// that serial/network path before opening the connection.
func NewHamlibPTT(model int, device string) (*HamlibPTT, error) {
	rig := &hamlib.Rig{}
	if err := rig.Init(model); err != nil {
		return nil, fmt.Errorf("minimodem: hamlib init model %d: %w", model, err)
	}
	if device != "" {
		if err := rig.SetConf("rig_pathname", device); err != nil {
			return nil, fmt.Errorf("minimodem: hamlib set device %q: %w", device, err)
		}
	}
	if err := rig.Open(); err != nil {
		return nil, fmt.Errorf("minimodem: hamlib open: %w", err)
	}
	return &HamlibPTT{rig: rig}, nil
}

func (p *HamlibPTT) Assert() error   { return p.rig.SetPTT(hamlib.VFOCurrent, hamlib.PTTOn) }
func (p *HamlibPTT) Deassert() error { return p.rig.SetPTT(hamlib.VFOCurrent, hamlib.PTTOff) }
func (p *HamlibPTT) Close() error    { return p.rig.Close() }

var _ PTTDriver = (*HamlibPTT)(nil)
