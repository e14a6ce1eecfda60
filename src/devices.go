package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	--list-devices: enumerate ALSA sound cards via udev. Not in
 *		minimodem.c (which enumerates via its own simpleaudio
 *		backend); added as a natural complement to -f/-A device
 *		selection, grounded on the teacher's go-udev dependency
 *		(declared in go.mod, unused in samoyed).
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"

	"github.com/jochenvg/go-udev"
)

// ListDevices writes one "name\tdescription" line to w for each device udev
// lists in the "sound" subsystem (cards and their control/PCM nodes alike).
func ListDevices(w io.Writer) error {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("sound"); err != nil {
		return fmt.Errorf("minimodem: udev enumerate: %w", err)
	}
	devices, err := enum.Devices()
	if err != nil {
		return fmt.Errorf("minimodem: udev enumerate: %w", err)
	}
	for _, d := range devices {
		name := d.Sysname()
		if name == "" {
			continue
		}
		desc := d.PropertyValue("ID_MODEL")
		if desc == "" {
			desc = d.PropertyValue("ID_MODEL_FROM_DATABASE")
		}
		fmt.Fprintf(w, "%s\t%s\n", name, desc)
	}
	return nil
}
