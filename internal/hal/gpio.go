package hal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// defaultGPIORoot is the sysfs GPIO base directory.
const defaultGPIORoot = "/sys/class/gpio"

// GPIOPin drives a Linux GPIO line as a BinaryOutput through the sysfs
// interface. The line is exported on first Configure if the kernel has
// not already exposed it.
//
// Only the monitor loop writes to the pin, so no locking is needed here;
// the loop serialises all output I/O.
type GPIOPin struct {
	line int
	root string
}

// NewGPIOPin creates a GPIO output pin for the given line number
// (kernel numbering, e.g. 17 for BCM GPIO17 on a Raspberry Pi).
func NewGPIOPin(line int) *GPIOPin {
	return &GPIOPin{line: line, root: defaultGPIORoot}
}

// newGPIOPinAt is used by tests to point the driver at a fake sysfs tree.
func newGPIOPinAt(line int, root string) *GPIOPin {
	return &GPIOPin{line: line, root: root}
}

// dir returns the sysfs directory for this line.
func (p *GPIOPin) dir() string {
	return filepath.Join(p.root, fmt.Sprintf("gpio%d", p.line))
}

// Ready implements BinaryOutput. The pin is operable once the kernel
// exposes its sysfs directory, or when the export file exists so the
// line can be exported during Configure.
func (p *GPIOPin) Ready() bool {
	if _, err := os.Stat(p.dir()); err == nil {
		return true
	}
	_, err := os.Stat(filepath.Join(p.root, "export"))
	return err == nil
}

// Configure implements BinaryOutput. It exports the line if needed, sets
// the direction to output and drives the initial level.
func (p *GPIOPin) Configure(active bool) error {
	if err := p.export(); err != nil {
		return err
	}
	if err := p.writeFile("direction", "out"); err != nil {
		return err
	}
	return p.writeLevel(active)
}

// Toggle implements BinaryOutput.
func (p *GPIOPin) Toggle() error {
	data, err := os.ReadFile(filepath.Join(p.dir(), "value"))
	if err != nil {
		return fmt.Errorf("%w: reading gpio%d value: %w", ErrWriteFailed, p.line, err)
	}
	level := strings.TrimSpace(string(data)) != "0"
	return p.writeLevel(!level)
}

// export asks the kernel to expose the line. Already-exported lines are
// not an error.
func (p *GPIOPin) export() error {
	if _, err := os.Stat(p.dir()); err == nil {
		return nil
	}
	path := filepath.Join(p.root, "export")
	if err := os.WriteFile(path, []byte(strconv.Itoa(p.line)), 0o200); err != nil {
		return fmt.Errorf("%w: exporting gpio%d: %w", ErrWriteFailed, p.line, err)
	}
	return nil
}

// writeLevel drives the output value file.
func (p *GPIOPin) writeLevel(active bool) error {
	v := "0"
	if active {
		v = "1"
	}
	return p.writeFile("value", v)
}

// writeFile writes a sysfs attribute under the pin directory.
func (p *GPIOPin) writeFile(name, value string) error {
	path := filepath.Join(p.dir(), name)
	if err := os.WriteFile(path, []byte(value), 0o200); err != nil {
		return fmt.Errorf("%w: writing gpio%d %s: %w", ErrWriteFailed, p.line, name, err)
	}
	return nil
}
