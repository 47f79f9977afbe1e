package hal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// defaultThermalRoot is the sysfs thermal zone base directory.
const defaultThermalRoot = "/sys/class/thermal"

// millidegreesPerDegree converts kernel thermal readings to Celsius.
const millidegreesPerDegree = 1000.0

// ThermalZone reads a Linux thermal zone as a TemperatureSensor.
//
// The kernel exposes zone temperatures in millidegrees Celsius under
// /sys/class/thermal/thermal_zone<N>/temp. Thermal zones have no
// threshold or trigger support, so sensors backed by this driver are
// always polled by the monitor loop.
type ThermalZone struct {
	zone int
	root string
}

// NewThermalZone creates a sensor for the given thermal zone number.
func NewThermalZone(zone int) *ThermalZone {
	return &ThermalZone{zone: zone, root: defaultThermalRoot}
}

// newThermalZoneAt is used by tests to point the driver at a fake sysfs tree.
func newThermalZoneAt(zone int, root string) *ThermalZone {
	return &ThermalZone{zone: zone, root: root}
}

// tempPath returns the sysfs temperature file for this zone.
func (t *ThermalZone) tempPath() string {
	return filepath.Join(t.root, fmt.Sprintf("thermal_zone%d", t.zone), "temp")
}

// Ready implements TemperatureSensor.
func (t *ThermalZone) Ready() bool {
	_, err := os.Stat(t.tempPath())
	return err == nil
}

// Read implements TemperatureSensor.
func (t *ThermalZone) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	data, err := os.ReadFile(t.tempPath())
	if err != nil {
		return 0, fmt.Errorf("%w: thermal_zone%d: %w", ErrReadFailed, t.zone, err)
	}

	milli, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: thermal_zone%d: parsing %q: %w", ErrReadFailed, t.zone, strings.TrimSpace(string(data)), err)
	}

	return float64(milli) / millidegreesPerDegree, nil
}

// SetThreshold implements TemperatureSensor. Thermal zones cannot alert.
func (t *ThermalZone) SetThreshold(Bound, float64) error {
	return fmt.Errorf("%w: thermal zones have no threshold support", ErrUnsupported)
}

// SetTrigger implements TemperatureSensor. Thermal zones cannot alert.
func (t *ThermalZone) SetTrigger(TriggerFunc) error {
	return fmt.Errorf("%w: thermal zones have no trigger support", ErrUnsupported)
}
