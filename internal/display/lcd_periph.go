package display

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// OpenLCD opens the named I2C bus ("" picks the first one), initializes the
// display at addr and returns it with the bus closer.
func OpenLCD(busName string, addr uint16, lines int) (*LCD, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	lcd := NewLCD(&i2c.Dev{Bus: bus, Addr: addr}, lines)
	if err := lcd.Init(); err != nil {
		bus.Close()
		return nil, nil, err
	}
	return lcd, bus, nil
}
