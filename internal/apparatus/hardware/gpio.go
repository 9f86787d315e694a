package hardware

import (
	"log/slog"
	"sync"

	"github.com/brian-armstrong/gpio"
)

type Pins struct {
	LeverUp   uint
	LeverDown uint
	Remote    uint
	Dispenser uint
	LockOpen  uint
	LockClose uint
}

type GPIOConfig struct {
	Pins Pins
	// LeverActiveLevel and RemoteActiveLevel are the raw levels that mean
	// engaged.
	LeverActiveLevel  uint
	RemoteActiveLevel uint
	// OutputActiveLow inverts the dispenser and lock outputs.
	OutputActiveLow bool
}

func DefaultGPIOConfig() GPIOConfig {
	return GPIOConfig{
		Pins: Pins{
			LeverUp:   17,
			LeverDown: 27,
			Remote:    22,
			Dispenser: 23,
			LockOpen:  24,
			LockClose: 25,
		},
		LeverActiveLevel:  1,
		RemoteActiveLevel: 0,
	}
}

// GPIOBackend drives the box through sysfs GPIO pins.
type GPIOBackend struct {
	config    GPIOConfig
	leverUp   gpio.Pin
	leverDown gpio.Pin
	remote    gpio.Pin
	dispenser gpio.Pin
	lockOpen  gpio.Pin
	lockClose gpio.Pin

	closeOnce sync.Once
}

func NewGPIOBackend(config GPIOConfig) *GPIOBackend {
	idle := config.OutputActiveLow
	return &GPIOBackend{
		config:    config,
		leverUp:   gpio.NewInput(config.Pins.LeverUp),
		leverDown: gpio.NewInput(config.Pins.LeverDown),
		remote:    gpio.NewInput(config.Pins.Remote),
		dispenser: gpio.NewOutput(config.Pins.Dispenser, idle),
		lockOpen:  gpio.NewOutput(config.Pins.LockOpen, idle),
		lockClose: gpio.NewOutput(config.Pins.LockClose, idle),
	}
}

func (b *GPIOBackend) read(pin gpio.Pin, number, active uint) bool {
	value, err := pin.Read()
	if err != nil {
		slog.Warn("reading gpio pin", slog.Any("pin", number), slog.Any("error", err))
		return false
	}
	return value == active
}

func (b *GPIOBackend) RawLeverUp() bool {
	return b.read(b.leverUp, b.config.Pins.LeverUp, b.config.LeverActiveLevel)
}

func (b *GPIOBackend) RawLeverDown() bool {
	return b.read(b.leverDown, b.config.Pins.LeverDown, b.config.LeverActiveLevel)
}

func (b *GPIOBackend) RawRemote() bool {
	return b.read(b.remote, b.config.Pins.Remote, b.config.RemoteActiveLevel)
}

func (b *GPIOBackend) set(pin gpio.Pin, on bool) error {
	if on != b.config.OutputActiveLow {
		return pin.High()
	}
	return pin.Low()
}

func (b *GPIOBackend) SetDispenser(on bool) error {
	return b.set(b.dispenser, on)
}

// DriveLock energizes one side of the lock motor bridge, or neither to stop.
func (b *GPIOBackend) DriveLock(direction LockDirection) error {
	if err := b.set(b.lockOpen, direction == LockOpen); err != nil {
		return err
	}
	return b.set(b.lockClose, direction == LockClose)
}

// Close unexports the pins. Calls after the first do nothing.
func (b *GPIOBackend) Close() error {
	b.closeOnce.Do(func() {
		for _, pin := range []gpio.Pin{b.leverUp, b.leverDown, b.remote, b.dispenser, b.lockOpen, b.lockClose} {
			pin.Close()
		}
	})
	return nil
}
