// Package serial provides the engine link: port configuration, a
// cross-platform port wrapper, and the line-oriented transport the UI
// talks through.
package serial

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Config defines the serial link to the engine
type Config struct {
	Port     string        `toml:"port"`
	BaudRate int           `toml:"baud_rate"`
	DataBits int           `toml:"data_bits"`
	StopBits int           `toml:"stop_bits"`
	Parity   string        `toml:"parity"`
	Timeout  time.Duration `toml:"timeout"`
}

var validBaudRates = []int{9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

// Validate checks if the link configuration is valid
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	validBaud := false
	for _, rate := range validBaudRates {
		if c.BaudRate == rate {
			validBaud = true
			break
		}
	}
	if !validBaud {
		return fmt.Errorf("invalid baud rate: %d", c.BaudRate)
	}

	if c.DataBits < 5 || c.DataBits > 8 {
		return fmt.Errorf("data bits must be between 5 and 8, got: %d", c.DataBits)
	}

	if c.StopBits < 1 || c.StopBits > 2 {
		return fmt.Errorf("stop bits must be 1 or 2, got: %d", c.StopBits)
	}

	switch c.Parity {
	case "none", "odd", "even", "mark", "space":
	default:
		return fmt.Errorf("invalid parity: %s", c.Parity)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	return nil
}

// DefaultConfig returns the default engine link configuration
func DefaultConfig() Config {
	return Config{
		Port:     "/dev/ttyACM0",
		BaudRate: 115200,
		DataBits: 8,
		StopBits: 1,
		Parity:   "none",
		Timeout:  time.Second,
	}
}

// Port is the contract for the raw engine link
type Port interface {
	Open(config Config) error
	Close() error
	Read(buffer []byte) (int, error)
	Write(data []byte) (int, error)
	IsOpen() bool
	GetConfig() Config
}

// EnginePort implements Port using go.bug.st/serial
type EnginePort struct {
	port   serial.Port
	config Config
	isOpen bool
}

// NewPort creates a closed engine port
func NewPort() *EnginePort {
	return &EnginePort{}
}

// Open opens the serial port with the given configuration
func (p *EnginePort) Open(config Config) error {
	if p.isOpen {
		return fmt.Errorf("port is already open")
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
		StopBits: convertStopBits(config.StopBits),
		Parity:   convertParity(config.Parity),
	}

	port, err := serial.Open(config.Port, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", config.Port, err)
	}

	if config.Timeout > 0 {
		if err := port.SetReadTimeout(config.Timeout); err != nil {
			port.Close()
			return fmt.Errorf("failed to set read timeout: %w", err)
		}
	}

	p.port = port
	p.config = config
	p.isOpen = true
	return nil
}

// Close closes the port; pending reads unblock with an error
func (p *EnginePort) Close() error {
	if !p.isOpen {
		return fmt.Errorf("port is not open")
	}

	err := p.port.Close()
	p.port = nil
	p.isOpen = false

	if err != nil {
		return fmt.Errorf("failed to close port: %w", err)
	}
	return nil
}

// Read reads available bytes from the port
func (p *EnginePort) Read(buffer []byte) (int, error) {
	if !p.isOpen {
		return 0, fmt.Errorf("port is not open")
	}
	return p.port.Read(buffer)
}

// Write writes data to the port
func (p *EnginePort) Write(data []byte) (int, error) {
	if !p.isOpen {
		return 0, fmt.Errorf("port is not open")
	}
	return p.port.Write(data)
}

// IsOpen reports whether the port is open
func (p *EnginePort) IsOpen() bool {
	return p.isOpen
}

// GetConfig returns the configuration the port was opened with
func (p *EnginePort) GetConfig() Config {
	return p.config
}

// ListPorts returns the serial ports available on the system
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to get ports list: %w", err)
	}
	return ports, nil
}

// IsPortAvailable checks if a specific port exists on the system
func IsPortAvailable(name string) bool {
	ports, err := serial.GetPortsList()
	if err != nil {
		return false
	}
	for _, p := range ports {
		if p == name {
			return true
		}
	}
	return false
}

func convertStopBits(stopBits int) serial.StopBits {
	if stopBits == 2 {
		return serial.TwoStopBits
	}
	return serial.OneStopBit
}

func convertParity(parity string) serial.Parity {
	switch parity {
	case "odd":
		return serial.OddParity
	case "even":
		return serial.EvenParity
	case "mark":
		return serial.MarkParity
	case "space":
		return serial.SpaceParity
	default:
		return serial.NoParity
	}
}
