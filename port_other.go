//go:build !linux

package serial

import (
	"errors"
	"fmt"

	bugst "go.bug.st/serial"
)

// DefaultDevice is the device opened when none is configured.
const DefaultDevice = "COM4"

// bugstPort adapts a go.bug.st/serial port to the Port interface. That
// backend locks the device on open and wakes pending reads on Close.
type bugstPort struct {
	bugst.Port
	device string
	config Config
}

var _ Port = (*bugstPort)(nil)

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	config, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	mode := &bugst.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
		Parity:   toBugstParity(config.Parity),
		StopBits: toBugstStopBits(config.StopBits),
	}

	p, err := bugst.Open(device, mode)
	if err != nil {
		return nil, classifyOpenError(device, err)
	}

	if config.FlowControl == FlowControlRTSCTS {
		if err := p.SetRTS(true); err != nil {
			p.Close()
			return nil, fmt.Errorf("configure %s: %w", device, err)
		}
	}

	return &bugstPort{Port: p, device: device, config: config}, nil
}

func classifyOpenError(device string, err error) error {
	var portErr *bugst.PortError
	if !errors.As(err, &portErr) {
		return fmt.Errorf("open %s: %w", device, err)
	}
	switch portErr.Code() {
	case bugst.PortNotFound, bugst.InvalidSerialPort:
		return fmt.Errorf("open %s: %w: %w", device, ErrDeviceNotFound, err)
	case bugst.PermissionDenied:
		return fmt.Errorf("open %s: %w: %w", device, ErrPermissionDenied, err)
	case bugst.PortBusy:
		return fmt.Errorf("open %s: %w: %w", device, ErrDeviceInUse, err)
	case bugst.InvalidSpeed:
		return fmt.Errorf("open %s: %w: %w", device, ErrInvalidBaudRate, err)
	default:
		return fmt.Errorf("open %s: %w", device, err)
	}
}

func toBugstParity(p Parity) bugst.Parity {
	switch p {
	case ParityOdd:
		return bugst.OddParity
	case ParityEven:
		return bugst.EvenParity
	default:
		return bugst.NoParity
	}
}

func toBugstStopBits(bits int) bugst.StopBits {
	if bits == 2 {
		return bugst.TwoStopBits
	}
	return bugst.OneStopBit
}

func (p *bugstPort) Device() string { return p.device }

func (p *bugstPort) Config() Config { return p.config }

func (p *bugstPort) Read(buf []byte) (int, error) {
	n, err := p.Port.Read(buf)
	return n, mapPortClosed(err)
}

func (p *bugstPort) Close() error {
	return mapPortClosed(p.Port.Close())
}

func mapPortClosed(err error) error {
	var portErr *bugst.PortError
	if errors.As(err, &portErr) && portErr.Code() == bugst.PortClosed {
		return ErrPortClosed
	}
	return err
}
