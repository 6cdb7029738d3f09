// Package serial opens and configures serial ports for line-oriented reading.
//
// On Linux the port is driven directly through termios (golang.org/x/sys/unix)
// and read through the runtime poller, so closing a port from another
// goroutine wakes a blocked Read. Other platforms use go.bug.st/serial behind
// the same Port interface.
//
// # Basic Usage
//
// Open a serial port with default configuration (115200 8N1, no flow control):
//
//	port, err := serial.Open("/dev/ttyACM0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	buffer := make([]byte, 256)
//	n, err := port.Read(buffer)
//
// # Configuration Options
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithParity(serial.ParityEven),
//	    serial.WithFlowControl(serial.FlowControlRTSCTS),
//	    serial.WithExclusive(false),
//	)
//
// # Port Discovery
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (VID=%s PID=%s)\n", info.Path, info.Description, info.VendorID, info.ProductID)
//	}
//
// # Error Handling
//
// Open failures wrap one of ErrDeviceNotFound, ErrPermissionDenied or
// ErrDeviceInUse together with the underlying OS error:
//
//	if errors.Is(err, serial.ErrDeviceInUse) {
//	    // another process holds the port
//	}
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - FlowControl: None
//   - Exclusive: true
package serial
