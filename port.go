package serial

import "io"

// Port represents an open serial connection.
//
// A Port is owned by one reader. Close may be called from another goroutine
// to unblock a pending Read.
type Port interface {
	io.ReadWriteCloser

	// Device returns the path or name the port was opened with.
	Device() string

	// Config returns the configuration the port was opened with.
	Config() Config
}
