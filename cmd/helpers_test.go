package cmd

import (
	"bytes"
	"sync"

	"github.com/allbin/serialtail/internal/config"
)

const missingDevice = "/dev/serialtail-does-not-exist"

// lockedBuffer is a bytes.Buffer safe for one writer and one polling reader.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig(device string) *config.Config {
	return &config.Config{
		Serial: config.SerialConfig{
			Device:      device,
			BaudRate:    115200,
			DataBits:    8,
			StopBits:    1,
			Parity:      "none",
			FlowControl: "none",
			Exclusive:   true,
			Encoding:    "utf-8",
		},
		Logging: config.LoggingConfig{Level: "debug", Format: "text"},
		Watch:   config.WatchConfig{MaxLines: config.DefaultMaxLines},
	}
}
