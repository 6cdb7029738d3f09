package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	serial "github.com/allbin/serialtail"
)

func testInfos() []*serial.PortInfo {
	return []*serial.PortInfo{
		{Name: "ttyACM0", Path: "/dev/ttyACM0", Description: "USB CDC/ACM Device", IsUSB: true, VendorID: "2341", ProductID: "0043"},
		{Name: "ttyS0", Path: "/dev/ttyS0", Description: "Standard Serial Port"},
		{Name: "ttyAMA0", Path: "/dev/ttyAMA0", Description: "ARM Serial Port"},
		{Name: "ttyUSB1", Path: "/dev/ttyUSB1", Description: "USB Serial Device", IsUSB: true},
	}
}

func paths(infos []*serial.PortInfo) []string {
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Path)
	}
	return out
}

func TestFilterPorts(t *testing.T) {
	tests := []struct {
		filter   string
		expected []string
	}{
		{"", []string{"/dev/ttyACM0", "/dev/ttyS0", "/dev/ttyAMA0", "/dev/ttyUSB1"}},
		{"all", []string{"/dev/ttyACM0", "/dev/ttyS0", "/dev/ttyAMA0", "/dev/ttyUSB1"}},
		{"usb", []string{"/dev/ttyACM0", "/dev/ttyUSB1"}},
		{"USB", []string{"/dev/ttyACM0", "/dev/ttyUSB1"}},
		{"standard", []string{"/dev/ttyS0"}},
		{"arm", []string{"/dev/ttyAMA0"}},
		{"bogus", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.expected, paths(filterPorts(testInfos(), tt.filter)))
		})
	}
}

func TestGetPortType(t *testing.T) {
	tests := map[string]string{
		"ttyUSB0": "USB Serial",
		"ttyACM0": "USB CDC/ACM",
		"ttyAMA0": "ARM Serial",
		"ttymxc1": "i.MX Serial",
		"ttySAC0": "Samsung Serial",
		"ttyTHS2": "Tegra Serial",
		"ttyO1":   "OMAP Serial",
		"ttyS3":   "Standard Serial",
		"COM4":    "COM Port",
		"rfcomm0": "Serial Port",
	}

	for name, expected := range tests {
		assert.Equal(t, expected, getPortType(name), name)
	}
}

func TestRenderSimple(t *testing.T) {
	var buf bytes.Buffer
	renderSimple(&buf, testInfos())

	assert.Equal(t, "/dev/ttyACM0\n/dev/ttyS0\n/dev/ttyAMA0\n/dev/ttyUSB1\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, testInfos())

	out := buf.String()
	assert.Contains(t, out, "Found 4 serial port(s):")
	for _, want := range []string{"Port", "Type", "Description", "/dev/ttyACM0", "USB CDC/ACM", "2341:0043", "/dev/ttyS0", "Standard Serial"} {
		assert.Contains(t, out, want)
	}
	assert.Greater(t, strings.Count(out, "\n"), 4)
}

func TestPortInfosKeepsVanishedPorts(t *testing.T) {
	infos := portInfos([]string{missingDevice})

	if assert.Len(t, infos, 1) {
		assert.Equal(t, missingDevice, infos[0].Path)
		assert.Equal(t, "Unknown", infos[0].Description)
	}
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, testInfos()[0])

	out := buf.String()
	assert.Contains(t, out, "Port Information: /dev/ttyACM0")
	assert.Contains(t, out, "USB Device Information:")
	assert.Contains(t, out, "Vendor ID:    2341")
	assert.Contains(t, out, "Product ID:   0043")
	assert.NotContains(t, out, "Serial:")

	buf.Reset()
	printInfo(&buf, testInfos()[1])
	assert.NotContains(t, buf.String(), "USB Device Information:")
}
