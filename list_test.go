package serial

import (
	"testing"

	"go.bug.st/serial/enumerator"
)

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"COM4", "COM Port"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		result := getPortDescription(test.name)
		if result != test.expected {
			t.Errorf("getPortDescription(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestApplyPortDetails(t *testing.T) {
	details := []*enumerator.PortDetails{
		nil,
		{Name: "/dev/ttyS0", IsUSB: false},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "0d28", PID: "0204", SerialNumber: "9900000"},
	}

	info := &PortInfo{Name: "ttyACM0", Path: "/dev/ttyACM0"}
	applyPortDetails(info, details)
	if !info.IsUSB {
		t.Fatal("expected ttyACM0 to be reported as USB")
	}
	if info.VendorID != "0d28" || info.ProductID != "0204" || info.SerialNumber != "9900000" {
		t.Errorf("unexpected USB metadata: %+v", info)
	}

	plain := &PortInfo{Name: "ttyS0", Path: "/dev/ttyS0"}
	applyPortDetails(plain, details)
	if plain.IsUSB || plain.VendorID != "" {
		t.Errorf("non-USB port gained USB metadata: %+v", plain)
	}

	missing := &PortInfo{Name: "ttyUSB9", Path: "/dev/ttyUSB9"}
	applyPortDetails(missing, details)
	if missing.IsUSB {
		t.Errorf("unlisted port gained USB metadata: %+v", missing)
	}
}

func TestApplyPortDetailsByName(t *testing.T) {
	details := []*enumerator.PortDetails{
		{Name: "COM4", IsUSB: true, VID: "0d28", PID: "0204"},
	}

	info := &PortInfo{Name: "COM4", Path: "COM4"}
	applyPortDetails(info, details)
	if info.VendorID != "0d28" {
		t.Errorf("VendorID = %q, want 0d28", info.VendorID)
	}
}
