/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	serial "github.com/allbin/serialtail"
	"github.com/allbin/serialtail/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.ListPorts()
		if err != nil {
			return fmt.Errorf("error listing ports: %w", err)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		infos := filterPorts(portInfos(ports), filterType)
		out := cmd.OutOrStdout()

		if len(infos) == 0 {
			if filterType != "" && filterType != "all" {
				fmt.Fprintf(out, "No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Fprintln(out, "No serial ports found")
			}
			return nil
		}

		if tableFormat {
			renderTable(out, infos)
		} else {
			renderSimple(out, infos)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// portInfos looks up every port. Ports that vanish between listing and
// lookup keep their path only.
func portInfos(ports []string) []*serial.PortInfo {
	infos := make([]*serial.PortInfo, 0, len(ports))
	for _, port := range ports {
		info, err := serial.GetPortInfo(port)
		if err != nil {
			info = &serial.PortInfo{Path: port, Name: port, Description: "Unknown"}
		}
		infos = append(infos, info)
	}
	return infos
}

// filterPorts filters the port list based on the specified filter type
func filterPorts(infos []*serial.PortInfo, filterType string) []*serial.PortInfo {
	filterType = strings.ToLower(filterType)
	if filterType == "" || filterType == "all" {
		return infos
	}

	var filtered []*serial.PortInfo
	for _, info := range infos {
		name := strings.ToLower(info.Name)
		switch filterType {
		case "usb":
			if info.IsUSB || strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm") {
				filtered = append(filtered, info)
			}
		case "standard":
			if strings.HasPrefix(name, "ttys") || strings.HasPrefix(name, "com") {
				filtered = append(filtered, info)
			}
		case "arm":
			if strings.HasPrefix(name, "ttyama") {
				filtered = append(filtered, info)
			}
		}
	}
	return filtered
}

const (
	columnKeyPort        = "port"
	columnKeyType        = "type"
	columnKeyDescription = "description"
	columnKeyUSB         = "usb"
)

// renderTable renders the port list as a static bordered table
func renderTable(w io.Writer, infos []*serial.PortInfo) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colors.Mauve)

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Found %d serial port(s):", len(infos))))

	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 16),
		table.NewColumn(columnKeyType, "Type", 16),
		table.NewColumn(columnKeyDescription, "Description", 30),
		table.NewColumn(columnKeyUSB, "USB ID", 11),
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		usbID := ""
		if info.VendorID != "" || info.ProductID != "" {
			usbID = info.VendorID + ":" + info.ProductID
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort:        info.Path,
			columnKeyType:        getPortType(info.Name),
			columnKeyDescription: info.Description,
			columnKeyUSB:         usbID,
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		HeaderStyle(headerStyle).
		BorderRounded()

	fmt.Fprintln(w, t.View())
}

// renderSimple renders the port list in simple text format
func renderSimple(w io.Writer, infos []*serial.PortInfo) {
	for _, info := range infos {
		fmt.Fprintln(w, info.Path)
	}
}

// getPortType returns a more specific type classification for the port
func getPortType(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "ttyusb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial"
	case strings.HasPrefix(name, "ttysac"):
		return "Samsung Serial"
	case strings.HasPrefix(name, "ttyths"):
		return "Tegra Serial"
	case strings.HasPrefix(name, "ttyo"):
		return "OMAP Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	case strings.HasPrefix(name, "com"):
		return "COM Port"
	default:
		return "Serial Port"
	}
}
