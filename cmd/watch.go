/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	serial "github.com/allbin/serialtail"
	"github.com/allbin/serialtail/internal/config"
	"github.com/allbin/serialtail/internal/linereader"
	"github.com/allbin/serialtail/internal/logging"
	"github.com/allbin/serialtail/internal/tui/components"
	"github.com/allbin/serialtail/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [device]",
	Short: "Show received lines in a full-screen viewer",
	Long: `Open a serial device and show every received line in a scrollable
full-screen viewer.

Lines are shown with their arrival time. The status bar shows the port,
its line settings, whether it is still being read and how many lines were
received.

Keys:
  q, ctrl+c  quit
  c          clear buffer
  t          toggle timestamps
  f          toggle follow
  ?          toggle help

Example usage:
  serialtail watch
  serialtail watch /dev/ttyUSB0 --baud 9600`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
		return runWatchTUI(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	config.RegisterFlags(watchCmd.Flags())
	config.RegisterWatchFlags(watchCmd.Flags())
}

func runWatchTUI(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	dec, err := linereader.NewDecoder(cfg.Serial.Encoding)
	if err != nil {
		return err
	}

	opts, err := cfg.Serial.Options()
	if err != nil {
		return err
	}

	m, err := newWatchModel(ctx, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		watchPort(m.Context(), cfg.Serial.Device, opts, dec, logger, p.Send)
	}()

	_, err = p.Run()

	// Ensure the read loop is gone before returning
	m.Cancel()
	wg.Wait()
	return err
}

// newWatchModel builds the viewer model for the configured port.
func newWatchModel(ctx context.Context, cfg *config.Config, opts []serial.Option) (*models.WatchModel, error) {
	portConfig, err := serial.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	m := models.NewWatchModel(ctx, cfg.Serial.Device, portConfig.Frame())
	m.Lines().SetMaxLines(cfg.Watch.MaxLines)
	return m, nil
}

// watchPort opens device and reports its status and lines through send
// until ctx is cancelled or the read loop ends.
func watchPort(ctx context.Context, device string, opts []serial.Option, dec linereader.Decoder, logger *logging.Logger, send func(tea.Msg)) {
	port, err := serial.Open(device, opts...)
	if err != nil {
		send(components.ConnectionStatusMsg{Connected: false, Error: fmt.Errorf("failed to open port: %w", err)})
		return
	}

	log := logger.With("device", device)
	send(components.ConnectionStatusMsg{Connected: true})

	err = linereader.Run(ctx, port, func(line string) error {
		send(components.LineMsg{Timestamp: time.Now(), Text: line})
		return nil
	}, linereader.WithDecoder(dec), linereader.WithLogger(log.Logger))
	if err != nil {
		log.Debug("read loop ended", "error", err)
	}

	send(components.LoopEndedMsg{Error: err})
}
