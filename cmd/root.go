/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	serial "github.com/allbin/serialtail"
	"github.com/allbin/serialtail/internal/config"
	"github.com/allbin/serialtail/internal/linereader"
	"github.com/allbin/serialtail/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialtail [device]",
	Short: "Print lines received on a serial port",
	Long: `Open a serial device and print every line it sends to stdout.

Each line is read up to its newline, decoded as text and stripped of
surrounding whitespace before printing. The port runs at 115200 baud, 8N1,
unless configured otherwise. Press Ctrl+C to stop.

If the device sends something that cannot be read or decoded, reading stops
quietly. Run with --log-level debug to see why.

Example usage:
  serialtail
  serialtail /dev/ttyUSB0
  serialtail /dev/ttyUSB0 --baud 9600 --encoding latin1
  SERIALTAIL_SERIAL_DEVICE=/dev/ttyACM1 serialtail`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		logger := logging.New(cfg.Logging, cmd.ErrOrStderr())

		ctx, stop := notifyInterrupt(cmd.Context(), logger)
		defer stop()

		return runRead(ctx, cfg, cmd.OutOrStdout(), logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.config/serialtail/serialtail.yaml)")
	config.RegisterFlags(rootCmd.Flags())
}

// loadConfig resolves the configuration for cmd. A positional device
// argument overrides every other source.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	v := viper.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}

	if len(args) > 0 {
		v.Set("serial.device", args[0])
	}

	return config.Load(v, path)
}

// runRead prints lines from the configured device to out until ctx is
// cancelled or the device stops producing readable text.
//
// Only a failure to open the port is returned. Read and decode errors end
// the loop quietly and are logged at debug level.
func runRead(ctx context.Context, cfg *config.Config, out io.Writer, logger *logging.Logger) error {
	dec, err := linereader.NewDecoder(cfg.Serial.Encoding)
	if err != nil {
		return err
	}

	opts, err := cfg.Serial.Options()
	if err != nil {
		return err
	}

	port, err := serial.Open(cfg.Serial.Device, opts...)
	if err != nil {
		return fmt.Errorf("failed to open port: %w", err)
	}

	log := logger.With("device", port.Device())
	log.Info("port opened", "frame", port.Config().Frame())

	err = linereader.Run(ctx, port, linereader.WriterHandler(out),
		linereader.WithDecoder(dec),
		linereader.WithLogger(log.Logger),
	)
	if err != nil {
		log.Debug("read loop ended", "error", err)
		return nil
	}

	log.Info("read loop stopped")
	return nil
}
