// Package config loads serialtail settings from defaults, an optional YAML
// config file, SERIALTAIL_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	serial "github.com/allbin/serialtail"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SERIALTAIL_SERIAL_DEVICE or SERIALTAIL_LOGGING_LEVEL.
const EnvPrefix = "SERIALTAIL"

// Config is the root configuration structure.
type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// SerialConfig contains the serial device and line decoding settings.
type SerialConfig struct {
	Device      string `mapstructure:"device"`
	BaudRate    int    `mapstructure:"baud_rate"`
	DataBits    int    `mapstructure:"data_bits"`
	StopBits    int    `mapstructure:"stop_bits"`
	Parity      string `mapstructure:"parity"`
	FlowControl string `mapstructure:"flow_control"`
	Exclusive   bool   `mapstructure:"exclusive"`
	Encoding    string `mapstructure:"encoding"`
}

// LoggingConfig contains diagnostic logging settings. Logs always go to
// stderr so they never mix with the line stream on stdout.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WatchConfig contains settings of the full-screen viewer.
type WatchConfig struct {
	MaxLines int `mapstructure:"max_lines"`
}

// DefaultMaxLines is how many lines the viewer keeps by default.
const DefaultMaxLines = 10000

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"baud":         "serial.baud_rate",
	"data-bits":    "serial.data_bits",
	"stop-bits":    "serial.stop_bits",
	"parity":       "serial.parity",
	"flow-control": "serial.flow_control",
	"exclusive":    "serial.exclusive",
	"encoding":     "serial.encoding",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"max-lines":    "watch.max_lines",
}

// SetDefaults registers every key with its default so environment variables
// are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := serial.DefaultConfig()
	v.SetDefault("serial.device", serial.DefaultDevice)
	v.SetDefault("serial.baud_rate", d.BaudRate)
	v.SetDefault("serial.data_bits", d.DataBits)
	v.SetDefault("serial.stop_bits", d.StopBits)
	v.SetDefault("serial.parity", d.Parity.String())
	v.SetDefault("serial.flow_control", d.FlowControl.String())
	v.SetDefault("serial.exclusive", d.Exclusive)
	v.SetDefault("serial.encoding", "utf-8")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("watch.max_lines", DefaultMaxLines)
}

// RegisterFlags adds the serial and logging flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := serial.DefaultConfig()
	fs.IntP("baud", "b", d.BaudRate, "Baud rate")
	fs.Int("data-bits", d.DataBits, "Data bits: 5, 6, 7, 8")
	fs.Int("stop-bits", d.StopBits, "Stop bits: 1, 2")
	fs.String("parity", d.Parity.String(), "Parity: none, odd, even")
	fs.StringP("flow-control", "f", d.FlowControl.String(), "Flow control: none, rtscts")
	fs.Bool("exclusive", d.Exclusive, "Lock the device against other openers")
	fs.StringP("encoding", "e", "utf-8", "Text encoding of received lines (WHATWG label)")
	fs.String("log-level", "warn", "Log level: debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text, json")
}

// RegisterWatchFlags adds the viewer flags to fs.
func RegisterWatchFlags(fs *pflag.FlagSet) {
	fs.Int("max-lines", DefaultMaxLines, "Lines kept in the viewer before the oldest are dropped")
}

// BindFlags binds the flags registered by RegisterFlags to their keys. Only
// flags the user actually set override lower layers.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration into a Config.
//
// If path is non-empty that file must exist. Otherwise serialtail.yaml is
// looked up in $HOME/.config/serialtail and the working directory, and a
// missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("serialtail")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/serialtail")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that can be checked without opening the device.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Serial.Device) == "" {
		return fmt.Errorf("%w: serial.device is empty", serial.ErrInvalidConfig)
	}
	if _, err := c.Serial.Options(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Serial.Encoding) == "" {
		return fmt.Errorf("%w: serial.encoding is empty", serial.ErrInvalidConfig)
	}
	if c.Watch.MaxLines < 1 {
		return fmt.Errorf("%w: watch.max_lines must be at least 1", serial.ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", serial.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Options converts the serial settings into port options.
func (s SerialConfig) Options() ([]serial.Option, error) {
	parity, err := serial.ParseParity(s.Parity)
	if err != nil {
		return nil, err
	}
	flowControl, err := serial.ParseFlowControl(s.FlowControl)
	if err != nil {
		return nil, err
	}

	opts := []serial.Option{
		serial.WithBaudRate(s.BaudRate),
		serial.WithDataBits(s.DataBits),
		serial.WithStopBits(s.StopBits),
		serial.WithParity(parity),
		serial.WithFlowControl(flowControl),
		serial.WithExclusive(s.Exclusive),
	}

	// Surface option errors here rather than at open time.
	if _, err := serial.NewConfig(opts...); err != nil {
		return nil, fmt.Errorf("serial settings: %w", err)
	}

	return opts, nil
}
