package console

import "go.uber.org/zap"

const (
	// DefaultMaxLineLen is the per-line capacity of every pool buffer.
	DefaultMaxLineLen = 128
	// DefaultPoolSize is the number of line buffers.
	DefaultPoolSize = 2
	// DefaultDevice is the device name handed to Bind.
	DefaultDevice = "/dev/ttyS0"
	// DefaultBaudRate is used by TTYBinder when no rate is given.
	DefaultBaudRate = 115200
)

// Config holds the console parameters. Zero fields take the defaults above.
type Config struct {
	Device     string
	MaxLineLen int
	PoolSize   int
	Terminator byte // default '\n'

	// Bind resolves Device to a UART during Init. Required.
	Bind BindFunc

	Logger *zap.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.MaxLineLen <= 0 {
		cfg.MaxLineLen = DefaultMaxLineLen
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.Terminator == 0 {
		cfg.Terminator = '\n'
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
