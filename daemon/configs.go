package daemon

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Defaults applied to zero-valued Config fields.
const (
	// DefaultAddress is where the X-Ray daemon listens out of the box.
	DefaultAddress = "127.0.0.1:2000"

	// DefaultMaxPacketSize keeps a datagram under the daemon's 64KB read buffer.
	DefaultMaxPacketSize = 64000

	// DefaultWriteTimeout bounds a single datagram write.
	DefaultWriteTimeout = 100 * time.Millisecond
)

// Config defines how the client reaches the daemon.
type Config struct {
	// Address of the daemon. Accepts "host:port" or the two-protocol form
	// "tcp:host:port udp:host:port", of which the UDP part is used.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "address" key
	//   - Environment variable AWS_XRAY_DAEMON_ADDRESS
	//
	// Default: "127.0.0.1:2000"
	Address string `yaml:"address" envconfig:"AWS_XRAY_DAEMON_ADDRESS"`

	// MaxPacketSize is the largest datagram sent, header included. Documents above it
	// are split into one datagram per subsegment.
	//
	// Default: 64000
	MaxPacketSize int `yaml:"max_packet_size" envconfig:"XRAY_MAX_PACKET_SIZE"`

	// WriteTimeout bounds each datagram write. A negative value disables the deadline.
	//
	// Default: 100ms
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"XRAY_WRITE_TIMEOUT"`
}

// LoadConfig reads the configuration from the environment and applies defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = DefaultAddress
	}
	if c.MaxPacketSize <= 0 {
		c.MaxPacketSize = DefaultMaxPacketSize
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	return c
}

// udpAddress extracts the UDP endpoint from Address.
func (c Config) udpAddress() (string, error) {
	fields := strings.Fields(c.Address)
	switch len(fields) {
	case 1:
		addr := strings.TrimPrefix(fields[0], "udp:")
		if strings.HasPrefix(addr, "tcp:") {
			return "", fmt.Errorf("%w: %q has no udp endpoint", ErrInvalidAddress, c.Address)
		}
		return addr, nil
	case 2:
		for _, f := range fields {
			if addr, ok := strings.CutPrefix(f, "udp:"); ok {
				return addr, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAddress, c.Address)
}
