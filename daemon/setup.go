package daemon

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/aalemi-dev/stdlib-xray/observability"
)

// Client sends serialized segments to the X-Ray daemon over UDP.
//
// Each document is framed as the JSON header {"format":"json","version":1}, a newline
// and the segment document, in a single datagram. Documents larger than
// Config.MaxPacketSize are split per subsegment.
//
// Client implements segment.Submitter and is safe for concurrent use.
type Client struct {
	cfg     Config
	address string

	mu     sync.Mutex
	conn   net.Conn
	closed bool

	logger   Logger
	observer observability.Observer
}

// NewClient resolves the daemon address and opens a connected UDP socket.
// UDP is connectionless, so a missing daemon is only noticed, if at all, on write.
//
// Example:
//
//	cfg, err := daemon.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	client, err := daemon.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	root.End().Submit(client)
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	address, err := cfg.udpAddress()
	if err != nil {
		return nil, err
	}

	serverAddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrConnectionFailed, address, err)
	}

	conn, err := net.DialUDP("udp", nil, serverAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnectionFailed, address, err)
	}

	return newClientWithConn(cfg, address, conn), nil
}

func newClientWithConn(cfg Config, address string, conn net.Conn) *Client {
	return &Client{
		cfg:     cfg.withDefaults(),
		address: address,
		conn:    conn,
	}
}

// Address returns the resolved UDP endpoint.
func (c *Client) Address() string {
	return c.address
}

// Close releases the socket. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.conn.Close(); err != nil {
		c.logWarn(context.Background(), "failed to close daemon socket", err, nil)
		return err
	}
	return nil
}

func (c *Client) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (c *Client) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
