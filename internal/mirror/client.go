// internal/mirror/client.go
package mirror

import (
	"errors"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// EndpointClient is a single Modbus TCP connection to one endpoint.
// It serializes requests because it mutates SlaveId per write.
// The handler dials lazily on the first request and after any drop.
type EndpointClient struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type ClientConfig struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg ClientConfig) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("mirror modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.IdleTimeout = 10 * cfg.Timeout

	return &EndpointClient{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID

	qty := uint16(len(regs))
	_, err := c.client.WriteMultipleRegisters(addr, qty, packRegisters(regs))
	if err != nil {
		// force a fresh dial on the next write
		_ = c.handler.Close()
	}
	return err
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
