// internal/block/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client reaches the EEPROM register block through a Modbus TCP
// register gateway on the target, for bench and remote-debug use. Each
// 32-bit peripheral register maps onto a big-endian pair of holding
// registers at base + off/2 (high word first).
// It serializes requests because it mutates SlaveId per call.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
	unitID  uint8
	base    uint16
}

type Config struct {
	Endpoint string
	UnitID   uint8
	Base     uint16 // holding-register address of peripheral offset 0
	Timeout  time.Duration
}

// New creates a connected gateway client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("block modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
		unitID:  cfg.UnitID,
		base:    cfg.Base,
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

func (c *Client) Load(off uint32) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = c.unitID

	p, err := c.client.ReadHoldingRegisters(c.regAddr(off), 2)
	if err != nil {
		return 0, err
	}
	if len(p) != 4 {
		return 0, fmt.Errorf("block modbus: short read payload: %d bytes", len(p))
	}
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3]), nil
}

func (c *Client) Store(off uint32, val uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = c.unitID

	payload := []byte{
		byte(val >> 24), byte(val >> 16),
		byte(val >> 8), byte(val),
	}
	_, err := c.client.WriteMultipleRegisters(c.regAddr(off), 2, payload)
	return err
}

func (c *Client) regAddr(off uint32) uint16 {
	return c.base + uint16(off/2)
}
