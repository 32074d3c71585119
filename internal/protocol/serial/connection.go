// internal/protocol/serial/connection.go
package serial

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"servo-service/internal/driver/lss"
)

// Connection is a serial port implementing lss.Port. The servo bus is a
// shared half-duplex line; the lss.Session layered on top serializes access,
// this type only guards the raw handle.
type Connection struct {
	config *Config
	port   serial.Port
	logger *zap.Logger
	mutex  sync.RWMutex
	isOpen bool
}

// Config represents serial port configuration
type Config struct {
	Port     string        `json:"port"`
	BaudRate int           `json:"baud_rate"`
	DataBits int           `json:"data_bits"`
	StopBits int           `json:"stop_bits"`
	Parity   string        `json:"parity"`
	Timeout  time.Duration `json:"timeout"`
}

// NewConnection creates a new serial connection
func NewConnection(config *Config, logger *zap.Logger) (*Connection, error) {
	if config.Port == "" {
		return nil, fmt.Errorf("port is required")
	}

	return &Connection{
		config: config,
		logger: logger.With(
			zap.String("protocol", "serial"),
			zap.String("port", config.Port),
		),
	}, nil
}

// Open opens the serial connection. A failure here maps to
// lss.ErrFailedOpeningSerialPort: it is fatal to the session being built.
func (c *Connection) Open(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.isOpen {
		return nil
	}

	// Configure serial port
	mode := &serial.Mode{
		BaudRate: c.config.BaudRate,
		DataBits: c.config.DataBits,
		StopBits: serial.StopBits(c.config.StopBits),
	}

	// Set parity
	switch c.config.Parity {
	case "none":
		mode.Parity = serial.NoParity
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}

	port, err := serial.Open(c.config.Port, mode)
	if err != nil {
		c.logger.Error("Failed to open serial port",
			zap.Error(err),
			zap.Int("baud_rate", c.config.BaudRate),
		)
		return fmt.Errorf("%w: %v", lss.ErrFailedOpeningSerialPort, err)
	}

	c.port = port
	c.isOpen = true

	c.logger.Info("Serial port opened successfully",
		zap.Int("baud_rate", c.config.BaudRate),
	)

	return nil
}

// Close closes the serial connection
func (c *Connection) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.isOpen || c.port == nil {
		return nil
	}

	if err := c.port.Close(); err != nil {
		c.logger.Error("Failed to close serial port", zap.Error(err))
		return fmt.Errorf("failed to close serial port: %w", err)
	}

	c.port = nil
	c.isOpen = false

	c.logger.Info("Serial port closed")
	return nil
}

// IsOpen returns whether the connection is open
func (c *Connection) IsOpen() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.isOpen && c.port != nil
}

// Write writes one frame to the serial port as a single logical write
func (c *Connection) Write(ctx context.Context, data []byte) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.isOpen || c.port == nil {
		return fmt.Errorf("port not open")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	n, err := c.port.Write(data)
	if err != nil {
		c.logger.Error("Failed to write to serial port",
			zap.Error(err),
			zap.Int("bytes_to_write", len(data)),
		)
		return fmt.Errorf("failed to write to serial port: %w", err)
	}

	if n != len(data) {
		return fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(data))
	}

	c.logger.Debug("Frame written to serial port", zap.ByteString("data", data))
	return nil
}

// ReadUntil accumulates bytes until the delimiter arrives or the deadline
// passes. On deadline it returns lss.ErrTimeout; whatever partial bytes were
// read are dropped, not recycled into the next exchange.
func (c *Connection) ReadUntil(ctx context.Context, delimiter byte, timeout time.Duration) ([]byte, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.isOpen || c.port == nil {
		return nil, fmt.Errorf("port not open")
	}

	deadline := time.Now().Add(timeout)
	accumulated := make([]byte, 0, 32)
	buffer := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			c.logger.Debug("Read timed out",
				zap.ByteString("partial", accumulated),
				zap.Duration("timeout", timeout),
			)
			return nil, lss.ErrTimeout
		}
		if err := c.port.SetReadTimeout(remaining); err != nil {
			return nil, fmt.Errorf("failed to set read timeout: %w", err)
		}

		n, err := c.port.Read(buffer)
		if err != nil {
			return nil, fmt.Errorf("failed to read from serial port: %w", err)
		}
		if n == 0 {
			// go.bug.st/serial signals an expired read timeout as a zero-byte read
			return nil, lss.ErrTimeout
		}

		accumulated = append(accumulated, buffer[0])
		if buffer[0] == delimiter {
			c.logger.Debug("Frame read from serial port", zap.ByteString("data", accumulated))
			return accumulated, nil
		}
	}
}

// Drain discards everything buffered on the receive side. The session calls
// this after a timed-out exchange so a late reply is not misattributed to the
// next request.
func (c *Connection) Drain(ctx context.Context) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.isOpen || c.port == nil {
		return fmt.Errorf("port not open")
	}

	if err := c.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("failed to drain serial port: %w", err)
	}

	c.logger.Debug("Input buffer drained")
	return nil
}

// GetConfig returns the connection configuration
func (c *Connection) GetConfig() *Config {
	return c.config
}
