package console

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Console is a line-oriented recovery console on top of a UART.
//
// Received bytes are assembled into lines by the UART's receive interrupt
// handler; a single consumer retrieves them with ReadLine or Read. Input
// that arrives while every pool buffer is in use is dropped.
type Console struct {
	cfg  Config
	log  *zap.Logger
	uart UART

	pool    *pool
	free    *queue
	pending *queue

	// Owned by the receive handler.
	cur    *lineBuffer
	cursor int

	// Owned by the consumer.
	borrowed *lineBuffer

	stats counters
}

// New allocates a console and its line buffer pool. Call Init before use.
func New(cfg Config) *Console {
	cfg = cfg.withDefaults()
	return &Console{
		cfg:     cfg,
		log:     cfg.Logger.With(zap.String("device", cfg.Device)),
		pool:    newPool(cfg.PoolSize, cfg.MaxLineLen),
		free:    newQueue(cfg.PoolSize),
		pending: newQueue(cfg.PoolSize),
	}
}

// Init resets the line queues, binds the console device, drains any stale
// input and enables receive interrupts.
//
// If the device cannot be bound the returned error wraps
// ErrDeviceUnavailable and the hardware is left untouched.
func (c *Console) Init() error {
	if c.uart != nil {
		return ErrAlreadyInitialized
	}

	c.free.reset()
	c.pending.reset()
	for i := range c.pool.bufs {
		b := &c.pool.bufs[i]
		b.n = 0
		b.state = stateFree
		c.free.enqueue(b.slot)
	}
	c.cur = nil
	c.cursor = 0
	c.borrowed = nil

	if c.cfg.Bind == nil {
		return fmt.Errorf("%w: no bind function configured", ErrDeviceUnavailable)
	}
	u, err := c.cfg.Bind(c.cfg.Device)
	if err != nil || u == nil {
		if err == nil {
			err = errors.New("device not found")
		}
		if cl, ok := u.(io.Closer); ok {
			cl.Close()
		}
		c.log.Error("console bind failed", zap.Error(err))
		return fmt.Errorf("%w: bind %q: %w", ErrDeviceUnavailable, c.cfg.Device, err)
	}

	u.IRQCallbackSet(c.receive)

	var b [1]byte
	drained := 0
	for u.IRQRxReady() {
		drained += u.FifoRead(b[:])
	}

	c.uart = u
	u.IRQRxEnable()

	c.log.Info("console ready",
		zap.Int("pool_size", c.cfg.PoolSize),
		zap.Int("max_line_len", c.cfg.MaxLineLen),
		zap.Int("drained", drained))
	return nil
}

// WriteByte sends one byte, waiting for the transmitter. It returns the
// byte, or EOF if the device refused it.
func (c *Console) WriteByte(b byte) int {
	if c.uart == nil {
		return EOF
	}
	return c.uart.PollOut(b)
}

// Write sends p one byte at a time. It stops at the first byte the device
// refuses and returns io.EOF with the count sent so far.
func (c *Console) Write(p []byte) (int, error) {
	for i, b := range p {
		if c.WriteByte(b) == EOF {
			return i, io.EOF
		}
	}
	return len(p), nil
}

// Read copies the next line into p as a NUL-terminated string.
//
// If no line is ready it returns (0, false). Otherwise at most len(p)-1
// bytes are copied, longer lines are cut short, and n is the copied length
// plus one for the terminator. An empty p consumes nothing.
func (c *Console) Read(p []byte) (n int, newline bool) {
	if len(p) == 0 {
		return 0, false
	}
	line, ok := c.ReadLine()
	if !ok {
		return 0, false
	}
	n = copy(p[:len(p)-1], line.Bytes())
	p[n] = 0
	return n + 1, true
}

// Close releases the bound device if it can be closed.
func (c *Console) Close() error {
	if cl, ok := c.uart.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
