//go:build linux

package console

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ttyUART drives a Linux serial device as a console UART.
// Receive interrupts are emulated by a goroutine that polls the device and
// runs the installed callback whenever input is readable.
type ttyUART struct {
	fd         int
	device     string
	done       chan struct{}
	closeOnce  sync.Once
	enableOnce sync.Once
	wg         sync.WaitGroup
	pipeR      int // self-pipe read fd
	pipeW      int // self-pipe write fd
	cb         func(UART)
	log        *zap.Logger
}

// TTYBinder returns a BindFunc that opens the named device as a raw TTY at
// the given baud rate. A zero baud uses DefaultBaudRate.
func TTYBinder(baud int, logger *zap.Logger) BindFunc {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(name string) (UART, error) {
		t, err := openTTY(name, baud, logger)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

func openTTY(device string, baud int, logger *zap.Logger) (*ttyUART, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}

	if err := makeRaw(fd, baud); err != nil {
		unix.Close(fd)
		return nil, err
	}

	// Create self-pipe for killability
	pipeFds := make([]int, 2)
	if err := unix.Pipe2(pipeFds, unix.O_CLOEXEC); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &ttyUART{
		fd:     fd,
		device: device,
		done:   make(chan struct{}),
		pipeR:  pipeFds[0],
		pipeW:  pipeFds[1],
		log:    logger.With(zap.String("tty", device)),
	}, nil
}

var baudRates = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
}

// makeRaw puts the tty into 8N1 raw mode: no line editing, echo, signals,
// flow control or output processing. Reads return as soon as one byte is in.
func makeRaw(fd, baud int) error {
	speed, ok := baudRates[baud]
	if !ok {
		return fmt.Errorf("unsupported baud rate %d", baud)
	}

	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}

	const (
		inputProcessing = unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
			unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
		localModes = unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	)
	tio.Iflag &^= inputProcessing
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= localModes
	tio.Cflag = tio.Cflag&^(unix.CSIZE|unix.PARENB|unix.CBAUD) | unix.CS8 | speed
	tio.Cc[unix.VMIN], tio.Cc[unix.VTIME] = 1, 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}

func (t *ttyUART) closed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// PollOut writes c, waiting for the device to accept it.
func (t *ttyUART) PollOut(c byte) int {
	b := [1]byte{c}
	for !t.closed() {
		n, err := unix.Write(t.fd, b[:])
		if n == 1 {
			return int(c)
		}
		switch {
		case errors.Is(err, unix.EINTR):
		case errors.Is(err, unix.EAGAIN):
			if !t.wait(unix.POLLOUT, -1) {
				return EOF
			}
		default:
			return EOF
		}
	}
	return EOF
}

func (t *ttyUART) FifoRead(p []byte) int {
	n, err := unix.Read(t.fd, p)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (t *ttyUART) IRQUpdate() bool {
	return !t.closed()
}

func (t *ttyUART) IRQRxReady() bool {
	return t.wait(unix.POLLIN, 0)
}

func (t *ttyUART) IRQCallbackSet(cb func(UART)) {
	t.cb = cb
}

func (t *ttyUART) IRQRxEnable() {
	t.enableOnce.Do(func() {
		t.wg.Add(1)
		go t.rxLoop()
	})
}

// wait polls the device for events, giving up when the self-pipe fires.
// A negative timeout waits forever.
func (t *ttyUART) wait(events int16, timeoutMs int) bool {
	for {
		pfd := []unix.PollFd{
			{Fd: int32(t.fd), Events: events},
			{Fd: int32(t.pipeR), Events: unix.POLLIN},
		}
		_, err := unix.Poll(pfd, timeoutMs)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || pfd[1].Revents != 0 || hungUp(pfd[0].Revents) {
			return false
		}
		return pfd[0].Revents&events != 0
	}
}

func hungUp(revents int16) bool {
	return revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0
}

func (t *ttyUART) rxLoop() {
	defer t.wg.Done()
	for {
		pfd := []unix.PollFd{
			{Fd: int32(t.fd), Events: unix.POLLIN},
			{Fd: int32(t.pipeR), Events: unix.POLLIN},
		}
		_, err := unix.Poll(pfd, -1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			t.log.Error("poll failed", zap.Error(err))
			return
		}
		if t.closed() || pfd[1].Revents&unix.POLLIN != 0 {
			return
		}
		// A hung up tty also reports POLLIN, so check for hangup first.
		if ev := pfd[0].Revents; hungUp(ev) {
			t.log.Warn("receive stopped", zap.Int16("revents", ev))
			return
		}
		if pfd[0].Revents&unix.POLLIN != 0 {
			if cb := t.cb; cb != nil {
				cb(t)
			}
		}
	}
}

// Close stops the receive goroutine and closes the device.
// Safe to call multiple times; subsequent calls are no-ops.
func (t *ttyUART) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		// Wake up poll using self-pipe
		unix.Write(t.pipeW, []byte{1})
		t.wg.Wait()
		err = unix.Close(t.fd)
		unix.Close(t.pipeR)
		unix.Close(t.pipeW)
	})
	return err
}
