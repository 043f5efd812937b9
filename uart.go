package console

// EOF is returned by UART.PollOut and Console.WriteByte when the transmit
// path can take no more output.
const EOF = -1

// UART is the byte-level hardware primitive the console is layered on.
//
// The callback installed with IRQCallbackSet runs in interrupt context: it
// must not block and is never run concurrently with itself.
type UART interface {
	// PollOut hands c to the transmitter, waiting for it to become ready.
	// It returns c, or EOF if the byte could not be sent.
	PollOut(c byte) int
	// FifoRead moves up to len(p) received bytes into p and returns the count.
	FifoRead(p []byte) int
	// IRQUpdate latches the interrupt status; it reports false when the
	// device has nothing left to service.
	IRQUpdate() bool
	// IRQRxReady reports whether at least one received byte is waiting.
	IRQRxReady() bool
	// IRQRxEnable starts delivery of receive interrupts to the callback.
	IRQRxEnable()
	// IRQCallbackSet installs the receive interrupt handler.
	IRQCallbackSet(cb func(UART))
}

// BindFunc looks up a UART by device name.
type BindFunc func(name string) (UART, error)
