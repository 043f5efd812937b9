// Package console provides the line input side of a serial recovery console,
// designed for boot environments where input arrives one byte per receive
// interrupt and a polling shell loop consumes whole lines.
//
// The receive interrupt handler assembles bytes into a small fixed pool of
// line buffers and queues completed lines; the shell retrieves them with
// ReadLine or Read. Buffers move between a free queue and a pending queue
// through lock-free single-producer/single-consumer queues, so the receive
// path never allocates or blocks.
//
// Features:
//   - Fixed pool of fixed-size line buffers, allocated once
//   - Lines longer than MaxLineLen are truncated, not split
//   - Input arriving while every buffer is in use is dropped silently
//     (see Stats and NewCollector for the counts)
//   - Linux TTY backend with emulated receive interrupts (TTYBinder)
//   - PTY-based tests for the TTY backend
//
// A Line returned by ReadLine is borrowed: its contents are only valid until
// the next ReadLine or Read call, which recycles the buffer.
//
// Example usage:
//
//	c := console.New(console.Config{
//	    Device: "/dev/ttyUSB0",
//	    Bind:   console.TTYBinder(115200, logger),
//	    Logger: logger,
//	})
//	if err := c.Init(); err != nil {
//	    // errors.Is(err, console.ErrDeviceUnavailable)
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	for {
//	    line, ok := c.ReadLine()
//	    if !ok {
//	        time.Sleep(10 * time.Millisecond)
//	        continue
//	    }
//	    fmt.Fprintf(c, "got %q\n", line.Bytes())
//	}
package console
