package console

// receive is the UART receive interrupt handler. It drains every byte the
// device has ready, filling the in-progress buffer and moving it to the
// pending queue when the terminator arrives.
//
// It runs in interrupt context: no allocation, no logging, no blocking.
func (c *Console) receive(u UART) {
	var b [1]byte
	for u.IRQUpdate() && u.IRQRxReady() {
		if u.FifoRead(b[:]) != 1 {
			continue
		}

		if c.cur == nil {
			slot, ok := c.free.dequeue()
			if !ok {
				// Pool exhausted: the byte is lost and the rest of the
				// FIFO waits for the next interrupt.
				c.stats.dropped.Add(1)
				return
			}
			c.cur = &c.pool.bufs[slot]
			c.cur.state = stateInProgress
		}

		if b[0] == c.cfg.Terminator {
			c.cur.n = c.cursor
			c.cur.state = statePending
			// Cannot fail: the buffer was in no queue.
			c.pending.enqueue(c.cur.slot)
			c.cur = nil
			c.cursor = 0
			c.stats.lines.Add(1)
			continue
		}

		if c.cursor < len(c.cur.data) {
			c.cur.data[c.cursor] = b[0]
			c.cursor++
		} else {
			c.stats.truncated.Add(1)
		}
	}
}
