package console

// Line is a completed input line borrowed from the console pool.
//
// The contents stay valid only until the next call to ReadLine (or Read),
// which hands the buffer back to the receiver. After that Valid reports
// false and Bytes returns nil. A Line must be used from the goroutine that
// called ReadLine.
type Line struct {
	buf *lineBuffer
	gen uint64
}

// Valid reports whether the line still owns its buffer.
func (l Line) Valid() bool {
	return l.buf != nil && l.buf.gen == l.gen
}

// Bytes returns the line without its terminator, or nil once recycled.
// The slice aliases the pool buffer; copy it to keep it past the next read.
func (l Line) Bytes() []byte {
	if !l.Valid() {
		return nil
	}
	return l.buf.data[:l.buf.n:l.buf.n]
}

// Len returns the number of bytes in the line, or 0 once recycled.
func (l Line) Len() int {
	if !l.Valid() {
		return 0
	}
	return l.buf.n
}

func (l Line) String() string {
	return string(l.Bytes())
}

// ReadLine returns the oldest completed line, or false if none has arrived.
// The line returned by the previous call is recycled first.
func (c *Console) ReadLine() (Line, bool) {
	if b := c.borrowed; b != nil {
		c.borrowed = nil
		b.gen++
		b.n = 0
		b.state = stateFree
		// Cannot fail: a borrowed buffer is in no queue.
		c.free.enqueue(b.slot)
	}

	slot, ok := c.pending.dequeue()
	if !ok {
		return Line{}, false
	}
	b := &c.pool.bufs[slot]
	b.state = stateBorrowed
	c.borrowed = b
	return Line{buf: b, gen: b.gen}, true
}
