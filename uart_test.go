package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeUART is an in-memory UART with a level-triggered receive interrupt:
// feed keeps invoking the handler until the FIFO is empty.
type fakeUART struct {
	rx        []byte
	tx        []byte
	txLimit   int // PollOut returns EOF once tx reaches this length; 0 means no limit
	cb        func(UART)
	rxEnabled bool
	events    []string
}

func (f *fakeUART) PollOut(c byte) int {
	if f.txLimit > 0 && len(f.tx) >= f.txLimit {
		return EOF
	}
	f.tx = append(f.tx, c)
	return int(c)
}

func (f *fakeUART) FifoRead(p []byte) int {
	n := copy(p, f.rx)
	f.rx = f.rx[n:]
	return n
}

func (f *fakeUART) IRQUpdate() bool  { return true }
func (f *fakeUART) IRQRxReady() bool { return len(f.rx) > 0 }

func (f *fakeUART) IRQRxEnable() {
	f.rxEnabled = true
	f.events = append(f.events, "rx-enable")
}

func (f *fakeUART) IRQCallbackSet(cb func(UART)) {
	f.cb = cb
	f.events = append(f.events, "callback")
}

func (f *fakeUART) feed(s string) {
	f.rx = append(f.rx, s...)
	if !f.rxEnabled || f.cb == nil {
		return
	}
	for len(f.rx) > 0 {
		f.cb(f)
	}
}

func bindTo(u UART) BindFunc {
	return func(string) (UART, error) { return u, nil }
}

func newTestConsole(t *testing.T, maxLen, poolSize int) (*Console, *fakeUART) {
	t.Helper()
	u := &fakeUART{}
	c := New(Config{
		Device:     "fake0",
		MaxLineLen: maxLen,
		PoolSize:   poolSize,
		Bind:       bindTo(u),
	})
	require.NoError(t, c.Init())
	return c, u
}

// requirePoolInvariant checks every buffer is accounted for exactly once.
func requirePoolInvariant(t *testing.T, c *Console) {
	t.Helper()
	seen := make(map[int]string)
	mark := func(slot int, where string) {
		prev, dup := seen[slot]
		require.Falsef(t, dup, "buffer %d in %s and %s", slot, prev, where)
		seen[slot] = where
	}
	for _, slot := range queueContents(c.free) {
		mark(slot, "free")
		require.Equal(t, stateFree, c.pool.bufs[slot].state)
	}
	for _, slot := range queueContents(c.pending) {
		mark(slot, "pending")
		require.Equal(t, statePending, c.pool.bufs[slot].state)
	}
	if c.cur != nil {
		mark(c.cur.slot, "in-progress")
		require.Equal(t, stateInProgress, c.cur.state)
	}
	if c.borrowed != nil {
		mark(c.borrowed.slot, "borrowed")
		require.Equal(t, stateBorrowed, c.borrowed.state)
	}
	require.Len(t, seen, len(c.pool.bufs))
}

func queueContents(q *queue) []int {
	var out []int
	for i := q.head.Load(); i != q.tail.Load(); i++ {
		out = append(out, q.slots[i%uint64(len(q.slots))])
	}
	return out
}
