package console

type bufState uint8

const (
	stateFree bufState = iota
	stateInProgress
	statePending
	stateBorrowed
)

// lineBuffer is one fixed-capacity slot of the pool. Its slot index is its
// identity; the data slice is never resized or reallocated.
type lineBuffer struct {
	slot  int
	data  []byte
	n     int
	state bufState
	// gen is bumped every time the buffer is recycled, so a Line handed
	// out before the recycle can tell it no longer owns the contents.
	gen uint64
}

// pool owns every line buffer for the lifetime of the console.
type pool struct {
	bufs []lineBuffer
}

func newPool(size, lineLen int) *pool {
	arena := make([]byte, size*lineLen)
	p := &pool{bufs: make([]lineBuffer, size)}
	for i := range p.bufs {
		p.bufs[i] = lineBuffer{
			slot: i,
			data: arena[i*lineLen : (i+1)*lineLen : (i+1)*lineLen],
		}
	}
	return p
}
