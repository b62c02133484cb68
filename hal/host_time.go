package hal

// hostTime emits one tick per display refresh.
//
// The channel is buffered so a slow consumer sees every refresh; if it falls more
// than a full buffer behind, new refreshes are dropped until it drains.
type hostTime struct {
	ch  chan uint64
	seq uint64
}

const tickBuffer = 256

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, tickBuffer)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() {
	t.seq++
	select {
	case t.ch <- t.seq:
	default:
	}
}
