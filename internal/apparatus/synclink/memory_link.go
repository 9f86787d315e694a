package synclink

import "sync"

const defaultMemoryCapacity = 32

// MemoryLink is one end of an in-process link pair. Frames that do not fit in
// the peer's buffer are not acknowledged.
type MemoryLink struct {
	inbox chan []byte
	peer  *MemoryLink

	mu       sync.Mutex
	failNext int
	attempts int
}

// NewMemoryPair returns two connected link ends.
func NewMemoryPair(capacity int) (*MemoryLink, *MemoryLink) {
	if capacity < 1 {
		capacity = defaultMemoryCapacity
	}
	a := &MemoryLink{inbox: make(chan []byte, capacity)}
	b := &MemoryLink{inbox: make(chan []byte, capacity)}
	a.peer, b.peer = b, a
	return a, b
}

func (l *MemoryLink) Transmit(payload []byte) bool {
	l.mu.Lock()
	l.attempts++
	if l.failNext > 0 {
		l.failNext--
		l.mu.Unlock()
		return false
	}
	l.mu.Unlock()

	frame := append([]byte(nil), payload...)
	select {
	case l.peer.inbox <- frame:
		return true
	default:
		return false
	}
}

func (l *MemoryLink) Receive() ([]byte, bool) {
	select {
	case frame := <-l.inbox:
		return frame, true
	default:
		return nil, false
	}
}

// FailNext makes the next n transmit attempts go unacknowledged.
func (l *MemoryLink) FailNext(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failNext = n
}

// Attempts is the number of transmit attempts made on this end.
func (l *MemoryLink) Attempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts
}

// Inject places a raw frame in this end's inbox, as if the peer had sent it.
func (l *MemoryLink) Inject(frame []byte) {
	l.inbox <- frame
}
