package hardware

import "sync"

// SimulatedBackend keeps the box I/O in memory. Inputs are set by the caller
// and outputs can be inspected; it is safe for concurrent use.
type SimulatedBackend struct {
	mu        sync.RWMutex
	leverUp   bool
	leverDown bool
	remote    bool
	dispenser bool
	lock      LockDirection
	closed    bool
}

func NewSimulatedBackend() *SimulatedBackend {
	return &SimulatedBackend{}
}

func (b *SimulatedBackend) RawLeverUp() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.leverUp
}

func (b *SimulatedBackend) RawLeverDown() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.leverDown
}

func (b *SimulatedBackend) RawRemote() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.remote
}

func (b *SimulatedBackend) SetDispenser(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispenser = on
	return nil
}

func (b *SimulatedBackend) DriveLock(direction LockDirection) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lock = direction
	return nil
}

func (b *SimulatedBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// SetLever moves the simulated lever. A lever that is neither fully up nor
// fully down has both switches open.
func (b *SimulatedBackend) SetLever(up, down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.leverUp = up
	b.leverDown = down
}

func (b *SimulatedBackend) SetRemote(pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remote = pressed
}

func (b *SimulatedBackend) Dispensing() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dispenser
}

func (b *SimulatedBackend) LockMotor() LockDirection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lock
}

func (b *SimulatedBackend) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}
