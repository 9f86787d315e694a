package task_test

import (
	"math/rand/v2"
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/logger"

	. "github.com/onsi/gomega"
)

type fakeApparatus struct {
	up, down     bool
	dispensed    []int
	lockCommands []bool
}

func (f *fakeApparatus) LeverUp() bool   { return f.up }
func (f *fakeApparatus) LeverDown() bool { return f.down }
func (f *fakeApparatus) Dispense(units int) {
	f.dispensed = append(f.dispensed, units)
}
func (f *fakeApparatus) SetLeverLock(unlocked bool) {
	f.lockCommands = append(f.lockCommands, unlocked)
}

func (f *fakeApparatus) pulled(v bool) {
	f.up, f.down = v, v
}

type fakeTones struct {
	played []domain.Tone
}

func (f *fakeTones) Play(tone domain.Tone) {
	f.played = append(f.played, tone)
}

type fakeGestures struct {
	queue []gesture.Code
}

func (f *fakeGestures) push(code gesture.Code) {
	f.queue = append(f.queue, code)
}

func (f *fakeGestures) Gesture() gesture.Code {
	if len(f.queue) == 0 {
		return gesture.None
	}
	code := f.queue[0]
	f.queue = f.queue[1:]
	return code
}

type eventLog struct {
	events []domain.Event
}

func (l *eventLog) Observe(event domain.Event) {
	l.events = append(l.events, event)
}

func (l *eventLog) count(kind domain.EventKind) int {
	n := 0
	for _, event := range l.events {
		if event.Kind == kind {
			n++
		}
	}
	return n
}

func (l *eventLog) states() []domain.TrialState {
	var states []domain.TrialState
	for _, event := range l.events {
		if event.Kind == domain.EventStateChanged {
			states = append(states, event.State)
		}
	}
	return states
}

type box struct {
	engine    *task.Engine
	apparatus *fakeApparatus
	tones     *fakeTones
	gestures  *fakeGestures
	events    *eventLog
}

func newBox(settings task.Settings, peer task.Peer) *box {
	b := &box{
		apparatus: &fakeApparatus{},
		tones:     &fakeTones{},
		gestures:  &fakeGestures{},
		events:    &eventLog{},
	}
	ports := task.Ports{
		Apparatus: b.apparatus,
		Tones:     b.tones,
		Gestures:  b.gestures,
		Observer:  b.events,
		Rand:      rand.New(rand.NewPCG(7, 11)),
		Log:       logger.NewNop(),
	}
	if peer != nil {
		ports.Peer = peer
	}

	engine, err := task.New(settings, ports)
	Expect(err).NotTo(HaveOccurred())
	b.engine = engine
	return b
}

func (b *box) state() domain.TrialState {
	return b.engine.State()
}

// clock drives one or more boxes from a shared time base, ticking them in
// the order given.
type clock struct {
	now   time.Duration
	boxes []*box
}

func (c *clock) advance(d time.Duration) {
	c.now += d
	for _, b := range c.boxes {
		b.engine.Tick(c.now)
	}
}

func (c *clock) ticks(n int) {
	for i := 0; i < n; i++ {
		c.advance(time.Millisecond)
	}
}

// until ticks in 1ms steps until cond holds or limit ticks have passed.
func (c *clock) until(cond func() bool, limit int) bool {
	for i := 0; i < limit; i++ {
		if cond() {
			return true
		}
		c.advance(time.Millisecond)
	}
	return cond()
}

type pairedBoxes struct {
	master     *box
	slave      *box
	masterLink *synclink.MemoryLink
	slaveLink  *synclink.MemoryLink
	clock      *clock
}

func newPairedBoxes(configure func(*task.Settings)) *pairedBoxes {
	masterSettings := task.DefaultSettings(domain.RoleMaster)
	slaveSettings := task.DefaultSettings(domain.RoleSlave)
	if configure != nil {
		configure(&masterSettings)
		configure(&slaveSettings)
	}

	masterLink, slaveLink := synclink.NewMemoryPair(16)
	p := &pairedBoxes{
		masterLink: masterLink,
		slaveLink:  slaveLink,
		master:     newBox(masterSettings, synclink.NewEndpoint(masterLink, synclink.DefaultMaxAttempts, logger.NewNop())),
		slave:      newBox(slaveSettings, synclink.NewEndpoint(slaveLink, synclink.DefaultMaxAttempts, logger.NewNop())),
	}
	p.clock = &clock{boxes: []*box{p.slave, p.master}}
	return p
}
