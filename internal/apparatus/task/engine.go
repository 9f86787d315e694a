package task

import (
	"fmt"
	"math/rand/v2"
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/logger"
)

// Ports are the collaborators an Engine drives. Peer is required for the
// paired roles and Gestures for the roles that own a remote.
type Ports struct {
	Apparatus Apparatus
	Tones     TonePlayer
	Peer      Peer
	Gestures  GestureSource
	Observer  Observer
	Rand      *rand.Rand
	Log       logger.Logger
}

// Engine is the trial state machine of one box. It is not safe for
// concurrent use; the control loop owns it and calls Tick once per tick.
type Engine struct {
	settings Settings
	role     roleBehavior

	apparatus Apparatus
	tones     TonePlayer
	peer      Peer
	gestures  GestureSource
	observer  Observer
	rand      *rand.Rand
	log       logger.Logger

	state               domain.TrialState
	mode                domain.TaskMode
	lock                domain.LockStatus
	goal                int
	synchPullCount      int
	totalSynchPullCount int
	longTimeout         bool

	waitArmed    bool
	waitStart    time.Duration
	waitDuration time.Duration

	now time.Duration
}

func New(settings Settings, ports Ports) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if ports.Apparatus == nil {
		return nil, fmt.Errorf("%w: apparatus", ErrMissingPort)
	}
	if ports.Tones == nil {
		return nil, fmt.Errorf("%w: tone player", ErrMissingPort)
	}
	if settings.Role.Paired() && ports.Peer == nil {
		return nil, fmt.Errorf("%w: role %s", ErrMissingPeer, settings.Role)
	}
	if settings.Role != domain.RoleSlave && ports.Gestures == nil {
		return nil, fmt.Errorf("%w: gesture source", ErrMissingPort)
	}
	if ports.Observer == nil {
		ports.Observer = nopObserver{}
	}
	if ports.Rand == nil {
		ports.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if ports.Log == nil {
		ports.Log = logger.NewNop()
	}

	e := &Engine{
		settings:  settings,
		apparatus: ports.Apparatus,
		tones:     ports.Tones,
		peer:      ports.Peer,
		gestures:  ports.Gestures,
		observer:  ports.Observer,
		rand:      ports.Rand,
		log:       ports.Log,
		state:     domain.StateStart,
		mode:      domain.ModeOne,
		lock:      domain.Unlocked,
	}

	switch settings.Role {
	case domain.RoleTraining:
		e.role = &trainingRole{}
	case domain.RoleMaster:
		e.role = &masterRole{}
	case domain.RoleSlave:
		e.role = &slaveRole{}
	}
	e.goal = e.role.goalFor(e, e.mode)

	return e, nil
}

// Tick runs the role's asynchronous handling and then exactly one state
// machine step. now must come from a single clock sample for the tick.
func (e *Engine) Tick(now time.Duration) {
	e.now = now
	e.role.handleAsync(e, now)
	e.step(now)
}

func (e *Engine) step(now time.Duration) {
	switch e.state {
	case domain.StateStart:
		e.transition(domain.StateUnlockLever)

	case domain.StateUnlockLever:
		e.apparatus.SetLeverLock(true)
		// a remote unlock can arrive mid wait
		e.waitArmed = false
		e.transition(domain.StateLeverFullUp)

	case domain.StateLeverFullUp:
		if e.apparatus.LeverUp() {
			e.transition(domain.StateLeverFullDown)
		}

	case domain.StateLeverFullDown:
		if e.apparatus.LeverDown() {
			e.transition(domain.StateSyncBoxes)
		}

	case domain.StateSyncBoxes:
		e.role.syncBoxes(e, now)

	case domain.StateReward:
		e.role.beforeReward(e)
		e.apparatus.Dispense(e.settings.RewardAmount)
		e.tones.Play(domain.ToneReward)
		e.emit(domain.EventReward)
		e.transition(domain.StateLockLever)

	case domain.StateLockLever:
		e.apparatus.SetLeverLock(false)
		e.waitArmed = false
		e.transition(domain.StateWait)

	case domain.StateWait:
		e.wait(now)
	}
}

func (e *Engine) wait(now time.Duration) {
	if !e.waitArmed {
		e.waitArmed = true
		e.waitStart = now
		switch {
		case e.lock == domain.Locked:
			e.waitDuration = 0
		case e.longTimeout:
			e.waitDuration = e.settings.LongTimeout
		default:
			e.waitDuration = e.settings.InterTrialInterval
		}
	}

	if e.lock != domain.Unlocked || now-e.waitStart <= e.waitDuration {
		return
	}

	if e.longTimeout {
		e.tones.Play(domain.ToneUnlock)
		e.longTimeout = false
		e.emit(domain.EventLongTimeoutEnded)
	}
	e.waitArmed = false
	e.transition(domain.StateStart)
}

func (e *Engine) transition(next domain.TrialState) {
	prev := e.state
	e.state = next
	e.log.Debugw("state changed", "role", e.settings.Role.String(), "from", prev.String(), "to", next.String())
	e.emit(domain.EventStateChanged)
}

// force pre-empts the current trial phase.
func (e *Engine) force(next domain.TrialState) {
	e.role.interrupt()
	e.transition(next)
}

// toggleLock flips the lock status and forces the matching transition.
func (e *Engine) toggleLock() {
	was := e.lock
	e.lock = was.Toggle()
	e.log.Infow("lock toggled", "role", e.settings.Role.String(), "lock", e.lock.String())
	e.emit(domain.EventLockToggled)

	if was == domain.Unlocked {
		e.force(domain.StateLockLever)
	} else {
		e.force(domain.StateUnlockLever)
	}
}

// handleGesture applies a remote gesture. broadcast is called before a lock
// toggle takes effect locally.
func (e *Engine) handleGesture(code gesture.Code, broadcast func()) {
	switch code {
	case gesture.None:
		return
	case gesture.Short:
		if broadcast != nil {
			broadcast()
		}
		e.toggleLock()
	case gesture.Long:
		if e.state == domain.StateReward {
			return
		}
		e.mode = e.role.nextMode(e.mode)
		e.goal = e.role.goalFor(e, e.mode)
		e.log.Infow("mode changed", "role", e.settings.Role.String(), "mode", e.mode.String(), "goal", e.goal)
		e.tones.Play(domain.ModeTone(e.mode))
		e.emit(domain.EventModeChanged)
	default:
		e.log.Debugw("ignoring gesture", "gesture", code.String())
	}
}

// send transmits msg to the peer. A failure is surfaced and otherwise ignored.
func (e *Engine) send(msg synclink.Message) {
	if err := e.peer.Send(msg); err != nil {
		e.log.Warnw("transmission failed", "role", e.settings.Role.String(), "error", err)
		e.tones.Play(domain.ToneTransmissionFail)
		e.emit(domain.EventTransmissionFailed)
	}
}

// poll reads at most one inbound message.
func (e *Engine) poll(now time.Duration) (synclink.Message, bool) {
	msg, ok, err := e.peer.Poll(now)
	if err != nil {
		e.log.Warnw("corrupt message discarded", "role", e.settings.Role.String(), "error", err)
		e.emit(domain.EventCorruptMessage)
		return synclink.Message{}, false
	}
	return msg, ok
}

// drawGoal picks a goal uniformly from the inclusive range [lo, hi].
func (e *Engine) drawGoal(lo, hi int) int {
	return lo + e.rand.IntN(hi-lo+1)
}

func (e *Engine) emit(kind domain.EventKind) {
	e.observer.Observe(domain.Event{
		Kind:                kind,
		Role:                e.settings.Role,
		State:               e.state,
		Mode:                e.mode,
		LockStatus:          e.lock,
		Goal:                e.goal,
		SynchPullCount:      e.synchPullCount,
		TotalSynchPullCount: e.totalSynchPullCount,
		LongTimeout:         e.longTimeout,
		At:                  e.now,
	})
}

func (e *Engine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Role:                e.settings.Role,
		State:               e.state,
		Mode:                e.mode,
		LockStatus:          e.lock,
		Goal:                e.goal,
		SynchPullCount:      e.synchPullCount,
		TotalSynchPullCount: e.totalSynchPullCount,
		LongTimeout:         e.longTimeout,
		At:                  e.now,
	}
}

func (e *Engine) State() domain.TrialState {
	return e.state
}
