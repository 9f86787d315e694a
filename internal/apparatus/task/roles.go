package task

import (
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/synclink"
)

// roleBehavior holds everything that differs between training, master and
// slave. It is chosen once in New.
type roleBehavior interface {
	handleAsync(e *Engine, now time.Duration)
	syncBoxes(e *Engine, now time.Duration)
	beforeReward(e *Engine)
	interrupt()
	nextMode(current domain.TaskMode) domain.TaskMode
	goalFor(e *Engine, mode domain.TaskMode) int
}

type trainingRole struct{}

func (r *trainingRole) handleAsync(e *Engine, _ time.Duration) {
	e.handleGesture(e.gestures.Gesture(), nil)
}

func (r *trainingRole) syncBoxes(e *Engine, _ time.Duration) {
	e.synchPullCount++
	e.emit(domain.EventSynchPull)

	if e.synchPullCount >= e.goal {
		e.synchPullCount = 0
		if e.mode == domain.ModeTwo {
			e.goal = r.goalFor(e, e.mode)
			e.emit(domain.EventGoalRedrawn)
		}
		e.transition(domain.StateReward)
		return
	}

	if e.settings.EachPullTimeout {
		e.transition(domain.StateLockLever)
	} else {
		e.transition(domain.StateStart)
	}
}

func (r *trainingRole) beforeReward(*Engine) {}

func (r *trainingRole) interrupt() {}

func (r *trainingRole) nextMode(current domain.TaskMode) domain.TaskMode {
	if current == domain.ModeOne {
		return domain.ModeTwo
	}
	return domain.ModeOne
}

func (r *trainingRole) goalFor(e *Engine, mode domain.TaskMode) int {
	if mode == domain.ModeTwo {
		return e.drawGoal(e.settings.Goals.TrainingTwoMin, e.settings.Goals.TrainingTwoMax)
	}
	return e.settings.Goals.TrainingOne
}

type masterRole struct {
	pullArmed bool
	pullStart time.Duration
}

func (r *masterRole) handleAsync(e *Engine, now time.Duration) {
	e.handleGesture(e.gestures.Gesture(), func() {
		e.send(synclink.Message{RemoteLock: true})
	})

	if msg, ok := e.poll(now); ok && msg.PullDetected {
		e.emit(domain.EventPeerPull)
	}
}

func (r *masterRole) syncBoxes(e *Engine, now time.Duration) {
	if !r.pullArmed {
		r.pullArmed = true
		r.pullStart = now
	}

	if e.peer.PeerPulledWithin(now, e.settings.SynchWindow) {
		r.pullArmed = false
		e.peer.InvalidatePeerPull()
		e.synchPullCount++
		e.totalSynchPullCount++
		e.emit(domain.EventSynchPull)

		if e.synchPullCount >= e.goal {
			if e.totalSynchPullCount >= e.settings.SynchPullMax {
				e.longTimeout = true
				e.totalSynchPullCount = 0
				e.emit(domain.EventLongTimeoutStarted)
			}
			e.synchPullCount = 0
			e.transition(domain.StateReward)
			return
		}

		if e.settings.EachPullTimeout {
			e.send(synclink.Message{LockLever: true})
			e.transition(domain.StateLockLever)
		} else {
			e.transition(domain.StateStart)
		}
		return
	}

	if now-r.pullStart > e.settings.SynchWindow {
		r.pullArmed = false
		e.log.Infow("trial abandoned", "reason", "no peer pull within window", "window", e.settings.SynchWindow)
		e.emit(domain.EventTrialAbandoned)
		e.transition(domain.StateStart)
	}
}

func (r *masterRole) beforeReward(e *Engine) {
	e.send(synclink.Message{TriggerReward: true, LongTimeoutEnabled: e.longTimeout})
}

func (r *masterRole) interrupt() {
	r.pullArmed = false
}

func (r *masterRole) nextMode(current domain.TaskMode) domain.TaskMode {
	switch current {
	case domain.ModeOne:
		return domain.ModeTwo
	case domain.ModeTwo:
		return domain.ModeThree
	default:
		return domain.ModeOne
	}
}

func (r *masterRole) goalFor(e *Engine, mode domain.TaskMode) int {
	return pairedGoal(e.settings.Goals, mode)
}

// slaveRole follows the master. Instructions are latched on receipt so a later
// message cannot erase one that has not been acted on yet.
type slaveRole struct {
	triggerReward bool
	lockLever     bool
}

func (r *slaveRole) handleAsync(e *Engine, now time.Duration) {
	msg, ok := e.poll(now)
	if ok {
		if msg.TriggerReward {
			r.triggerReward = true
		}
		if msg.LongTimeoutEnabled && !e.longTimeout {
			e.longTimeout = true
			e.emit(domain.EventLongTimeoutStarted)
		}
		if msg.LockLever {
			r.lockLever = true
		}
	}

	switch {
	case ok && msg.RemoteLock:
		e.toggleLock()
	case r.triggerReward:
		r.triggerReward = false
		e.force(domain.StateReward)
	case r.lockLever:
		r.lockLever = false
		e.force(domain.StateLockLever)
	}
}

func (r *slaveRole) syncBoxes(e *Engine, _ time.Duration) {
	e.send(synclink.Message{PullDetected: true})
	e.transition(domain.StateStart)
}

func (r *slaveRole) beforeReward(*Engine) {}

func (r *slaveRole) interrupt() {}

func (r *slaveRole) nextMode(current domain.TaskMode) domain.TaskMode {
	return current
}

func (r *slaveRole) goalFor(e *Engine, mode domain.TaskMode) int {
	return pairedGoal(e.settings.Goals, mode)
}

func pairedGoal(goals Goals, mode domain.TaskMode) int {
	switch mode {
	case domain.ModeTwo:
		return goals.PairedTwo
	case domain.ModeThree:
		return goals.PairedThree
	default:
		return goals.PairedOne
	}
}
