package hardware

import (
	"time"

	"leverbox/internal/apparatus/input"
	"leverbox/internal/logger"
)

type Timing struct {
	// DispenseUnit is how long the dispenser runs per reward unit.
	DispenseUnit time.Duration
	// LeverLockActuation is how long the lock motor is driven per command.
	LeverLockActuation time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		DispenseUnit:       300 * time.Millisecond,
		LeverLockActuation: 2 * time.Second,
	}
}

// Apparatus starts timed actuations and switches them off from Update once
// their deadline passes. None of its methods block.
type Apparatus struct {
	backend Backend
	tracker *input.Tracker
	timing  Timing
	log     logger.Logger

	now   time.Duration
	edges input.Edges

	dispensing     bool
	dispenseUntil  time.Duration
	dispensedUnits int

	lockDriving bool
	lockUntil   time.Duration
}

func New(backend Backend, windows input.Windows, timing Timing, log logger.Logger) *Apparatus {
	return &Apparatus{
		backend: backend,
		tracker: input.NewTracker(backend, windows, log),
		timing:  timing,
		log:     log,
	}
}

// Update samples the debounced inputs and ends expired actuations. It must
// run once per tick before the engine.
func (a *Apparatus) Update(now time.Duration) input.Edges {
	a.now = now
	a.edges = a.tracker.Sample(now)

	if a.dispensing && now > a.dispenseUntil {
		a.dispensing = false
		if err := a.backend.SetDispenser(false); err != nil {
			a.log.Errorw("stopping dispenser", "error", err)
		}
	}

	if a.lockDriving && now > a.lockUntil {
		a.lockDriving = false
		if err := a.backend.DriveLock(LockStop); err != nil {
			a.log.Errorw("stopping lever lock", "error", err)
		}
	}

	return a.edges
}

func (a *Apparatus) LeverUp() bool {
	return a.tracker.LeverUp.Value()
}

func (a *Apparatus) LeverDown() bool {
	return a.tracker.LeverDown.Value()
}

func (a *Apparatus) Remote() bool {
	return a.tracker.Remote.Value()
}

// Dispense runs the dispenser for units reward units from the current tick.
func (a *Apparatus) Dispense(units int) {
	if units <= 0 {
		return
	}
	if err := a.backend.SetDispenser(true); err != nil {
		a.log.Errorw("starting dispenser", "units", units, "error", err)
		return
	}
	a.dispensing = true
	a.dispenseUntil = a.now + time.Duration(units)*a.timing.DispenseUnit
	a.dispensedUnits += units
	a.log.Infow("dispensing", "units", units, "dispensed_units", a.dispensedUnits)
}

// SetLeverLock drives the lock toward open when unlocked is true and toward
// closed otherwise.
func (a *Apparatus) SetLeverLock(unlocked bool) {
	direction := LockClose
	if unlocked {
		direction = LockOpen
	}
	if err := a.backend.DriveLock(direction); err != nil {
		a.log.Errorw("driving lever lock", "direction", direction.String(), "error", err)
		return
	}
	a.lockDriving = true
	a.lockUntil = a.now + a.timing.LeverLockActuation
	a.log.Debugw("driving lever lock", "direction", direction.String())
}

func (a *Apparatus) DispensedUnits() int {
	return a.dispensedUnits
}

// Close stops both motors and releases the backend.
func (a *Apparatus) Close() error {
	if a.dispensing {
		_ = a.backend.SetDispenser(false)
	}
	if a.lockDriving {
		_ = a.backend.DriveLock(LockStop)
	}
	return a.backend.Close()
}
