package hardware

import "leverbox/internal/apparatus/input"

type LockDirection int

const (
	LockStop LockDirection = iota
	LockOpen
	LockClose
)

func (d LockDirection) String() string {
	switch d {
	case LockOpen:
		return "open"
	case LockClose:
		return "close"
	default:
		return "stop"
	}
}

// Backend is the physical side of a box: three raw inputs, the dispenser
// motor and the lever lock motor.
type Backend interface {
	input.RawInputs
	SetDispenser(on bool) error
	DriveLock(direction LockDirection) error
	Close() error
}
