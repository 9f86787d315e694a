package domain

type TaskMode int

const (
	ModeOne TaskMode = iota
	ModeTwo
	ModeThree
)

func (m TaskMode) String() string {
	switch m {
	case ModeOne:
		return "one"
	case ModeTwo:
		return "two"
	case ModeThree:
		return "three"
	default:
		return "unknown"
	}
}

type LockStatus int

const (
	Unlocked LockStatus = iota
	Locked
)

func (s LockStatus) String() string {
	if s == Locked {
		return "locked"
	}
	return "unlocked"
}

// Toggle returns the opposite lock status.
func (s LockStatus) Toggle() LockStatus {
	if s == Locked {
		return Unlocked
	}
	return Locked
}

// TrialState is the current phase of the task engine.
type TrialState int

const (
	StateStart TrialState = iota
	StateUnlockLever
	StateLeverFullUp
	StateLeverFullDown
	StateSyncBoxes
	StateReward
	StateLockLever
	StateWait
)

var trialStateNames = map[TrialState]string{
	StateStart:         "start",
	StateUnlockLever:   "unlock_lever",
	StateLeverFullUp:   "lever_full_up",
	StateLeverFullDown: "lever_full_down",
	StateSyncBoxes:     "sync_boxes",
	StateReward:        "reward",
	StateLockLever:     "lock_lever",
	StateWait:          "wait",
}

func (s TrialState) String() string {
	if name, ok := trialStateNames[s]; ok {
		return name
	}
	return "unknown"
}
