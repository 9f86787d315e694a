package task

import (
	"errors"
	"fmt"
	"time"

	"leverbox/internal/apparatus/domain"
)

var (
	ErrInvalidSettings = errors.New("invalid task settings")
	ErrMissingPeer     = errors.New("paired role requires a peer")
	ErrMissingPort     = errors.New("missing engine port")
)

// Goals are the pull goals per task mode.
type Goals struct {
	TrainingOne    int
	TrainingTwoMin int
	TrainingTwoMax int
	PairedOne      int
	PairedTwo      int
	PairedThree    int
}

func (g Goals) paired() []int {
	return []int{g.PairedOne, g.PairedTwo, g.PairedThree}
}

type Settings struct {
	Role               domain.Role
	SynchWindow        time.Duration
	InterTrialInterval time.Duration
	LongTimeout        time.Duration
	Goals              Goals
	// SynchPullMax is the lifetime synchronized pull count that triggers
	// the long timeout.
	SynchPullMax int
	// EachPullTimeout locks the lever after every counted pull, not only
	// after a reward.
	EachPullTimeout bool
	RewardAmount    int
}

func DefaultSettings(role domain.Role) Settings {
	return Settings{
		Role:               role,
		SynchWindow:        5 * time.Second,
		InterTrialInterval: 5 * time.Second,
		LongTimeout:        120 * time.Second,
		Goals: Goals{
			TrainingOne:    1,
			TrainingTwoMin: 2,
			TrainingTwoMax: 6,
			PairedOne:      1,
			PairedTwo:      3,
			PairedThree:    6,
		},
		SynchPullMax: 12,
		RewardAmount: 1,
	}
}

// Validate reports every inconsistency in s, each wrapping ErrInvalidSettings.
func (s Settings) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...)))
	}

	if s.SynchWindow <= 0 {
		fail("synch window must be positive, got %s", s.SynchWindow)
	}
	if s.InterTrialInterval < 0 {
		fail("inter trial interval must not be negative, got %s", s.InterTrialInterval)
	}
	if s.LongTimeout < 0 {
		fail("long timeout must not be negative, got %s", s.LongTimeout)
	}
	if s.RewardAmount <= 0 {
		fail("reward amount must be positive, got %d", s.RewardAmount)
	}

	switch s.Role {
	case domain.RoleTraining:
		if s.Goals.TrainingOne <= 0 {
			fail("training mode one goal must be positive, got %d", s.Goals.TrainingOne)
		}
		if s.Goals.TrainingTwoMin <= 0 || s.Goals.TrainingTwoMin > s.Goals.TrainingTwoMax {
			fail("training mode two range [%d, %d] is empty", s.Goals.TrainingTwoMin, s.Goals.TrainingTwoMax)
		}
	case domain.RoleMaster, domain.RoleSlave:
		if s.SynchPullMax <= 0 {
			fail("synch pull max must be positive, got %d", s.SynchPullMax)
		}
		for i, goal := range s.Goals.paired() {
			if goal <= 0 {
				fail("paired mode %s goal must be positive, got %d", domain.TaskMode(i), goal)
				continue
			}
			if s.SynchPullMax > 0 && s.SynchPullMax%goal != 0 {
				fail("synch pull max %d is not divisible by paired mode %s goal %d", s.SynchPullMax, domain.TaskMode(i), goal)
			}
		}
	default:
		fail("unknown role %d", s.Role)
	}

	return errors.Join(errs...)
}
