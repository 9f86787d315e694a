package task_test

import (
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/task"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Training engine", func() {
	var (
		settings task.Settings
		b        *box
		clk      *clock
	)

	build := func() {
		b = newBox(settings, nil)
		clk = &clock{boxes: []*box{b}}
	}

	BeforeEach(func() {
		settings = task.DefaultSettings(domain.RoleTraining)
		settings.InterTrialInterval = time.Second
	})

	It("should run one full rewarded trial when the goal is one", func() {
		build()

		clk.ticks(2)
		Expect(b.state()).To(Equal(domain.StateLeverFullUp))
		Expect(b.apparatus.lockCommands).To(Equal([]bool{true}))

		clk.ticks(1)
		Expect(b.state()).To(Equal(domain.StateLeverFullUp))

		b.apparatus.up = true
		clk.ticks(1)
		Expect(b.state()).To(Equal(domain.StateLeverFullDown))

		b.apparatus.down = true
		clk.ticks(4)
		Expect(b.state()).To(Equal(domain.StateWait))
		Expect(b.apparatus.dispensed).To(Equal([]int{1}))
		Expect(b.apparatus.lockCommands).To(Equal([]bool{true, false}))
		Expect(b.tones.played).To(Equal([]domain.Tone{domain.ToneReward}))
		Expect(b.events.states()).To(Equal([]domain.TrialState{
			domain.StateUnlockLever,
			domain.StateLeverFullUp,
			domain.StateLeverFullDown,
			domain.StateSyncBoxes,
			domain.StateReward,
			domain.StateLockLever,
			domain.StateWait,
		}))
		Expect(b.events.count(domain.EventReward)).To(Equal(1))
	})

	It("should hold the wait state for the inter trial interval", func() {
		build()
		b.apparatus.pulled(true)
		Expect(clk.until(func() bool { return b.state() == domain.StateWait }, 20)).To(BeTrue())

		clk.ticks(1)
		clk.advance(settings.InterTrialInterval)
		Expect(b.state()).To(Equal(domain.StateWait))

		clk.ticks(1)
		Expect(b.state()).To(Equal(domain.StateStart))
	})

	It("should return to start without reward while the goal is not met", func() {
		settings.Goals.TrainingOne = 2
		build()
		b.apparatus.pulled(true)

		clk.ticks(5)
		Expect(b.state()).To(Equal(domain.StateStart))
		Expect(b.engine.Snapshot().SynchPullCount).To(Equal(1))
		Expect(b.apparatus.dispensed).To(BeEmpty())

		clk.ticks(5)
		Expect(b.state()).To(Equal(domain.StateReward))
		Expect(b.engine.Snapshot().SynchPullCount).To(Equal(0))
	})

	It("should lock the lever after each pull when per pull lockout is enabled", func() {
		settings.Goals.TrainingOne = 2
		settings.EachPullTimeout = true
		build()
		b.apparatus.pulled(true)

		clk.ticks(5)
		Expect(b.state()).To(Equal(domain.StateLockLever))
		Expect(b.apparatus.dispensed).To(BeEmpty())
	})

	Context("remote gestures", func() {
		It("should cycle between mode one and mode two on a long gesture", func() {
			build()

			b.gestures.push(gesture.Long)
			clk.ticks(1)
			snapshot := b.engine.Snapshot()
			Expect(snapshot.Mode).To(Equal(domain.ModeTwo))
			Expect(snapshot.Goal).To(BeNumerically(">=", settings.Goals.TrainingTwoMin))
			Expect(snapshot.Goal).To(BeNumerically("<=", settings.Goals.TrainingTwoMax))

			b.gestures.push(gesture.Long)
			clk.ticks(1)
			snapshot = b.engine.Snapshot()
			Expect(snapshot.Mode).To(Equal(domain.ModeOne))
			Expect(snapshot.Goal).To(Equal(settings.Goals.TrainingOne))

			Expect(b.tones.played).To(Equal([]domain.Tone{domain.ToneModeTwo, domain.ToneModeOne}))
			Expect(b.events.count(domain.EventModeChanged)).To(Equal(2))
		})

		It("should draw random goals from the inclusive range", func() {
			build()
			seen := map[int]bool{}
			for i := 0; i < 400; i++ {
				b.gestures.push(gesture.Long)
				clk.ticks(1)
				if b.engine.Snapshot().Mode == domain.ModeTwo {
					seen[b.engine.Snapshot().Goal] = true
				}
			}

			for goal := range seen {
				Expect(goal).To(BeNumerically(">=", 2))
				Expect(goal).To(BeNumerically("<=", 6))
			}
			Expect(seen).To(HaveKey(2))
			Expect(seen).To(HaveKey(6))
		})

		It("should redraw the random goal each time it is met", func() {
			settings.Goals.TrainingTwoMin = 2
			settings.Goals.TrainingTwoMax = 2
			build()
			b.gestures.push(gesture.Long)
			b.apparatus.pulled(true)

			clk.ticks(5)
			Expect(b.state()).To(Equal(domain.StateStart))

			clk.ticks(5)
			Expect(b.state()).To(Equal(domain.StateReward))
			Expect(b.events.count(domain.EventGoalRedrawn)).To(Equal(1))
			Expect(b.engine.Snapshot().Goal).To(Equal(2))
		})

		It("should ignore a long gesture during reward", func() {
			build()
			b.apparatus.pulled(true)
			clk.ticks(5)
			Expect(b.state()).To(Equal(domain.StateReward))

			b.gestures.push(gesture.Long)
			clk.ticks(1)
			Expect(b.engine.Snapshot().Mode).To(Equal(domain.ModeOne))
			Expect(b.tones.played).To(Equal([]domain.Tone{domain.ToneReward}))
		})

		It("should pre-empt the trial on a short gesture and hold the lever locked", func() {
			build()
			clk.ticks(3)
			Expect(b.state()).To(Equal(domain.StateLeverFullUp))

			b.gestures.push(gesture.Short)
			clk.ticks(1)
			Expect(b.engine.Snapshot().LockStatus).To(Equal(domain.Locked))
			Expect(b.state()).To(Equal(domain.StateWait))
			Expect(b.apparatus.lockCommands).To(Equal([]bool{true, false}))

			clk.advance(time.Hour)
			Expect(b.state()).To(Equal(domain.StateWait))

			b.gestures.push(gesture.Short)
			clk.ticks(1)
			Expect(b.engine.Snapshot().LockStatus).To(Equal(domain.Unlocked))
			Expect(b.state()).To(Equal(domain.StateLeverFullUp))
			Expect(b.apparatus.lockCommands).To(Equal([]bool{true, false, true}))
			Expect(b.events.count(domain.EventLockToggled)).To(Equal(2))
		})

		It("should ignore composite gestures", func() {
			build()
			b.gestures.push(gesture.ShortShort)
			clk.ticks(1)
			Expect(b.engine.Snapshot().LockStatus).To(Equal(domain.Unlocked))
			Expect(b.engine.Snapshot().Mode).To(Equal(domain.ModeOne))
		})
	})
})
