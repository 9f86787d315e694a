package task_test

import (
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Paired engines", func() {
	var p *pairedBoxes

	Context("synchronized pulls", func() {
		BeforeEach(func() {
			p = newPairedBoxes(nil)
		})

		It("should count a peer pull within the window once and reward both boxes", func() {
			p.master.apparatus.pulled(true)
			p.slave.apparatus.pulled(true)

			p.clock.ticks(4)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))
			Expect(p.slave.state()).To(Equal(domain.StateSyncBoxes))

			p.clock.ticks(1)
			Expect(p.slave.state()).To(Equal(domain.StateStart))
			Expect(p.master.state()).To(Equal(domain.StateReward))
			Expect(p.master.events.count(domain.EventPeerPull)).To(Equal(1))
			Expect(p.master.events.count(domain.EventSynchPull)).To(Equal(1))
			Expect(p.master.engine.Snapshot().TotalSynchPullCount).To(Equal(1))

			p.clock.ticks(1)
			Expect(p.master.apparatus.dispensed).To(Equal([]int{1}))
			Expect(p.master.state()).To(Equal(domain.StateLockLever))

			p.clock.ticks(1)
			Expect(p.slave.apparatus.dispensed).To(Equal([]int{1}))
			Expect(p.slave.tones.played).To(ContainElement(domain.ToneReward))
			Expect(p.slave.state()).To(Equal(domain.StateLockLever))
		})

		It("should not count the same peer pull twice", func() {
			p = newPairedBoxes(func(s *task.Settings) { s.Goals.PairedOne = 3 })
			p.master.apparatus.pulled(true)
			p.slave.apparatus.pulled(true)

			p.clock.ticks(5)
			p.slave.apparatus.pulled(false)
			Expect(p.master.state()).To(Equal(domain.StateStart))
			Expect(p.master.engine.Snapshot().SynchPullCount).To(Equal(1))

			p.clock.ticks(5)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))
			Expect(p.master.engine.Snapshot().SynchPullCount).To(Equal(1))

			p.clock.advance(5 * time.Second)
			p.clock.ticks(1)
			Expect(p.master.state()).To(Equal(domain.StateStart))
			Expect(p.master.engine.Snapshot().SynchPullCount).To(Equal(1))
			Expect(p.master.events.count(domain.EventSynchPull)).To(Equal(1))
			Expect(p.master.events.count(domain.EventTrialAbandoned)).To(Equal(1))
		})

		It("should abandon the trial when no peer pull arrives within the window", func() {
			p.master.apparatus.pulled(true)

			p.clock.ticks(5)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))

			p.clock.advance(5 * time.Second)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))

			p.clock.ticks(1)
			Expect(p.master.state()).To(Equal(domain.StateStart))
			snapshot := p.master.engine.Snapshot()
			Expect(snapshot.SynchPullCount).To(Equal(0))
			Expect(snapshot.TotalSynchPullCount).To(Equal(0))
			Expect(p.master.events.count(domain.EventTrialAbandoned)).To(Equal(1))
			Expect(p.master.apparatus.dispensed).To(BeEmpty())
		})

		It("should count a peer pull that arrived before the master pull", func() {
			p.slave.apparatus.pulled(true)
			p.clock.ticks(5)
			p.slave.apparatus.pulled(false)
			Expect(p.master.events.count(domain.EventPeerPull)).To(Equal(1))

			p.clock.advance(4 * time.Second)
			p.master.apparatus.pulled(true)
			p.clock.ticks(3)
			Expect(p.master.state()).To(Equal(domain.StateReward))
		})
	})

	Context("long timeout", func() {
		BeforeEach(func() {
			p = newPairedBoxes(func(s *task.Settings) {
				s.Goals.PairedOne = 1
				s.SynchPullMax = 2
				s.InterTrialInterval = time.Second
				s.LongTimeout = 10 * time.Second
			})
			p.master.apparatus.pulled(true)
			p.slave.apparatus.pulled(true)
		})

		It("should set the flag once, reset the lifetime counter and use the long duration", func() {
			started := func() bool { return p.master.events.count(domain.EventLongTimeoutStarted) == 1 }
			Expect(p.clock.until(started, 20000)).To(BeTrue())

			snapshot := p.master.engine.Snapshot()
			Expect(snapshot.LongTimeout).To(BeTrue())
			Expect(snapshot.TotalSynchPullCount).To(Equal(0))
			Expect(p.master.events.count(domain.EventSynchPull)).To(Equal(2))

			Expect(p.clock.until(func() bool { return p.master.state() == domain.StateWait }, 10)).To(BeTrue())
			entered := p.clock.now

			Expect(p.clock.until(func() bool { return p.master.state() == domain.StateStart }, 20000)).To(BeTrue())
			Expect(p.clock.now - entered).To(BeNumerically(">", 10*time.Second))

			Expect(p.master.engine.Snapshot().LongTimeout).To(BeFalse())
			Expect(p.master.tones.played).To(ContainElement(domain.ToneUnlock))
			Expect(p.master.events.count(domain.EventLongTimeoutStarted)).To(Equal(1))
			Expect(p.master.events.count(domain.EventLongTimeoutEnded)).To(Equal(1))
			Expect(p.slave.events.count(domain.EventLongTimeoutStarted)).To(Equal(1))
		})
	})

	Context("remote lock", func() {
		BeforeEach(func() {
			p = newPairedBoxes(nil)
		})

		It("should lock and unlock both boxes from the master remote", func() {
			p.clock.ticks(3)
			Expect(p.master.state()).To(Equal(domain.StateLeverFullUp))

			p.master.gestures.push(gesture.Short)
			p.clock.ticks(1)
			Expect(p.master.engine.Snapshot().LockStatus).To(Equal(domain.Locked))
			Expect(p.master.state()).To(Equal(domain.StateWait))

			p.clock.ticks(1)
			Expect(p.slave.engine.Snapshot().LockStatus).To(Equal(domain.Locked))
			Expect(p.slave.state()).To(Equal(domain.StateWait))

			p.clock.advance(time.Minute)
			Expect(p.master.state()).To(Equal(domain.StateWait))
			Expect(p.slave.state()).To(Equal(domain.StateWait))

			p.master.gestures.push(gesture.Short)
			p.clock.ticks(2)
			Expect(p.master.engine.Snapshot().LockStatus).To(Equal(domain.Unlocked))
			Expect(p.slave.engine.Snapshot().LockStatus).To(Equal(domain.Unlocked))
			Expect(p.master.state()).To(Equal(domain.StateLeverFullUp))
			Expect(p.slave.state()).To(Equal(domain.StateLeverFullUp))
		})

		It("should discard an open pull window on a forced transition", func() {
			p.master.apparatus.pulled(true)
			p.clock.ticks(5)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))

			p.clock.advance(3 * time.Second)
			p.master.gestures.push(gesture.Short)
			p.clock.ticks(1)
			p.master.gestures.push(gesture.Short)
			p.clock.ticks(4)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))

			p.clock.advance(2500 * time.Millisecond)
			Expect(p.master.state()).To(Equal(domain.StateSyncBoxes))
			Expect(p.master.events.count(domain.EventTrialAbandoned)).To(Equal(0))
		})

		It("should cycle through three modes on the master", func() {
			for i := 0; i < 3; i++ {
				p.master.gestures.push(gesture.Long)
				p.clock.ticks(1)
			}
			Expect(p.master.tones.played).To(Equal([]domain.Tone{domain.ToneModeTwo, domain.ToneModeThree, domain.ToneModeOne}))

			goals := []int{}
			for _, event := range p.master.events.events {
				if event.Kind == domain.EventModeChanged {
					goals = append(goals, event.Goal)
				}
			}
			Expect(goals).To(Equal([]int{3, 6, 1}))
		})
	})

	Context("slave instructions", func() {
		var (
			master *synclink.Endpoint
			slave  *box
			clk    *clock
			link   *synclink.MemoryLink
		)

		BeforeEach(func() {
			masterLink, slaveLink := synclink.NewMemoryPair(16)
			master = synclink.NewEndpoint(masterLink, synclink.DefaultMaxAttempts, logger.NewNop())
			slave = newBox(task.DefaultSettings(domain.RoleSlave), synclink.NewEndpoint(slaveLink, synclink.DefaultMaxAttempts, logger.NewNop()))
			clk = &clock{boxes: []*box{slave}}
			link = slaveLink
		})

		It("should keep latched instructions across later messages", func() {
			Expect(master.Send(synclink.Message{RemoteLock: true, TriggerReward: true})).To(Succeed())
			Expect(master.Send(synclink.Message{LockLever: true})).To(Succeed())

			clk.ticks(1)
			Expect(slave.engine.Snapshot().LockStatus).To(Equal(domain.Locked))
			Expect(slave.state()).To(Equal(domain.StateWait))
			Expect(slave.apparatus.dispensed).To(BeEmpty())

			clk.ticks(1)
			Expect(slave.apparatus.dispensed).To(Equal([]int{1}))
			Expect(slave.state()).To(Equal(domain.StateLockLever))

			clk.ticks(1)
			Expect(slave.state()).To(Equal(domain.StateWait))
			Expect(slave.events.states()).To(Equal([]domain.TrialState{
				domain.StateLockLever,
				domain.StateWait,
				domain.StateReward,
				domain.StateLockLever,
				domain.StateLockLever,
				domain.StateWait,
			}))
		})

		It("should report a failed pull notification and still return to start", func() {
			slave.apparatus.pulled(true)
			clk.ticks(4)
			Expect(slave.state()).To(Equal(domain.StateSyncBoxes))

			link.FailNext(synclink.DefaultMaxAttempts)
			clk.ticks(1)
			Expect(slave.state()).To(Equal(domain.StateStart))
			Expect(slave.tones.played).To(Equal([]domain.Tone{domain.ToneTransmissionFail}))
			Expect(slave.events.count(domain.EventTransmissionFailed)).To(Equal(1))
		})

		It("should discard corrupt frames without changing state", func() {
			link.Inject([]byte{0x01})
			clk.ticks(1)
			Expect(slave.events.count(domain.EventCorruptMessage)).To(Equal(1))
			Expect(slave.state()).To(Equal(domain.StateUnlockLever))
		})
	})
})
