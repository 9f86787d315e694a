package input_test

import (
	"time"

	"leverbox/internal/apparatus/input"
	"leverbox/internal/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type rawInputs struct {
	up, down, remote bool
}

func (r *rawInputs) RawLeverUp() bool   { return r.up }
func (r *rawInputs) RawLeverDown() bool { return r.down }
func (r *rawInputs) RawRemote() bool    { return r.remote }

var _ = Describe("Signal", func() {
	var (
		raw    bool
		signal *input.Signal
	)

	BeforeEach(func() {
		raw = false
		signal = input.NewSignal("lever_up", 100*time.Millisecond, func() bool { return raw }, logger.NewNop())
	})

	When("sampled for the first time", func() {
		It("should read the raw value immediately", func() {
			raw = true
			value, changed := signal.Sample(0)
			Expect(value).To(BeTrue())
			Expect(changed).To(BeTrue())
		})
	})

	When("the raw input bounces inside one window", func() {
		It("should change the stable value at most once", func() {
			changes := 0
			for i := 0; i <= 100; i++ {
				raw = i%2 == 0
				if _, changed := signal.Sample(time.Duration(i) * time.Millisecond); changed {
					changes++
				}
			}
			Expect(changes).To(Equal(1))
			Expect(signal.Value()).To(BeTrue())
		})
	})

	When("the deadline has passed", func() {
		It("should pick up the new raw value", func() {
			raw = true
			signal.Sample(0)
			raw = false

			value, changed := signal.Sample(100 * time.Millisecond)
			Expect(value).To(BeTrue())
			Expect(changed).To(BeFalse())

			value, changed = signal.Sample(101 * time.Millisecond)
			Expect(value).To(BeFalse())
			Expect(changed).To(BeTrue())
		})

		It("should not report a change when the raw value is unchanged", func() {
			signal.Sample(0)
			_, changed := signal.Sample(time.Second)
			Expect(changed).To(BeFalse())
		})
	})
})

var _ = Describe("Tracker", func() {
	var (
		raw     *rawInputs
		tracker *input.Tracker
	)

	BeforeEach(func() {
		raw = &rawInputs{}
		tracker = input.NewTracker(raw, input.Windows{
			Lever:  100 * time.Millisecond,
			Remote: 50 * time.Millisecond,
		}, logger.NewNop())
		tracker.Sample(0)
	})

	It("should debounce each signal independently", func() {
		raw.up = true
		raw.remote = true
		edges := tracker.Sample(60 * time.Millisecond)
		Expect(edges.LeverUpChanged).To(BeFalse())
		Expect(edges.RemoteChanged).To(BeTrue())
		Expect(edges.RemotePressed()).To(BeTrue())
		Expect(edges.LeverUp).To(BeFalse())

		edges = tracker.Sample(101 * time.Millisecond)
		Expect(edges.LeverUpChanged).To(BeTrue())
		Expect(edges.LeverUp).To(BeTrue())
	})

	It("should report a release edge", func() {
		raw.remote = true
		tracker.Sample(51 * time.Millisecond)
		raw.remote = false
		edges := tracker.Sample(102 * time.Millisecond)
		Expect(edges.RemoteReleased()).To(BeTrue())
	})
})
