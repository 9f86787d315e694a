package mqtt_test

import (
	"errors"
	"sync"
	"time"

	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/infra/mqtt"
	"leverbox/internal/logger"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type fakeMessage struct {
	topic   string
	payload []byte
	acked   bool
}

func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              { m.acked = true }

// fakeBroker delivers publishes synchronously to every subscriber.
type fakeBroker struct {
	mu        sync.Mutex
	handlers  map[string][]mqtt.MessageHandler
	failures  int
	published map[string]int
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		handlers:  make(map[string][]mqtt.MessageHandler),
		published: make(map[string]int),
	}
}

func (b *fakeBroker) client() *fakeClient {
	return &fakeClient{broker: b}
}

type fakeClient struct {
	broker *fakeBroker
}

func (c *fakeClient) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) error {
	c.broker.mu.Lock()
	defer c.broker.mu.Unlock()
	c.broker.handlers[topic] = append(c.broker.handlers[topic], callback)
	return nil
}

func (c *fakeClient) Publish(topic string, msg any) error {
	c.broker.mu.Lock()
	c.broker.published[topic]++
	if c.broker.failures > 0 {
		c.broker.failures--
		c.broker.mu.Unlock()
		return mqtt.ErrPublishTimeout
	}
	handlers := append([]mqtt.MessageHandler(nil), c.broker.handlers[topic]...)
	c.broker.mu.Unlock()

	payload, ok := msg.([]byte)
	if !ok {
		return errors.New("link must publish raw frames")
	}
	for _, handler := range handlers {
		handler(c, &fakeMessage{topic: topic, payload: payload})
	}
	return nil
}

func (c *fakeClient) Disconnect() {}

var _ = ginkgo.Describe("Link", func() {
	var (
		broker *fakeBroker
		master *mqtt.Link
		slave  *mqtt.Link
	)

	ginkgo.BeforeEach(func() {
		broker = newFakeBroker()

		var err error
		master, err = mqtt.NewLink(broker.client(), mqtt.LinkOpts{Channel: "76", LocalRole: "master", PeerRole: "slave", InboxSize: 2})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		slave, err = mqtt.NewLink(broker.client(), mqtt.LinkOpts{Channel: "76", LocalRole: "slave", PeerRole: "master", InboxSize: 2})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.It("should publish on its own role topic and read the peer's", func() {
		gomega.Expect(master.Transmit([]byte{0x01})).To(gomega.BeTrue())

		gomega.Expect(broker.published).To(gomega.HaveKeyWithValue("leverbox/76/master", 1))
		frame, ok := slave.Receive()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(frame).To(gomega.Equal([]byte{0x01}))

		_, ok = master.Receive()
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should report a failed publish as unacknowledged", func() {
		broker.failures = 1

		gomega.Expect(master.Transmit([]byte{0x01})).To(gomega.BeFalse())
		_, ok := slave.Receive()
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should drop frames once the inbox is full", func() {
		for i := 0; i < 3; i++ {
			master.Transmit([]byte{byte(i)})
		}

		gomega.Expect(slave.Dropped()).To(gomega.Equal(1))
		first, _ := slave.Receive()
		second, _ := slave.Receive()
		gomega.Expect([][]byte{first, second}).To(gomega.Equal([][]byte{{0}, {1}}))
	})

	ginkgo.When("carrying sync endpoint traffic", func() {
		ginkgo.It("should deliver messages and retry through publish failures", func() {
			masterEndpoint := synclink.NewEndpoint(master, synclink.DefaultMaxAttempts, logger.NewNop())
			slaveEndpoint := synclink.NewEndpoint(slave, synclink.DefaultMaxAttempts, logger.NewNop())

			broker.failures = 2
			gomega.Expect(slaveEndpoint.Send(synclink.Message{PullDetected: true})).To(gomega.Succeed())
			gomega.Expect(broker.published).To(gomega.HaveKeyWithValue("leverbox/76/slave", 3))

			now := 3 * time.Second
			msg, ok, err := masterEndpoint.Poll(now)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(msg.PullDetected).To(gomega.BeTrue())
			gomega.Expect(msg.Count).To(gomega.Equal(uint8(1)))
			gomega.Expect(masterEndpoint.PeerPulledWithin(now+time.Second, 5*time.Second)).To(gomega.BeTrue())
		})
	})
})
