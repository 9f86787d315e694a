package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

const defaultReceiverBuffer = 256

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Error error
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

// LocalBroker fans messages out to in-process subscribers. Publish never
// blocks: a subscriber whose buffer is full misses the message, and the
// miss is counted on its subscription.
type LocalBroker struct {
	mu           sync.RWMutex
	subscriptors map[BrokerTopicName][]*subscriptor
	bufferSize   int
}

func NewLocalBroker() *LocalBroker {
	return NewLocalBrokerWithBuffer(defaultReceiverBuffer)
}

func NewLocalBrokerWithBuffer(size int) *LocalBroker {
	return &LocalBroker{
		subscriptors: make(map[BrokerTopicName][]*subscriptor),
		bufferSize:   size,
	}
}

type subscriptor struct {
	mu           sync.Mutex
	active       bool
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
	dropped  *droppedCounter
}

type droppedCounter struct {
	mu sync.Mutex
	n  int
}

// Dropped is the number of messages this subscription missed.
func (s Subscription) Dropped() int {
	if s.dropped == nil {
		return 0
	}
	s.dropped.mu.Lock()
	defer s.dropped.mu.Unlock()
	return s.dropped.n
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscription := Subscription{
		ID:       uuid.NewString(),
		Receiver: make(chan BrokerMessage, b.bufferSize),
		dropped:  &droppedCounter{},
	}
	b.subscriptors[topic] = append(b.subscriptors[topic], &subscriptor{subscription: subscription, active: true})
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.RLock()
	subscriptors, ok := b.subscriptors[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].close()
	return nil
}

// Publish delivers msg to every active subscriber of topic in publish order.
func (b *LocalBroker) Publish(_ context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	b.mu.RLock()
	subscriptors, ok := b.subscriptors[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptors {
		s.offer(msg)
	}
	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, subscriptors := range b.subscriptors {
		for _, s := range subscriptors {
			s.close()
		}
	}
}

func (s *subscriptor) offer(msg BrokerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}

	select {
	case s.subscription.Receiver <- msg:
	default:
		s.subscription.dropped.mu.Lock()
		s.subscription.dropped.n++
		s.subscription.dropped.mu.Unlock()
	}
}

func (s *subscriptor) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		s.active = false
		close(s.subscription.Receiver)
	}
}
