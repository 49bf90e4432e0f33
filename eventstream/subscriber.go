package eventstream

import (
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Message carries a published payload together with the topic it was
// published on.
type Message struct {
	Topic   string
	Payload any
}

// Subscriber is a registered consumer of stream messages. Messages pile up
// in a per-subscriber buffer until drained with Iterator.
type Subscriber interface {
	// ID returns the subscriber id.
	ID() string
	// Active reports whether the subscriber has not been shut down.
	Active() bool
	// Topics returns the topics the subscriber is subscribed to.
	Topics() []string
	// Iterator drains the messages buffered so far into a closed channel.
	Iterator() chan *Message
	// Shutdown deactivates the subscriber and discards its buffer.
	Shutdown()

	signal(msg *Message)
	subscribe(topic string)
	unsubscribe(topic string)
}

type subscriber struct {
	mu     sync.Mutex
	id     string
	topics map[string]struct{}
	buffer *queue.Queue
	active *atomic.Bool
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	return &subscriber{
		id:     uuid.NewString(),
		topics: make(map[string]struct{}),
		buffer: queue.New(16),
		active: atomic.NewBool(true),
	}
}

func (s *subscriber) ID() string {
	return s.id
}

func (s *subscriber) Active() bool {
	return s.active.Load()
}

func (s *subscriber) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	topics := make([]string, 0, len(s.topics))
	for topic := range s.topics {
		topics = append(topics, topic)
	}
	return topics
}

func (s *subscriber) Iterator() chan *Message {
	n := s.buffer.Len()
	out := make(chan *Message, n)
	defer close(out)
	for i := int64(0); i < n; i++ {
		items, err := s.buffer.Get(1)
		if err != nil {
			break
		}
		if msg, ok := items[0].(*Message); ok {
			out <- msg
		}
	}
	return out
}

func (s *subscriber) Shutdown() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.mu.Lock()
	s.topics = make(map[string]struct{})
	s.mu.Unlock()
	s.buffer.Dispose()
}

func (s *subscriber) signal(msg *Message) {
	if !s.active.Load() {
		return
	}
	// the buffer may have been disposed by a concurrent shutdown; the
	// message is simply dropped in that case.
	_ = s.buffer.Put(msg)
}

func (s *subscriber) subscribe(topic string) {
	s.mu.Lock()
	s.topics[topic] = struct{}{}
	s.mu.Unlock()
}

func (s *subscriber) unsubscribe(topic string) {
	s.mu.Lock()
	delete(s.topics, topic)
	s.mu.Unlock()
}
