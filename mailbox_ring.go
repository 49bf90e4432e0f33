package gonode

import (
	"github.com/Workiva/go-datastructures/queue"
)

// ringMailbox bounds the inbox. A full mailbox rejects the push instead of
// blocking the sender, so backpressure is the sender's problem to handle.
type ringMailbox struct {
	ring *queue.RingBuffer
}

// NewRingMailbox returns a bounded mailbox holding at most capacity
// messages. A zero capacity falls back to the default.
func NewRingMailbox(capacity uint64) Mailbox {
	if capacity == 0 {
		capacity = defaultMailboxCap
	}
	return &ringMailbox{
		ring: queue.NewRingBuffer(capacity),
	}
}

func (m *ringMailbox) Push(msg any) error {
	ok, err := m.ring.Offer(msg)
	if err != nil {
		return mailboxErr(err)
	}
	if !ok {
		return ErrMailboxFull
	}
	return nil
}

func (m *ringMailbox) Pop() (any, error) {
	msg, err := m.ring.Get()
	if err != nil {
		return nil, mailboxErr(err)
	}
	return msg, nil
}

func (m *ringMailbox) Len() int {
	return int(m.ring.Len())
}

func (m *ringMailbox) Dispose() {
	if m.ring.IsDisposed() {
		return
	}
	m.ring.Dispose()
}
