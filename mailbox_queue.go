package gonode

import (
	"errors"

	"github.com/Workiva/go-datastructures/queue"
)

// queueMailbox is the default mailbox: an unbounded queue whose Get blocks
// the consumer while empty and whose Put never blocks a sender.
type queueMailbox struct {
	queue *queue.Queue
}

// NewQueueMailbox returns an unbounded mailbox.
func NewQueueMailbox() Mailbox {
	return &queueMailbox{
		queue: queue.New(defaultMailboxCap),
	}
}

func (m *queueMailbox) Push(msg any) error {
	if err := m.queue.Put(msg); err != nil {
		return mailboxErr(err)
	}
	return nil
}

func (m *queueMailbox) Pop() (any, error) {
	items, err := m.queue.Get(1)
	if err != nil {
		return nil, mailboxErr(err)
	}
	return items[0], nil
}

func (m *queueMailbox) Len() int {
	return int(m.queue.Len())
}

func (m *queueMailbox) Dispose() {
	if m.queue.Disposed() {
		return
	}
	m.queue.Dispose()
}

// mailboxErr maps queue disposal onto the mailbox error surface.
func mailboxErr(err error) error {
	if errors.Is(err, queue.ErrDisposed) {
		return ErrMailboxClosed
	}
	return err
}
