package gonode

import (
	"sync/atomic"

	"github.com/t3rm1n4l/go-mpscqueue"
)

const (
	mailboxIdle int32 = iota
	mailboxProcessing
)

// mpscMailbox is an unbounded mailbox on a lock free multi producer single
// consumer queue. The queue itself cannot block a consumer, so an idle
// consumer parks on the signal channel and the CAS winning producer leaves
// a wakeup token there, at most one outstanding.
type mpscMailbox struct {
	queue    *mpsc.MPSCQueue
	done     chan struct{}
	signal   chan struct{}
	status   int32
	disposed int32
}

// NewMPSCMailbox returns an unbounded lock free mailbox.
func NewMPSCMailbox() Mailbox {
	return &mpscMailbox{
		queue:  mpsc.New(),
		done:   make(chan struct{}),
		signal: make(chan struct{}, 1),
		status: mailboxIdle,
	}
}

func (m *mpscMailbox) Push(msg any) error {
	select {
	case <-m.done:
		return ErrMailboxClosed
	default:
	}
	m.queue.Push(msg)
	if atomic.CompareAndSwapInt32(&m.status, mailboxIdle, mailboxProcessing) {
		// the consumer can drain new messages through its size re-check
		// without taking the token, leaving the buffer full. a pending token
		// already guarantees a wakeup, so never wait for room.
		select {
		case m.signal <- struct{}{}:
		default:
		}
	}
	return nil
}

func (m *mpscMailbox) Pop() (any, error) {
	for {
		select {
		case <-m.done:
			return nil, ErrMailboxClosed
		default:
		}
		if m.queue.Size() != 0 {
			return m.queue.Pop(), nil
		}
		atomic.StoreInt32(&m.status, mailboxIdle)
		// a push can slip in right before the status goes idle and skip the
		// signal, so look again before parking
		if m.queue.Size() != 0 {
			atomic.CompareAndSwapInt32(&m.status, mailboxIdle, mailboxProcessing)
			continue
		}
		select {
		case <-m.signal:
		case <-m.done:
			return nil, ErrMailboxClosed
		}
	}
}

func (m *mpscMailbox) Len() int {
	return int(m.queue.Size())
}

func (m *mpscMailbox) Dispose() {
	if atomic.CompareAndSwapInt32(&m.disposed, 0, 1) {
		close(m.done)
	}
}
