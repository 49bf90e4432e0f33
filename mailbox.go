package gonode

const defaultMailboxCap = 128

// Mailbox is a FIFO message queue owned by exactly one process. Any number
// of goroutines may Push concurrently; only the owning process loop calls
// Pop.
type Mailbox interface {
	// Push enqueues a message without ever blocking the caller. A bounded
	// mailbox reports ErrMailboxFull instead of waiting; a disposed mailbox
	// reports ErrMailboxClosed.
	Push(msg any) error
	// Pop dequeues the oldest message, blocking the calling goroutine until
	// one is available or the mailbox is disposed. It returns
	// ErrMailboxClosed once disposed.
	Pop() (any, error)
	// Len returns the momentary number of queued messages.
	Len() int
	// Dispose closes the mailbox, waking any blocked Pop. Messages still
	// queued are dropped. Dispose is idempotent.
	Dispose()
}

// MailboxFactory builds the mailbox for a freshly spawned process.
type MailboxFactory func() Mailbox
