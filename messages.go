package gonode

import "fmt"

// Exit reason types. Details, when present, carry the panic value or a
// human readable cause.
const (
	// ReasonNormal marks a voluntary termination.
	ReasonNormal = "normal"
	// ReasonKill marks a termination forced from outside, e.g. node stop.
	ReasonKill = "kill"
	// ReasonPanic marks a termination caused by a panicking receiver.
	ReasonPanic = "panic"
	// ReasonNoProc marks a monitored process that was already dead when the
	// monitor was requested.
	ReasonNoProc = "noproc"
)

// Reason describes why a process terminated.
type Reason struct {
	Type    string
	Details any
}

func (r Reason) String() string {
	if r.Details == nil {
		return r.Type
	}
	return fmt.Sprintf("%s: %v", r.Type, r.Details)
}

// Normal returns the reason of a voluntary termination.
func Normal() Reason {
	return Reason{Type: ReasonNormal}
}

// Kill returns the reason used when a process is terminated from outside.
func Kill(details any) Reason {
	return Reason{Type: ReasonKill, Details: details}
}

// Panicked wraps a recovered panic value into a reason.
func Panicked(v any) Reason {
	return Reason{Type: ReasonPanic, Details: v}
}

// Down tells a monitoring process that a process it monitors has
// terminated. It is the default shape built by the node's down message
// factory and is delivered through the watcher's mailbox like any other
// message.
type Down struct {
	// Pid is the process that terminated.
	Pid Pid
	// Reason is why it terminated.
	Reason Reason
}

// DownMessageFactory builds the notification delivered to monitoring
// processes. Replacing it via WithDownMessageFactory changes the message
// shape without touching the fan out itself.
type DownMessageFactory func(pid Pid, reason Reason) any

func defaultDownMessage(pid Pid, reason Reason) any {
	return Down{Pid: pid, Reason: reason}
}

// stopInbox is the mailbox sentinel. Dequeuing it stops the run loop
// without the message ever reaching the receiver. Exit pushes it so a loop
// blocked on an empty mailbox wakes up promptly; any external forced
// termination has to do the same.
type stopInbox struct {
	reason Reason
}
