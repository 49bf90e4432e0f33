package gonode

import (
	"runtime"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/hedisam/gonode/log"
)

// Receiver handles the messages delivered to a process. Receive is called
// on the process's own goroutine, one message at a time. A panicking
// Receive terminates the process with a panic reason instead of crashing
// the program.
type Receiver interface {
	Receive(proc *Process, msg any)
}

var _ Receiver = ReceiverFunc(nil)

// ReceiverFunc adapts a plain function to the Receiver interface.
type ReceiverFunc func(proc *Process, msg any)

// Receive implements Receiver.
func (f ReceiverFunc) Receive(proc *Process, msg any) {
	f(proc, msg)
}

// Process is a lightweight Erlang style process owned by a Node. It drains
// its mailbox on a dedicated goroutine and lives until Exit is called, by
// itself or by someone else. Create one with Node.Spawn.
type Process struct {
	pid      Pid
	node     *Node
	mailbox  Mailbox
	receiver Receiver
	logger   log.Logger

	exiting *atomic.Bool
	reason  atomic.Value

	// processes watching us. each one gets a down message when we exit.
	monitors mapset.Set[Pid]
	// processes we are watching.
	monitorTargets mapset.Set[Pid]

	done chan struct{}
}

func newProcess(node *Node, mailbox Mailbox, receiver Receiver, logger log.Logger) *Process {
	return &Process{
		node:           node,
		mailbox:        mailbox,
		receiver:       receiver,
		logger:         logger,
		exiting:        atomic.NewBool(false),
		monitors:       mapset.NewSet[Pid](),
		monitorTargets: mapset.NewSet[Pid](),
		done:           make(chan struct{}),
	}
}

// Self returns the process id.
func (p *Process) Self() Pid {
	return p.pid
}

// Node returns the node the process lives on.
func (p *Process) Node() *Node {
	return p.node
}

// Done returns a channel that is closed once the run loop has fully
// stopped and the mailbox is disposed.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Exiting reports whether the process has started terminating.
func (p *Process) Exiting() bool {
	return p.exiting.Load()
}

// ExitReason returns the reason recorded by Exit. It returns the zero
// Reason while the process is still running; wait on Done for the final
// value.
func (p *Process) ExitReason() Reason {
	v := p.reason.Load()
	if v == nil {
		return Reason{}
	}
	return v.(Reason)
}

// Send delivers a message to another process on the same node.
func (p *Process) Send(to Pid, msg any) error {
	return p.node.Send(to, msg)
}

// Deliver pushes a message straight into the process's mailbox, bypassing
// the registry lookup. The node uses it for local delivery; remote
// transports can use it the same way.
func (p *Process) Deliver(msg any) error {
	return p.mailbox.Push(msg)
}

// Exit marks the process as exiting with the given reason, unregisters it
// from the node and notifies its monitors. Only the first call does
// anything; the rest are no-ops. A zero reason counts as a normal exit.
func (p *Process) Exit(reason Reason) {
	if !p.exiting.CompareAndSwap(false, true) {
		return
	}
	if reason.Type == "" {
		reason.Type = ReasonNormal
	}
	p.reason.Store(reason)
	p.logger.Debugf("process %s exiting: %s", p.pid, reason)

	// wake up a run loop parked on an empty mailbox. the sentinel is
	// consumed by the loop itself and never reaches the receiver. a full
	// mailbox cannot park the loop, so losing the sentinel there is fine:
	// the loop re-checks the exiting flag after every message.
	if err := p.mailbox.Push(stopInbox{reason: reason}); err != nil {
		p.logger.Debugf("process %s: stop sentinel dropped: %v", p.pid, err)
	}

	p.node.onExitProcess(p.pid, reason)
}

// run drives the process until it exits. It must run on its own goroutine.
func (p *Process) run() {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("process %s receiver panicked: %v", p.pid, r)
			p.Exit(Panicked(r))
		}
		// whatever is still queued is dropped with the mailbox.
		p.mailbox.Dispose()
		close(p.done)
	}()

	for !p.exiting.Load() {
		if !p.handleInbox() {
			break
		}
		// let the other goroutines have a turn between drain passes
		runtime.Gosched()
	}
}

// handleInbox runs a single drain pass: block for the first message, then
// keep dispatching until the mailbox is momentarily empty or the process
// starts exiting. It returns false once the sentinel is seen or the
// mailbox is gone. Override dispatch behavior via the Receiver, not here.
func (p *Process) handleInbox() bool {
	for {
		msg, err := p.mailbox.Pop()
		if err != nil {
			// mailbox disposed under us, nothing more to drain
			return false
		}
		if sentinel, stop := msg.(stopInbox); stop {
			// the sentinel terminates the loop even when pushed directly
			// without an Exit call; route it through Exit so unregistering
			// still happens exactly once.
			p.Exit(sentinel.reason)
			return false
		}
		p.handleOneInboxMessage(msg)
		if p.exiting.Load() || p.mailbox.Len() == 0 {
			return true
		}
	}
}

// handleOneInboxMessage hands one message to the receiver. A process
// spawned without a receiver just logs what it gets.
func (p *Process) handleOneInboxMessage(msg any) {
	if p.receiver == nil {
		p.logger.Infof("process %s: handling msg %v", p.pid, msg)
		return
	}
	p.receiver.Receive(p, msg)
}
