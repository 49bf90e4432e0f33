// Package gonode implements Erlang style processes on top of goroutines: a
// Node spawns processes, issues their pids, routes messages to their
// mailboxes and fans out monitor notifications when they exit.
package gonode

import (
	"fmt"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/hedisam/gonode/eventstream"
	"github.com/hedisam/gonode/log"
)

// Node owns every process spawned on it: pid issuance, the pid and name
// tables, message delivery and exit processing all go through the node.
// All methods are safe for concurrent use.
type Node struct {
	name string
	uid  string

	logger         log.Logger
	events         eventstream.Stream
	downFactory    DownMessageFactory
	mailboxFactory MailboxFactory

	mu      sync.RWMutex
	procs   map[Pid]*Process
	names   map[string]Pid
	stopped bool

	nextID *atomic.Uint64
}

// NewNode creates a named node. The name becomes part of every pid spawned
// on it.
func NewNode(name string, opts ...Option) (*Node, error) {
	if name == "" {
		return nil, ErrInvalidNodeName
	}

	node := &Node{
		name:           name,
		uid:            xid.New().String(),
		logger:         log.DefaultLogger,
		events:         eventstream.New(),
		downFactory:    defaultDownMessage,
		mailboxFactory: NewQueueMailbox,
		procs:          make(map[Pid]*Process),
		names:          make(map[string]Pid),
		nextID:         atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt.Apply(node)
	}

	node.logger.Infof("node %s is up, uid=%s", node.name, node.uid)
	return node, nil
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// UID identifies this node instance; two nodes with the same name still get
// distinct uids.
func (n *Node) UID() string {
	return n.uid
}

// Events returns the stream carrying process lifecycle events and
// deadletters.
func (n *Node) Events() eventstream.Stream {
	return n.events
}

// Spawn starts a new process running the given receiver. The process is
// registered and addressable before Spawn returns; its run loop starts on
// its own goroutine. A nil receiver spawns a process that just logs its
// messages.
func (n *Node) Spawn(receiver Receiver, opts ...SpawnOption) (*Process, error) {
	config := &spawnConfig{mailbox: n.mailboxFactory}
	for _, opt := range opts {
		opt(config)
	}

	p := newProcess(n, config.mailbox(), receiver, n.logger)
	if err := n.registerNewProcess(p, config.name); err != nil {
		p.mailbox.Dispose()
		return nil, err
	}

	n.events.Publish(TopicProcessSpawned, ProcessSpawned{Pid: p.pid, Name: config.name})
	n.logger.Debugf("node %s spawned %s", n.name, p.pid)

	go p.run()
	return p, nil
}

// registerNewProcess issues the next pid and installs the process in the
// table, all under one critical section so concurrent spawns can't collide
// and a stopping node can't accept new processes.
func (n *Node) registerNewProcess(p *Process, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return fmt.Errorf("spawn on node %s: %w", n.name, ErrNodeDown)
	}
	if name != "" {
		if _, taken := n.names[name]; taken {
			return fmt.Errorf("spawn with name %q: %w", name, ErrNameTaken)
		}
	}

	p.pid = Pid{node: n.name, id: n.nextID.Inc()}
	n.procs[p.pid] = p
	if name != "" {
		n.names[name] = p.pid
	}
	return nil
}

// Process looks up a live process by pid.
func (n *Node) Process(pid Pid) (*Process, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	p, ok := n.procs[pid]
	return p, ok
}

// Send delivers a message to the process behind the pid. Sending to a dead
// or unknown pid fails with ErrProcessNotFound and publishes a deadletter;
// the message is never silently dropped or retried.
func (n *Node) Send(to Pid, msg any) error {
	p, ok := n.Process(to)
	if !ok {
		err := fmt.Errorf("send to %s: %w", to, ErrProcessNotFound)
		n.events.Publish(TopicDeadletter, Deadletter{To: to, Msg: msg, Err: err})
		return err
	}
	if err := p.Deliver(msg); err != nil {
		// lost the race with the process's own exit
		err = fmt.Errorf("send to %s: %w", to, err)
		n.events.Publish(TopicDeadletter, Deadletter{To: to, Msg: msg, Err: err})
		return err
	}
	return nil
}

// SendNamed delivers a message to the process registered under name.
func (n *Node) SendNamed(name string, msg any) error {
	pid, ok := n.WhereIs(name)
	if !ok {
		err := fmt.Errorf("send to %q: %w", name, ErrNameNotFound)
		n.events.Publish(TopicDeadletter, Deadletter{Name: name, Msg: msg, Err: err})
		return err
	}
	return n.Send(pid, msg)
}

// RegisterName binds a name to a live process. The binding is dropped
// automatically when the process exits.
func (n *Node) RegisterName(name string, pid Pid) error {
	if name == "" {
		return ErrInvalidName
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return fmt.Errorf("register %q on node %s: %w", name, n.name, ErrNodeDown)
	}
	if _, ok := n.procs[pid]; !ok {
		return fmt.Errorf("register %q for %s: %w", name, pid, ErrProcessNotFound)
	}
	if _, taken := n.names[name]; taken {
		return fmt.Errorf("register %q: %w", name, ErrNameTaken)
	}

	n.names[name] = pid
	return nil
}

// UnregisterName removes a name binding.
func (n *Node) UnregisterName(name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.names[name]; !ok {
		return fmt.Errorf("unregister %q: %w", name, ErrNameNotFound)
	}
	delete(n.names, name)
	return nil
}

// WhereIs resolves a registered name to a pid.
func (n *Node) WhereIs(name string) (Pid, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	pid, ok := n.names[name]
	return pid, ok
}

// Monitor makes watcher receive a down message when target exits. If the
// target is already dead the down message is delivered immediately with a
// noproc reason, mirroring Erlang's monitor semantics. Monitoring the same
// target twice is a no-op.
func (n *Node) Monitor(watcher, target Pid) error {
	n.mu.Lock()
	w, ok := n.procs[watcher]
	if !ok {
		n.mu.Unlock()
		return fmt.Errorf("monitor by %s: %w", watcher, ErrProcessNotFound)
	}
	t, ok := n.procs[target]
	if ok {
		t.monitors.Add(watcher)
		w.monitorTargets.Add(target)
		n.mu.Unlock()
		return nil
	}
	n.mu.Unlock()

	return w.Deliver(n.downFactory(target, Reason{Type: ReasonNoProc}))
}

// Demonitor undoes Monitor. Demonitoring a dead or never monitored target
// is a no-op, like flushing a stale Erlang monitor ref.
func (n *Node) Demonitor(watcher, target Pid) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	w, ok := n.procs[watcher]
	if !ok {
		return fmt.Errorf("demonitor by %s: %w", watcher, ErrProcessNotFound)
	}
	if t, ok := n.procs[target]; ok {
		t.monitors.Remove(watcher)
	}
	w.monitorTargets.Remove(target)
	return nil
}

// onExitProcess removes the process from the tables and notifies its
// monitors. It runs exactly once per process, triggered by Exit; calling it
// for an already removed pid is a no-op. The removal and the fan out
// decision share one critical section with Monitor, so a watcher either
// makes it into the fan out or sees the dead pid, never neither.
func (n *Node) onExitProcess(pid Pid, reason Reason) {
	n.mu.Lock()
	p, ok := n.procs[pid]
	if !ok {
		n.mu.Unlock()
		return
	}
	delete(n.procs, pid)
	for name, owner := range n.names {
		if owner == pid {
			delete(n.names, name)
		}
	}

	watchers := make([]*Process, 0, p.monitors.Cardinality())
	for _, watcherPid := range p.monitors.ToSlice() {
		if w, live := n.procs[watcherPid]; live {
			w.monitorTargets.Remove(pid)
			watchers = append(watchers, w)
		}
	}
	p.monitors.Clear()
	for _, targetPid := range p.monitorTargets.ToSlice() {
		if t, live := n.procs[targetPid]; live {
			t.monitors.Remove(pid)
		}
	}
	p.monitorTargets.Clear()
	n.mu.Unlock()

	var errs error
	for _, w := range watchers {
		if err := w.Deliver(n.downFactory(pid, reason)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("notify %s: %w", w.pid, err))
		}
	}
	if errs != nil {
		n.logger.Warnf("node %s: down fan out for %s: %v", n.name, pid, errs)
	}

	n.events.Publish(TopicProcessExited, ProcessExited{Pid: pid, Reason: reason})
	n.logger.Debugf("node %s: %s exited: %s", n.name, pid, reason)
}

// Stop kills every live process, waits for their run loops to finish and
// closes the event stream. It is idempotent. Spawning on a stopped node
// fails with ErrNodeDown.
func (n *Node) Stop() {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	n.stopped = true
	procs := make([]*Process, 0, len(n.procs))
	for _, p := range n.procs {
		procs = append(procs, p)
	}
	n.mu.Unlock()

	for _, p := range procs {
		p.Exit(Kill("node is shutting down"))
	}
	for _, p := range procs {
		<-p.Done()
	}

	n.events.Close()
	n.logger.Infof("node %s stopped", n.name)
}

// Len returns the number of live processes.
func (n *Node) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.procs)
}

// Pids returns the pids of all live processes, in no particular order.
func (n *Node) Pids() []Pid {
	n.mu.RLock()
	defer n.mu.RUnlock()
	pids := make([]Pid, 0, len(n.procs))
	for pid := range n.procs {
		pids = append(pids, pid)
	}
	return pids
}
