package gonode

import "fmt"

// Pid identifies one process instance for its lifetime. Pids are issued by
// the owning node when a process is registered and are never reissued by
// that node, so two live processes can never share one. The zero value names
// no process.
type Pid struct {
	node string
	id   uint64
}

// Node returns the name of the node that issued the pid.
func (p Pid) Node() string {
	return p.node
}

// ID returns the node local part of the pid.
func (p Pid) ID() uint64 {
	return p.id
}

// IsZero reports whether the pid is the zero value.
func (p Pid) IsZero() bool {
	return p == Pid{}
}

func (p Pid) String() string {
	if p.IsZero() {
		return "<nil>"
	}
	return fmt.Sprintf("<%s.%d>", p.node, p.id)
}
