package gonode

// Topics the node publishes on its event stream. Subscribe through
// Node.Events().
const (
	TopicProcessSpawned = "process.spawned"
	TopicProcessExited  = "process.exited"
	TopicDeadletter     = "deadletter"
)

// ProcessSpawned is published right after a process is registered.
type ProcessSpawned struct {
	Pid Pid
	// Name is the registered name claimed at spawn time, if any.
	Name string
}

// ProcessExited is published once the exiting process has been removed from
// the registry and its monitors have been notified.
type ProcessExited struct {
	Pid    Pid
	Reason Reason
}

// Deadletter is published when a message could not be delivered. The same
// failure is also returned to the sender; the stream exists so observers can
// see drops they are not a party to.
type Deadletter struct {
	// To is the target pid, zero when the send was by name only.
	To Pid
	// Name is the target name, empty when the send was by pid.
	Name string
	Msg  any
	Err  error
}
