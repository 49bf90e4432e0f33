package gonode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMessageOrder(t *testing.T) {
	node := newTestNode(t)

	col := &collector{}
	proc, err := node.Spawn(col)
	require.NoError(t, err)

	// single sender: dispatch order must match send order
	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, node.Send(proc.Self(), msg))
	}
	require.NoError(t, proc.Deliver(stopInbox{}))

	<-proc.Done()
	assert.Equal(t, []any{"a", "b", "c"}, col.Messages())
}

func TestProcessSentinelTerminatesLoop(t *testing.T) {
	node := newTestNode(t)

	col := &collector{}
	proc, err := node.Spawn(col)
	require.NoError(t, err)

	// a bare sentinel stops the loop without reaching the receiver
	require.NoError(t, proc.Deliver(stopInbox{}))

	select {
	case <-proc.Done():
	case <-time.After(time.Second):
		t.Fatal("run loop did not terminate on the sentinel")
	}

	assert.Empty(t, col.Messages())
	assert.True(t, proc.Exiting())
	assert.Equal(t, ReasonNormal, proc.ExitReason().Type)

	// termination still funneled through exit: the registry entry is gone
	_, found := node.Process(proc.Self())
	assert.False(t, found)
}

func TestProcessSelfExit(t *testing.T) {
	node := newTestNode(t)

	col := &collector{}
	proc, err := node.Spawn(ReceiverFunc(func(proc *Process, msg any) {
		col.Receive(proc, msg)
		if msg == "stop" {
			proc.Exit(Normal())
		}
	}))
	require.NoError(t, err)

	require.NoError(t, node.Send(proc.Self(), "stop"))
	// this one may race the exit; either way it must never be dispatched
	_ = node.Send(proc.Self(), "after")

	<-proc.Done()
	assert.Equal(t, []any{"stop"}, col.Messages())
	assert.Equal(t, ReasonNormal, proc.ExitReason().Type)
}

func TestProcessDoubleExit(t *testing.T) {
	node := newTestNode(t)

	sub := node.Events().AddSubscriber()
	node.Events().Subscribe(sub, TopicProcessExited)

	proc, err := node.Spawn(nil)
	require.NoError(t, err)

	proc.Exit(Kill("the first one counts"))
	<-proc.Done()

	// the second exit is a complete no-op
	proc.Exit(Normal())

	assert.Equal(t, ReasonKill, proc.ExitReason().Type)
	_, found := node.Process(proc.Self())
	assert.False(t, found)

	var exited int
	for msg := range sub.Iterator() {
		if event, ok := msg.Payload.(ProcessExited); ok && event.Pid == proc.Self() {
			exited++
		}
	}
	assert.Equal(t, 1, exited)
}

func TestProcessPanickedReceiver(t *testing.T) {
	node := newTestNode(t)

	proc, err := node.Spawn(ReceiverFunc(func(_ *Process, msg any) {
		panic(msg)
	}))
	require.NoError(t, err)

	require.NoError(t, node.Send(proc.Self(), "boom"))

	select {
	case <-proc.Done():
	case <-time.After(time.Second):
		t.Fatal("panicking process did not terminate")
	}

	reason := proc.ExitReason()
	assert.Equal(t, ReasonPanic, reason.Type)
	assert.Equal(t, "boom", reason.Details)

	_, found := node.Process(proc.Self())
	assert.False(t, found)
}

func TestProcessZeroReasonNormalizes(t *testing.T) {
	node := newTestNode(t)

	proc, err := node.Spawn(nil)
	require.NoError(t, err)

	proc.Exit(Reason{})
	<-proc.Done()

	assert.Equal(t, ReasonNormal, proc.ExitReason().Type)
}

func TestProcessDeliverAfterExit(t *testing.T) {
	node := newTestNode(t)

	proc, err := node.Spawn(nil)
	require.NoError(t, err)

	proc.Exit(Normal())
	<-proc.Done()

	err = proc.Deliver("too late")
	require.ErrorIs(t, err, ErrMailboxClosed)
}

func TestReceiverFuncGetsOwnProcess(t *testing.T) {
	node := newTestNode(t)

	self := make(chan Pid, 1)
	proc, err := node.Spawn(ReceiverFunc(func(proc *Process, _ any) {
		self <- proc.Self()
		proc.Exit(Normal())
	}))
	require.NoError(t, err)

	require.NoError(t, node.Send(proc.Self(), "who are you"))
	<-proc.Done()

	assert.Equal(t, proc.Self(), <-self)
}

func TestProcessWithMPSCMailbox(t *testing.T) {
	node := newTestNode(t)

	col := &collector{}
	proc, err := node.Spawn(col, WithMailbox(NewMPSCMailbox))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, node.Send(proc.Self(), i))
	}
	require.NoError(t, proc.Deliver(stopInbox{}))

	<-proc.Done()
	messages := col.Messages()
	require.Len(t, messages, 100)
	for i, msg := range messages {
		require.Equal(t, i, msg)
	}
}
