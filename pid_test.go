package gonode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPidZeroValue(t *testing.T) {
	var pid Pid
	assert.True(t, pid.IsZero())
	assert.Equal(t, "<nil>", pid.String())
}

func TestPidString(t *testing.T) {
	node := newTestNode(t)

	proc, err := node.Spawn(nil)
	require.NoError(t, err)

	pid := proc.Self()
	assert.False(t, pid.IsZero())
	assert.Equal(t, "test", pid.Node())
	assert.NotZero(t, pid.ID())
	assert.Contains(t, pid.String(), "test.")
}

func TestPidComparable(t *testing.T) {
	node := newTestNode(t)

	first, err := node.Spawn(nil)
	require.NoError(t, err)
	second, err := node.Spawn(nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Self(), second.Self())

	// pids work as map keys
	seen := map[Pid]bool{first.Self(): true}
	assert.True(t, seen[first.Self()])
	assert.False(t, seen[second.Self()])
}
