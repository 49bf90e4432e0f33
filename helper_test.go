package gonode

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hedisam/gonode/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestNode(t *testing.T) *Node {
	t.Helper()
	node, err := NewNode("test", WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	t.Cleanup(node.Stop)
	return node
}

// collector records every message it receives. Reads are safe once the
// process is done or through Messages.
type collector struct {
	mu       sync.Mutex
	messages []any
}

func (c *collector) Receive(_ *Process, msg any) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

func (c *collector) Messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.messages...)
}
