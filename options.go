package gonode

import "github.com/hedisam/gonode/log"

// Option is the interface that applies a configuration option to a node.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(node *Node)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(node *Node)

// Apply applies the options to the given node.
func (f OptionFunc) Apply(node *Node) {
	f(node)
}

// WithLogger sets the logger used by the node and its processes.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(node *Node) {
		node.logger = logger
	})
}

// WithDefaultMailbox sets the mailbox factory used for processes spawned
// without a mailbox of their own.
func WithDefaultMailbox(factory MailboxFactory) Option {
	return OptionFunc(func(node *Node) {
		node.mailboxFactory = factory
	})
}

// WithDownMessageFactory overrides the message delivered to monitors when a
// monitored process exits.
func WithDownMessageFactory(factory DownMessageFactory) Option {
	return OptionFunc(func(node *Node) {
		node.downFactory = factory
	})
}

// spawnConfig holds the per process settings applied at spawn time.
type spawnConfig struct {
	name    string
	mailbox MailboxFactory
}

// SpawnOption is the interface that applies a configuration option at spawn
// time.
type SpawnOption func(config *spawnConfig)

// WithName registers the spawned process under the given name.
func WithName(name string) SpawnOption {
	return func(config *spawnConfig) {
		config.name = name
	}
}

// WithMailbox sets the mailbox of the spawned process, overriding the node
// default.
func WithMailbox(factory MailboxFactory) SpawnOption {
	return func(config *spawnConfig) {
		config.mailbox = factory
	}
}
