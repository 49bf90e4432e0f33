package gonode

import "errors"

var (
	// ErrNodeDown is returned when spawning on, or registering a name
	// with, a node that has been stopped.
	ErrNodeDown = errors.New("node is down")
	// ErrInvalidNodeName is returned by NewNode for an empty node name.
	ErrInvalidNodeName = errors.New("invalid node name")
	// ErrProcessNotFound is returned when a pid does not resolve to a live
	// process.
	ErrProcessNotFound = errors.New("process not found")
	// ErrMailboxClosed is returned when pushing to or popping from a
	// disposed mailbox.
	ErrMailboxClosed = errors.New("mailbox is closed")
	// ErrMailboxFull is returned by a bounded mailbox instead of blocking
	// the sender.
	ErrMailboxFull = errors.New("mailbox is full")
	// ErrNameTaken is returned when registering a name that is already in
	// use.
	ErrNameTaken = errors.New("name already registered")
	// ErrNameNotFound is returned when sending to an unregistered name.
	ErrNameNotFound = errors.New("name not registered")
	// ErrInvalidName is returned when registering an empty name.
	ErrInvalidName = errors.New("invalid name")
)
