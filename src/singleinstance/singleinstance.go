// Package singleinstance lets a resident daemon own a loopback TCP endpoint so
// that a later invocation hands its capture to the daemon instead of starting
// a second overlay.
package singleinstance

import (
	"context"
)

// Server owns the TCP endpoint and answers capture requests.
type Server interface {
	// Start binds the first port of the configured range. It fails when another
	// resident holds it.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted connection, or the ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn is one client connection waiting for its capture result.
type Conn interface {
	Request() Request
	// RespondSuccess sends the text the client should print, possibly empty.
	RespondSuccess(text string) error
	// RespondError sends a human-readable error.
	RespondError(msg string) error
	Close() error
}

// Request is a single capture request.
type Request struct{}

// Client delegates a capture to a resident daemon.
type Client interface {
	// TryCapture scans the port range and asks the resident to capture. If no
	// resident is found it returns delegated=false and a nil error.
	TryCapture(ctx context.Context) (delegated bool, text string, err error)
}

// NewServer returns the TCP implementation.
func NewServer() Server { return newTcpServer() }

// NewClient returns the TCP implementation.
func NewClient() Client { return newTcpClient() }
