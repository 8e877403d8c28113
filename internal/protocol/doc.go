// Package protocol defines the wavectl datagram catalog and its binary
// encoding. Every packet fits inside a single bounded datagram and is
// validated structurally (tag, length, field ranges) before any typed
// value is handed to the caller.
package protocol
