// Package session implements both roles of the wavectl telemetry
// session over an unreliable datagram socket: the server side that
// accepts one remote at a time and feeds the actuation mailbox, and
// the remote side that handshakes, negotiates a data mode and streams
// samples under a synchronous per-message acknowledgment.
//
// There is no retransmission and no timeout anywhere in the exchange:
// a lost datagram or a lost ack blocks that exchange indefinitely.
// Validation failures reset the session, never the process.
package session
