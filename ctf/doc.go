// Package ctf decodes a CTF metadata stream, in either its packetized or
// plain-text form, into a reconstructed trace class.
//
// Decode accepts whatever bytes are available so far. A stream ending
// mid-packet or mid-declaration is reported as [Incomplete] rather than a
// hard failure: the caller appends more bytes (as they arrive from a file
// or socket) and calls Decode again.
package ctf
