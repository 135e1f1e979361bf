// Package builtin provides the small set of component classes shipped with
// the binary itself: a no-op dummy source and sink useful for exercising
// graph wiring without an external plugin, and a CTF filesystem source
// whose support-info query answers the auto-discovery helper in package
// discover by running an actual metadata decode.
//
// These stand in for the "individual source/sink component implementations"
// that stay external collaborators in the general case; the CTF decoder
// itself is the one piece of domain logic this repository owns, so its
// source class is real rather than a stub.
package builtin
