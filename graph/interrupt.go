package graph

import "sync/atomic"

// Interrupter is the shared, externally-owned cancellation flag for
// the scheduler's cancellation semantics. It is safe to Set from any
// goroutine while [Graph.Run] polls it from the scheduling goroutine.
type Interrupter struct {
	flag atomic.Bool
}

// NewInterrupter returns an unset Interrupter.
func NewInterrupter() *Interrupter { return &Interrupter{} }

// Set requests cancellation. Idempotent.
func (i *Interrupter) Set() { i.flag.Store(true) }

// IsSet reports whether cancellation has been requested.
func (i *Interrupter) IsSet() bool { return i.flag.Load() }

// Reset clears the flag so the same Interrupter can drive another run.
func (i *Interrupter) Reset() { i.flag.Store(false) }
