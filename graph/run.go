package graph

import (
	"time"

	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/diag"
)

// RunStatus is the terminal status of a call to [Graph.Run].
type RunStatus uint8

const (
	// RunEnd means every sink reached end-of-stream; the graph completed
	// successfully.
	RunEnd RunStatus = iota
	// RunInterrupted means the external [Interrupter] fired before
	// completion ("Cancellation semantics").
	RunInterrupted
	// RunFailed means a component or the scheduler itself reported an
	// error; see the returned [diag.Result] for detail.
	RunFailed
)

func (s RunStatus) String() string {
	switch s {
	case RunEnd:
		return "end"
	case RunInterrupted:
		return "interrupted"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PendingIssues drains the issues the dynamic port-added listener collected
// since the last call ("Dynamic ports": a failed auto-connect is
// reported, not fatal, at the moment it happens).
func (g *Graph) PendingIssues() diag.Result {
	res := g.pending.Result()
	g.pending = diag.Collector{}
	return res
}

// Run drives the graph to completion ("Execution loop"): repeatedly
// calling the internal step until a terminal status is reached. `OK`
// advances immediately to the next step; `AGAIN` sleeps for the
// configured retry duration, polling interrupter at a granularity finer
// than the sleep itself, before retrying; any component error aborts
// immediately. interrupter may be nil, in which case the run is
// uninterruptible.
func (g *Graph) Run(interrupter *Interrupter) (RunStatus, diag.Result) {
	for {
		if interrupter != nil && interrupter.IsSet() {
			return RunInterrupted, interruptedResult(g.source.String())
		}

		status, res := g.step()
		iterationsTotal.Inc()
		if !res.OK() {
			return RunFailed, res
		}

		switch status {
		case component.StatusEnd:
			return RunEnd, diag.OK()
		case component.StatusOK:
			continue
		case component.StatusAgain:
			againTotal.Inc()
			if interrupted := g.sleepInterruptible(interrupter); interrupted {
				return RunInterrupted, interruptedResult(g.source.String())
			}
		}
	}
}

// sleepInterruptible sleeps for the graph's retry duration in small
// increments, returning true as soon as the interrupter fires.
func (g *Graph) sleepInterruptible(interrupter *Interrupter) bool {
	if interrupter == nil {
		time.Sleep(g.retry)
		return false
	}
	remaining := g.retry
	for remaining > 0 {
		if interrupter.IsSet() {
			return true
		}
		tick := interruptPollInterval
		if tick > remaining {
			tick = remaining
		}
		time.Sleep(tick)
		remaining -= tick
	}
	return interrupter.IsSet()
}

func interruptedResult(source string) diag.Result {
	var c diag.Collector
	c.Collect(diag.NewIssue(diag.Error, diag.E_INTERRUPTED, "run interrupted").
		WithSourceName(source).
		Build())
	return c.Result()
}

// step performs one scheduling pass over all sinks in round-robin order
// ("Execution loop": "Within run, the scheduler polls sinks
// round-robin"). It returns StatusOK if any sink made progress, StatusEnd
// if every sink has reached end-of-stream, or StatusAgain if a full pass
// produced no progress anywhere.
func (g *Graph) step() (component.Status, diag.Result) {
	if g.ended == nil {
		g.ended = make(map[*component.Instance]bool, len(g.sinks))
	}

	if len(g.sinks) == 0 {
		return component.StatusEnd, diag.OK()
	}

	anyProgress := false
	n := len(g.sinks)
	for i := 0; i < n; i++ {
		idx := (g.cursor + i) % n
		sink := g.sinks[idx]
		if g.ended[sink] {
			continue
		}

		status, err := sink.Impl().(component.Sink).Consume()
		if err != nil {
			return component.Status(0), componentFailure(g.source.String(), sink.Name(), err)
		}
		switch status {
		case component.StatusOK:
			anyProgress = true
		case component.StatusEnd:
			g.ended[sink] = true
		case component.StatusAgain:
			// no progress from this sink this pass
		}
	}
	g.cursor = (g.cursor + 1) % n

	if len(g.ended) == n {
		return component.StatusEnd, diag.OK()
	}
	if anyProgress {
		return component.StatusOK, diag.OK()
	}
	return component.StatusAgain, diag.OK()
}

func componentFailure(source, name string, err error) diag.Result {
	var c diag.Collector
	c.Collect(diag.NewIssue(diag.Error, diag.E_COMPONENT_FAILED,
		"component "+name+" failed: "+err.Error()).
		WithSourceName(source).
		WithDetail(diag.DetailKeyComponent, name).
		Build())
	return c.Result()
}
