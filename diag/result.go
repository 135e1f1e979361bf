package diag

import "iter"

// SeverityCounts provides counts by severity level without map allocation.
type SeverityCounts struct {
	Fatal    int
	Errors   int
	Warnings int
	Info     int
	Hints    int
}

// Result is an immutable snapshot of diagnostic issues with precomputed
// counts. Obtained via [Collector.Result] or [OK] for an empty success
// result. There is no public constructor accepting arbitrary issues, so
// every issue in a Result is guaranteed valid.
type Result struct {
	issues       []Issue
	limit        int
	limitReached bool
	droppedCount int

	fatalCount   int
	errorCount   int
	warningCount int
	infoCount    int
	hintCount    int
}

func newResult(issues []Issue, limit int, limitReached bool, droppedCount int) Result {
	var counts SeverityCounts
	for _, issue := range issues {
		switch issue.Severity() {
		case Fatal:
			counts.Fatal++
		case Error:
			counts.Errors++
		case Warning:
			counts.Warnings++
		case Info:
			counts.Info++
		case Hint:
			counts.Hints++
		}
	}
	return Result{
		issues:       issues,
		limit:        limit,
		limitReached: limitReached,
		droppedCount: droppedCount,
		fatalCount:   counts.Fatal,
		errorCount:   counts.Errors,
		warningCount: counts.Warnings,
		infoCount:    counts.Info,
		hintCount:    counts.Hints,
	}
}

// OK returns an empty, successful Result.
func OK() Result {
	return Result{}
}

// Issues returns an iterator over all issues in sorted order.
func (r Result) Issues() iter.Seq[Issue] {
	return func(yield func(Issue) bool) {
		for _, issue := range r.issues {
			if !yield(issue) {
				return
			}
		}
	}
}

// Len returns the total number of issues.
func (r Result) Len() int { return len(r.issues) }

// At returns the issue at the given index.
func (r Result) At(i int) Issue { return r.issues[i] }

// Counts returns the precomputed severity counts.
func (r Result) Counts() SeverityCounts {
	return SeverityCounts{
		Fatal:    r.fatalCount,
		Errors:   r.errorCount,
		Warnings: r.warningCount,
		Info:     r.infoCount,
		Hints:    r.hintCount,
	}
}

// OK reports whether the result contains no Fatal or Error severity issues.
func (r Result) OK() bool {
	return r.fatalCount == 0 && r.errorCount == 0
}

// DroppedCount returns the number of issues dropped due to the collector's
// limit.
func (r Result) DroppedCount() int { return r.droppedCount }

// LimitReached reports whether the collector's limit was reached.
func (r Result) LimitReached() bool { return r.limitReached }

// First returns the first (most significant, per sort order) issue and true,
// or a zero Issue and false if the result is empty.
func (r Result) First() (Issue, bool) {
	if len(r.issues) == 0 {
		return Issue{}, false
	}
	return r.issues[0], true
}
