package diag

import (
	"fmt"
	"slices"
	"sync"

	"github.com/simon-lentz/tracegraph/location"
)

// Collector accumulates issues during one fallible operation (an INI parse,
// a graph validation pass, a CTF decode) and produces an immutable [Result].
//
// Collector is safe for concurrent use; the scheduler's dynamic-port
// listeners and the CTF decoder's packet loop may both report into the same
// collector from different call sites without external locking.
type Collector struct {
	mu           sync.RWMutex
	issues       []Issue
	limit        int
	limitReached bool
	droppedCount int

	fatalCount   int
	errorCount   int
	warningCount int
	infoCount    int
	hintCount    int

	cachedResult *Result
}

// NoLimit indicates unlimited issue collection.
const NoLimit = 0

// NewCollector creates a collector with an optional issue limit. A limit of
// 0 ([NoLimit]) means unlimited. Negative values are normalized to 0.
func NewCollector(limit int) *Collector {
	if limit < 0 {
		limit = 0
	}
	return &Collector{limit: limit}
}

// Collect adds an issue. Panics if the issue is zero-value or invalid — use
// [NewIssue]/[IssueBuilder] to construct issues.
func (c *Collector) Collect(issue Issue) {
	c.validateIssue(issue)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectLocked(issue)
}

// CollectAll adds multiple issues under a single lock.
func (c *Collector) CollectAll(issues []Issue) {
	for _, issue := range issues {
		c.validateIssue(issue)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, issue := range issues {
		c.collectLocked(issue)
	}
}

// Merge incorporates all issues from a Result under a single lock. Results
// are structurally guaranteed to contain only valid issues, so Merge skips
// re-validation.
func (c *Collector) Merge(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for issue := range res.Issues() {
		c.collectLocked(issue)
	}
}

func (c *Collector) validateIssue(issue Issue) {
	if issue.IsZero() {
		panic("diag.Collector.Collect: zero-value Issue")
	}
	if !issue.IsValid() {
		panic(fmt.Sprintf("diag.Collector.Collect: invalid Issue (code=%s, message=%q)",
			issue.Code(), issue.Message()))
	}
}

func (c *Collector) collectLocked(issue Issue) {
	c.cachedResult = nil

	if c.limit > 0 && len(c.issues) >= c.limit {
		c.limitReached = true
		c.droppedCount++
		return
	}

	c.issues = append(c.issues, issue)
	switch issue.Severity() {
	case Fatal:
		c.fatalCount++
	case Error:
		c.errorCount++
	case Warning:
		c.warningCount++
	case Info:
		c.infoCount++
	case Hint:
		c.hintCount++
	}
}

// Result produces a sorted, immutable snapshot, independent of further
// mutation of the collector. Cached until the next Collect.
func (c *Collector) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedResult != nil {
		return *c.cachedResult
	}

	sorted := make([]Issue, len(c.issues))
	copy(sorted, c.issues)
	slices.SortFunc(sorted, compareIssues)

	result := newResult(sorted, c.limit, c.limitReached, c.droppedCount)
	c.cachedResult = &result
	return result
}

// HasFailures reports whether any collected issue is Fatal or Error without
// materializing a Result.
func (c *Collector) HasFailures() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fatalCount > 0 || c.errorCount > 0
}

// compareIssues orders issues deterministically: span-backed issues before
// source-name-only issues, then by position, code, severity and message.
func compareIssues(a, b Issue) int {
	aHasSpan := !a.span.IsZero()
	bHasSpan := !b.span.IsZero()
	if aHasSpan != bHasSpan {
		if aHasSpan {
			return -1
		}
		return 1
	}

	if aHasSpan {
		if cmp := location.Compare(a.span, b.span); cmp != 0 {
			return cmp
		}
	} else if a.sourceName != b.sourceName {
		if a.sourceName < b.sourceName {
			return -1
		}
		return 1
	}

	if a.code.value != b.code.value {
		if a.code.value < b.code.value {
			return -1
		}
		return 1
	}

	if a.severity != b.severity {
		if a.severity < b.severity {
			return -1
		}
		return 1
	}

	if a.message != b.message {
		if a.message < b.message {
			return -1
		}
		return 1
	}

	return 0
}
