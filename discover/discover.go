package discover

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/value"
)

// SupportInfoObject is the well-known query object name sources are asked
// to weigh an input against.
const SupportInfoObject = "babeltrace.support-info"

// Group is one winning class/group pair and the inputs assigned to it.
type Group struct {
	Class  component.ClassID
	Key    string
	Inputs []string
}

// winner records one input claimed by a class, pending grouping.
type winner struct {
	input string
	class component.ClassID
	key   string
}

// Run weighs every input against classes and returns the winning groups
// plus any input no class claimed, even after the filesystem-path
// fallback. logger receives non-fatal directory-read-permission warnings;
// a nil logger uses [slog.Default].
func Run(classes []component.Class, inputs []string, logger *slog.Logger) ([]Group, []string) {
	if logger == nil {
		logger = slog.Default()
	}

	var winners []winner
	var unclaimed []string

	for _, in := range inputs {
		if w, ok := weighOne(classes, value.NewString(in)); ok {
			winners = append(winners, winner{input: in, class: w.class, key: w.group})
			continue
		}

		info, err := os.Stat(in)
		if err != nil || !info.IsDir() {
			unclaimed = append(unclaimed, in)
			continue
		}

		var collected []winner
		if !recurseDir(classes, in, logger, &collected) {
			unclaimed = append(unclaimed, in)
			continue
		}
		winners = append(winners, collected...)
	}

	groups := make(map[component.ClassID]map[string]*Group)
	var order []*Group
	for _, w := range winners {
		byKey, ok := groups[w.class]
		if !ok {
			byKey = make(map[string]*Group)
			groups[w.class] = byKey
		}
		g, ok := byKey[w.key]
		if !ok {
			g = &Group{Class: w.class, Key: w.key}
			byKey[w.key] = g
			order = append(order, g)
		}
		g.Inputs = append(g.Inputs, w.input)
	}

	result := make([]Group, len(order))
	for i, g := range order {
		result[i] = *g
	}
	return result, unclaimed
}

type candidate struct {
	class  component.ClassID
	weight float64
	group  string
}

// weighOne queries every queryable class with input and returns the
// highest-weighted class that claims it with a positive weight.
func weighOne(classes []component.Class, input value.Value) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range classes {
		if !c.Queryable() {
			continue
		}
		res, err := c.Query(SupportInfoObject, input)
		if err != nil {
			continue
		}
		weight, group, ok := parseSupportInfo(res)
		if !ok || weight <= 0 {
			continue
		}
		if !found || weight > best.weight {
			found = true
			best = candidate{class: c.ID(), weight: weight, group: group}
		}
	}
	return best, found
}

// parseSupportInfo reads a support-info query result: either a bare weight
// (float or int) or a map with a "weight" entry and an optional "group" key.
func parseSupportInfo(res value.Value) (weight float64, group string, ok bool) {
	switch res.Kind() {
	case value.KindFloat:
		w, _ := res.Float()
		return w, "", true
	case value.KindInt:
		w, _ := res.Int()
		return float64(w), "", true
	case value.KindMap:
		wv, found := res.Get("weight")
		if !found {
			return 0, "", false
		}
		switch wv.Kind() {
		case value.KindFloat:
			weight, _ = wv.Float()
		case value.KindInt:
			i, _ := wv.Int()
			weight = float64(i)
		default:
			return 0, "", false
		}
		if gv, found := res.Get("group"); found {
			group, _ = gv.String()
		}
		return weight, group, true
	default:
		return 0, "", false
	}
}

// recurseDir offers every directory entry to classes as a string; entries
// still unclaimed that are themselves directories are recursed into.
// Directory-read errors due to permissions are logged and skipped rather
// than propagated.
func recurseDir(classes []component.Class, dir string, logger *slog.Logger, out *[]winner) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			logger.Warn("discover: skipping unreadable directory", "path", dir, "error", err)
		}
		return false
	}

	claimed := false
	for _, e := range entries {
		child := filepath.Join(dir, e.Name())
		if w, ok := weighOne(classes, value.NewString(child)); ok {
			*out = append(*out, winner{input: child, class: w.class, key: w.group})
			claimed = true
			continue
		}
		if e.IsDir() {
			if recurseDir(classes, child, logger, out) {
				claimed = true
			}
		}
	}
	return claimed
}
