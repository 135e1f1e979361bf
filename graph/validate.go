package graph

import (
	"github.com/cespare/xxhash/v2"

	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/connect"
	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// Validate runs the five checks, in order, against instances (every
// component that will exist in the graph) and conns (the parsed
// `--connect` arguments). It stops at the first failing check and returns
// its diagnostic; an OK result means the graph is well-formed.
func Validate(source location.SourceID, instances []*component.Instance, conns []connect.Connection) diag.Result {
	byName := make(map[string]*component.Instance, len(instances))
	for _, in := range instances {
		byName[in.Name()] = in
	}

	if res := checkEndpointsExist(source, byName, conns); !res.OK() {
		return res
	}
	if res := checkDirectionsLegal(source, byName, conns); !res.OK() {
		return res
	}
	if res := checkAllConnected(source, instances, conns); !res.OK() {
		return res
	}
	if res := checkNoDuplicate(source, conns); !res.OK() {
		return res
	}
	return checkNoCycle(source, conns)
}

func issueFor(source location.SourceID, code diag.Code, message, originalArg string) diag.Issue {
	return diag.NewIssue(diag.Error, code, message).
		WithSourceName(source.String()).
		WithDetail(diag.DetailKeyArgument, originalArg).
		Build()
}

func checkEndpointsExist(source location.SourceID, byName map[string]*component.Instance, conns []connect.Connection) diag.Result {
	var c diag.Collector
	for _, conn := range conns {
		if _, ok := byName[conn.UpstreamName]; !ok {
			c.Collect(issueFor(source, diag.E_GRAPH_ENDPOINT_UNKNOWN,
				"unknown upstream component "+conn.UpstreamName, conn.OriginalArg))
		}
		if _, ok := byName[conn.DownstreamName]; !ok {
			c.Collect(issueFor(source, diag.E_GRAPH_ENDPOINT_UNKNOWN,
				"unknown downstream component "+conn.DownstreamName, conn.OriginalArg))
		}
	}
	return c.Result()
}

func checkDirectionsLegal(source location.SourceID, byName map[string]*component.Instance, conns []connect.Connection) diag.Result {
	var c diag.Collector
	for _, conn := range conns {
		up, upOK := byName[conn.UpstreamName]
		down, downOK := byName[conn.DownstreamName]
		if !upOK || !downOK {
			continue // reported by checkEndpointsExist
		}
		upKind := up.Class().ID().Kind
		downKind := down.Class().ID().Kind
		if !upKind.CanPrecede(downKind) {
			c.Collect(issueFor(source, diag.E_GRAPH_BAD_DIRECTION,
				upKind.String()+" cannot connect to "+downKind.String(), conn.OriginalArg))
		}
	}
	return c.Result()
}

func checkAllConnected(source location.SourceID, instances []*component.Instance, conns []connect.Connection) diag.Result {
	referenced := make(map[string]bool, len(conns)*2)
	for _, conn := range conns {
		referenced[conn.UpstreamName] = true
		referenced[conn.DownstreamName] = true
	}

	var c diag.Collector
	for _, in := range instances {
		if !referenced[in.Name()] {
			c.Collect(diag.NewIssue(diag.Error, diag.E_GRAPH_UNCONNECTED,
				"component "+in.Name()+" is not the endpoint of any connection").
				WithSourceName(source.String()).
				WithDetail(diag.DetailKeyComponent, in.Name()).
				Build())
		}
	}
	return c.Result()
}

func checkNoDuplicate(source location.SourceID, conns []connect.Connection) diag.Result {
	seen := make(map[uint64][]connect.Connection)
	var c diag.Collector
	for _, conn := range conns {
		key := conn.Key()
		h := xxhash.Sum64String(key)
		duplicate := false
		for _, prior := range seen[h] {
			if prior.Key() == key {
				duplicate = true
				break
			}
		}
		if duplicate {
			c.Collect(issueFor(source, diag.E_GRAPH_DUPLICATE_CONNECTION,
				"duplicate connection", conn.OriginalArg))
			continue
		}
		seen[h] = append(seen[h], conn)
	}
	return c.Result()
}

func checkNoCycle(source location.SourceID, conns []connect.Connection) diag.Result {
	// Adjacency by upstream name: expand along every connection whose
	// upstream endpoint matches the current component.
	adj := make(map[string][]connect.Connection)
	for _, conn := range conns {
		adj[conn.UpstreamName] = append(adj[conn.UpstreamName], conn)
	}

	var c diag.Collector
	visited := make(map[string]bool)

	var stack []string
	onStack := make(map[string]bool)

	var visit func(name string, causingArg string) bool
	visit = func(name string, causingArg string) bool {
		if onStack[name] {
			c.Collect(issueFor(source, diag.E_GRAPH_CYCLE,
				"cycle detected through component "+name, causingArg))
			return true
		}
		if visited[name] {
			return false
		}
		visited[name] = true
		onStack[name] = true
		stack = append(stack, name)
		for _, conn := range adj[name] {
			if visit(conn.DownstreamName, conn.OriginalArg) {
				return true
			}
		}
		onStack[name] = false
		stack = stack[:len(stack)-1]
		return false
	}

	for _, conn := range conns {
		if visited[conn.UpstreamName] {
			continue
		}
		if visit(conn.UpstreamName, conn.OriginalArg) {
			break
		}
	}
	return c.Result()
}
