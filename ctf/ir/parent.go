package ir

import "github.com/simon-lentz/tracegraph/ctf/tsdl"

// parents maps each AST node to its immediate enclosing node. Built once
// per document by linkParents (pass 1, "Parent linking") and passed to
// checkSemantics, whose current checks do not read it.
type parents map[tsdl.Node]tsdl.Node

// linkParents walks doc assigning every node its parent.
func linkParents(doc *tsdl.Document) parents {
	p := make(parents)
	for _, item := range doc.Items {
		linkItem(p, item, nil)
	}
	return p
}

func linkItem(p parents, item tsdl.Item, parent tsdl.Node) {
	if item == nil {
		return
	}
	p[item] = parent
	switch v := item.(type) {
	case *tsdl.Block:
		for _, e := range v.Entries {
			linkEntry(p, e, v)
		}
	case *tsdl.TypedefDecl:
		linkExpr(p, v.Type, v)
	case *tsdl.TypealiasDecl:
		linkExpr(p, v.Type, v)
	}
}

func linkEntry(p parents, e *tsdl.Entry, parent tsdl.Node) {
	if e == nil {
		return
	}
	p[e] = parent
	linkExpr(p, e.Value, e)
}

func linkExpr(p parents, e tsdl.Expr, parent tsdl.Node) {
	if e == nil {
		return
	}
	p[e] = parent
	te, ok := e.(*tsdl.TypeExpr)
	if !ok {
		return
	}
	for _, m := range te.Members {
		p[m.Type] = te
		linkExpr(p, m.Type, te)
	}
	for _, o := range te.Options {
		p[o.Type] = te
		linkExpr(p, o.Type, te)
	}
	if te.Element != nil {
		linkExpr(p, te.Element, te)
	}
}
