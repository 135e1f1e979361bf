package ir

import (
	"strconv"

	"github.com/simon-lentz/tracegraph/ctf/tsdl"
	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// checkSemantics is pass 2, semantic checking: placement rules are enforced by the
// grammar itself (the parser only ever nests a TypeExpr where the grammar
// allows one), so this pass focuses on the violations the grammar cannot
// reject by construction: integer/enumerator range constraints and
// link-expression kinds used outside a legal context.
func checkSemantics(source location.SourceID, doc *tsdl.Document, p parents) diag.Result {
	var c diag.Collector
	for _, item := range doc.Items {
		walkItemTypes(item, func(te *tsdl.TypeExpr) {
			checkTypeExpr(source, te, &c)
		})
	}
	return c.Result()
}

// walkItemTypes invokes visit on every TypeExpr reachable from item.
func walkItemTypes(item tsdl.Item, visit func(*tsdl.TypeExpr)) {
	switch v := item.(type) {
	case *tsdl.Block:
		for _, e := range v.Entries {
			if te, ok := e.Value.(*tsdl.TypeExpr); ok {
				walkTypeExpr(te, visit)
			}
		}
	case *tsdl.TypedefDecl:
		walkTypeExpr(v.Type, visit)
	case *tsdl.TypealiasDecl:
		walkTypeExpr(v.Type, visit)
	}
}

func walkTypeExpr(te *tsdl.TypeExpr, visit func(*tsdl.TypeExpr)) {
	if te == nil {
		return
	}
	visit(te)
	for _, m := range te.Members {
		walkTypeExpr(m.Type, visit)
	}
	for _, o := range te.Options {
		walkTypeExpr(o.Type, visit)
	}
	if te.Element != nil {
		walkTypeExpr(te.Element, visit)
	}
}

func checkTypeExpr(source location.SourceID, te *tsdl.TypeExpr, c *diag.Collector) {
	switch te.Kind {
	case tsdl.TypeInteger:
		checkBitWidth(source, te, te.Properties, c)
	case tsdl.TypeFloatingPoint:
		checkFloatWidths(source, te, c)
	case tsdl.TypeEnum:
		if te.Element != nil {
			checkBitWidth(source, te, te.Element.Properties, c)
		}
		checkEnumRanges(source, te, c)
	case tsdl.TypeSequence:
		checkLinkKind(source, te.LengthPath, "dynamic-array length", c)
	case tsdl.TypeVariant:
		checkLinkKind(source, te.TagPath, "variant selector", c)
	}
}

func checkBitWidth(source location.SourceID, te *tsdl.TypeExpr, props []*tsdl.Entry, c *diag.Collector) {
	size := intProp(props, "size", 32)
	if size <= 0 || size > 64 {
		c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_IR_VISITOR,
			"integer size must be between 1 and 64 bits").
			WithSpan(te.Span).
			WithSourceName(source.String()).
			Build())
	}
}

func checkFloatWidths(source location.SourceID, te *tsdl.TypeExpr, c *diag.Collector) {
	exp := intProp(te.Properties, "exp_dig", 8)
	mant := intProp(te.Properties, "mant_dig", 24)
	if exp <= 0 || mant <= 0 || exp+mant > 64 {
		c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_IR_VISITOR,
			"floating point exponent/mantissa bit widths are invalid").
			WithSpan(te.Span).
			WithSourceName(source.String()).
			Build())
	}
}

func checkEnumRanges(source location.SourceID, te *tsdl.TypeExpr, c *diag.Collector) {
	seen := make(map[string]bool, len(te.Ranges))
	for _, r := range te.Ranges {
		low, lowErr := strconv.ParseInt(r.Low, 0, 64)
		high, highErr := strconv.ParseInt(r.High, 0, 64)
		if lowErr != nil || highErr != nil || low > high {
			c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_IR_VISITOR,
				"invalid enumerator range for label "+strconv.Quote(r.Label)).
				WithSpan(r.Span).
				WithSourceName(source.String()).
				Build())
			continue
		}
		if seen[r.Label] {
			c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_IR_VISITOR,
				"duplicate enumerator label "+strconv.Quote(r.Label)).
				WithSpan(r.Span).
				WithSourceName(source.String()).
				Build())
		}
		seen[r.Label] = true
	}
}

// checkLinkKind rejects the ellipsis link operator in a field-path
// position: '...' is reserved for enumerator ranges (`LOW ... HIGH`), not
// for chaining path segments.
func checkLinkKind(source location.SourceID, link *tsdl.LinkExpr, what string, c *diag.Collector) {
	if link == nil {
		return
	}
	for _, k := range link.Kinds {
		if k == tsdl.LinkEllipsis {
			c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_IR_VISITOR,
				"'...' is not a valid link operator in a "+what).
				WithSpan(link.Span).
				WithSourceName(source.String()).
				Build())
			return
		}
	}
}
