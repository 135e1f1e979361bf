package ir

import (
	"strconv"

	"github.com/simon-lentz/tracegraph/ctf/fieldpath"
	"github.com/simon-lentz/tracegraph/ctf/trace"
	"github.com/simon-lentz/tracegraph/ctf/tsdl"
)

// buildFieldClass is pass 3's per-node translation from a parsed TypeExpr
// into its reconstructed trace.FieldClass, resolving typedef/typealias
// references against the builder's declaration scope and field-path link
// expressions (variant tags, dynamic array lengths) against the scopes
// visible at this point in the trace.
func (b *builder) buildFieldClass(te *tsdl.TypeExpr, scope fieldpath.Scope, scopes fieldpath.Scopes) *trace.FieldClass {
	if te == nil {
		return nil
	}

	switch te.Kind {
	case tsdl.TypeRef:
		resolved, ok := b.decls[te.RefName]
		if !ok {
			b.fail(te.Span, "reference to unknown typedef/typealias name "+te.RefName)
			return nil
		}
		return b.buildFieldClass(resolved, scope, scopes)

	case tsdl.TypeInteger:
		fc := &trace.FieldClass{Kind: trace.FieldInteger}
		b.fillIntegerProps(fc, te.Properties)
		return fc

	case tsdl.TypeFloatingPoint:
		return &trace.FieldClass{
			Kind:         trace.FieldFloat,
			Alignment:    int(intProp(te.Properties, "align", 1)),
			ExponentBits: int(intProp(te.Properties, "exp_dig", 8)),
			MantissaBits: int(intProp(te.Properties, "mant_dig", 24)),
		}

	case tsdl.TypeString:
		return &trace.FieldClass{Kind: trace.FieldString, Alignment: 8}

	case tsdl.TypeStruct:
		fc := &trace.FieldClass{Kind: trace.FieldStruct}
		for _, m := range te.Members {
			child := b.buildFieldClass(m.Type, scope, scopes)
			alignment := 0
			if child != nil {
				alignment = child.Alignment
			}
			fc.Members = append(fc.Members, trace.Member{
				Name:      m.Name,
				Class:     child,
				Alignment: alignment,
			})
		}
		return fc

	case tsdl.TypeArray:
		return &trace.FieldClass{
			Kind:    trace.FieldStaticArray,
			Length:  te.Length,
			Element: b.buildFieldClass(te.Element, scope, scopes),
		}

	case tsdl.TypeSequence:
		fc := &trace.FieldClass{
			Kind:    trace.FieldDynamicArray,
			Element: b.buildFieldClass(te.Element, scope, scopes),
		}
		if te.LengthPath != nil {
			fc.LengthPath = fieldpath.FromLink(te.LengthPath, scope)
			b.checkEarlierScopePath(fc.LengthPath, scope, scopes, "dynamic-array length", true)
		}
		return fc

	case tsdl.TypeVariant:
		fc := &trace.FieldClass{Kind: trace.FieldVariant}
		if te.TagPath != nil {
			fc.TagPath = fieldpath.FromLink(te.TagPath, scope)
			b.checkEarlierScopePath(fc.TagPath, scope, scopes, "variant selector", false)
		}
		for _, o := range te.Options {
			fc.Options = append(fc.Options, trace.VariantOption{
				Name:  o.Name,
				Class: b.buildFieldClass(o.Type, scope, scopes),
			})
		}
		return fc

	case tsdl.TypeEnum:
		fc := &trace.FieldClass{Kind: trace.FieldEnum}
		b.fillIntegerProps(fc, b.enumUnderlyingProps(te))
		for _, r := range te.Ranges {
			low, high, ok := parseEnumRange(r)
			if !ok {
				b.fail(r.Span, "invalid enumerator range for label "+r.Label)
				continue
			}
			fc.Ranges = append(fc.Ranges, trace.EnumRange{Label: r.Label, Low: low, High: high})
		}
		return fc

	default:
		b.fail(te.Span, "unsupported field class kind")
		return nil
	}
}

// enumUnderlyingProps returns the integer properties backing an enum: the
// enum's own (empty) properties for a bare `enum { ... }`, the inline
// integer's properties for `enum : integer { ... } { ... }`, or the
// properties of the named typedef/typealias it refers to when declared
// against one (`enum : uint8_t { ... }`), resolved the same way a bare
// TypeRef is resolved elsewhere in this builder.
func (b *builder) enumUnderlyingProps(te *tsdl.TypeExpr) []*tsdl.Entry {
	underlying := te.Element
	if underlying == nil {
		return te.Properties
	}
	for underlying.Kind == tsdl.TypeRef {
		resolved, ok := b.decls[underlying.RefName]
		if !ok {
			b.fail(underlying.Span, "reference to unknown typedef/typealias name "+underlying.RefName)
			return nil
		}
		underlying = resolved
	}
	if underlying.Kind != tsdl.TypeInteger {
		b.fail(underlying.Span, "enum underlying type must be an integer type")
		return nil
	}
	return underlying.Properties
}

// fillIntegerProps populates the integer-shaped fields shared by
// FieldInteger and the underlying integer of FieldEnum.
func (b *builder) fillIntegerProps(fc *trace.FieldClass, props []*tsdl.Entry) {
	fc.BitWidth = int(intProp(props, "size", 32))
	fc.Alignment = int(intProp(props, "align", 1))
	fc.Signed = identProp(props, "signed", "false") == "true"
	fc.Base = int(intProp(props, "base", 10))
	if stringProp(props, "byte_order", "le") == "be" {
		fc.Order = trace.BigEndian
	}
	if e, ok := findEntry(props, "map"); ok {
		if link, ok := e.Value.(*tsdl.LinkExpr); ok && len(link.Segments) >= 2 {
			fc.MappedClock = link.Segments[1]
		}
	}
}

// checkEarlierScopePath validates a variant-tag or dynamic-array-length
// path eagerly, at build time, when it names a scope other than the one
// currently being built. A same-scope reference may name an as-yet-unbuilt
// sibling member — the scopes map never holds an entry for the struct
// under construction — so it is left for actual trace decoding to resolve.
func (b *builder) checkEarlierScopePath(path fieldpath.Path, scope fieldpath.Scope, scopes fieldpath.Scopes, what string, requireInteger bool) {
	if path.Scope == scope {
		return
	}
	target, ok := fieldpath.Resolve(scope, scopes, path)
	if !ok {
		b.fail(path.Span, what+" path "+path.String()+" does not resolve to an earlier field")
		return
	}
	if requireInteger && !target.IsInteger() {
		b.fail(path.Span, what+" path "+path.String()+" must resolve to an integer field")
	}
}

func parseEnumRange(r *tsdl.EnumRange) (low, high int64, ok bool) {
	low, err := strconv.ParseInt(r.Low, 0, 64)
	if err != nil {
		return 0, 0, false
	}
	high, err = strconv.ParseInt(r.High, 0, 64)
	if err != nil {
		return 0, 0, false
	}
	return low, high, true
}
