package ir

import (
	"github.com/google/uuid"

	"github.com/simon-lentz/tracegraph/ctf/fieldpath"
	"github.com/simon-lentz/tracegraph/ctf/tsdl"
	"github.com/simon-lentz/tracegraph/ctf/trace"
	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// Build runs the three passes over doc and returns the
// reconstructed trace class. A non-OK Result may still be accompanied by a
// best-effort partial Class; callers that only care about hard failure
// should check Result.OK() first.
func Build(source location.SourceID, doc *tsdl.Document) (*trace.Class, diag.Result) {
	p := linkParents(doc)

	var c diag.Collector
	c.Merge(checkSemantics(source, doc, p))

	b := &builder{
		source: source,
		decls:  collectDecls(doc),
	}
	cls := b.build(doc)
	c.Merge(b.issues.Result())

	return cls, c.Result()
}

// collectDecls gathers every typedef/typealias into the declaration scope
// used to resolve TypeRef nodes, per "a declaration scope (named
// typedefs/typealiases) chained to enclosing blocks". This builder chains
// a single flat scope rather than nesting by block, since the grammar
// never re-declares a name inside a narrower block.
func collectDecls(doc *tsdl.Document) map[string]*tsdl.TypeExpr {
	decls := make(map[string]*tsdl.TypeExpr)
	for _, item := range doc.Items {
		switch v := item.(type) {
		case *tsdl.TypedefDecl:
			decls[v.Name] = v.Type
		case *tsdl.TypealiasDecl:
			decls[v.Name] = v.Type
		}
	}
	return decls
}

type builder struct {
	source location.SourceID
	decls  map[string]*tsdl.TypeExpr
	issues diag.Collector
}

func (b *builder) fail(span location.Span, message string) {
	b.issues.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_IR_VISITOR, message).
		WithSpan(span).
		WithSourceName(b.source.String()).
		Build())
}

// build performs pass 3, "IR construction": trace/clock/stream blocks
// first (so every stream's definition scope exists), then event blocks
// (which reference their owning stream by id).
func (b *builder) build(doc *tsdl.Document) *trace.Class {
	cls := &trace.Class{}

	var packetHeader *trace.FieldClass
	streamOrder := make([]uint64, 0)
	streamsByID := make(map[uint64]*trace.StreamClass)
	scopesByID := make(map[uint64]fieldpath.Scopes)

	for _, item := range doc.Items {
		block, ok := item.(*tsdl.Block)
		if !ok {
			continue
		}
		switch block.Kind {
		case tsdl.BlockTrace:
			if e, ok := findEntry(block.Entries, "uuid"); ok {
				cls.UUID = b.parseUUID(e)
			}
			if e, ok := findEntry(block.Entries, "packet.header"); ok {
				if te, ok := e.Value.(*tsdl.TypeExpr); ok {
					packetHeader = b.buildFieldClass(te, fieldpath.ScopePacketHeader, nil)
				}
			}
		case tsdl.BlockClock:
			cls.Clocks = append(cls.Clocks, b.buildClockClass(block))
		case tsdl.BlockStream:
			id := uintProp(block.Entries, "id", 0)
			sc, scopes := b.buildStreamClass(block, packetHeader)
			sc.ID = id
			if _, dup := streamsByID[id]; dup {
				b.fail(block.Span, "duplicate stream class id")
				continue
			}
			streamsByID[id] = sc
			scopesByID[id] = scopes
			streamOrder = append(streamOrder, id)
		}
	}

	for _, id := range streamOrder {
		cls.Streams = append(cls.Streams, streamsByID[id])
	}

	for _, item := range doc.Items {
		block, ok := item.(*tsdl.Block)
		if !ok || block.Kind != tsdl.BlockEvent {
			continue
		}
		b.attachEventClass(block, streamsByID, scopesByID)
	}

	return cls
}

func (b *builder) parseUUID(e *tsdl.Entry) uuid.UUID {
	lit, ok := e.Value.(*tsdl.LiteralExpr)
	if !ok {
		b.fail(e.Span, "uuid must be a string literal")
		return uuid.UUID{}
	}
	id, err := uuid.Parse(lit.Text)
	if err != nil {
		b.fail(e.Span, "invalid uuid: "+err.Error())
		return uuid.UUID{}
	}
	return id
}

func (b *builder) buildClockClass(block *tsdl.Block) *trace.ClockClass {
	cc := &trace.ClockClass{
		Name:          stringProp(block.Entries, "name", ""),
		FrequencyHz:   uintProp(block.Entries, "freq", 1_000_000_000),
		OffsetSeconds: intProp(block.Entries, "offset_s", 0),
		OffsetCycles:  uintProp(block.Entries, "offset", 0),
		Precision:     uintProp(block.Entries, "precision", 0),
	}
	if e, ok := findEntry(block.Entries, "uuid"); ok {
		cc.UUID = b.parseUUID(e)
	}
	return cc
}

// buildStreamClass builds a stream class's three shared field classes
// (packet context, event header, event stream context) and the Scopes map
// an owning event class will extend with its own context/payload.
func (b *builder) buildStreamClass(block *tsdl.Block, packetHeader *trace.FieldClass) (*trace.StreamClass, fieldpath.Scopes) {
	sc := &trace.StreamClass{}
	scopes := fieldpath.Scopes{}
	if packetHeader != nil {
		scopes[fieldpath.ScopePacketHeader] = packetHeader
	}

	if e, ok := findEntry(block.Entries, "packet.context"); ok {
		if te, ok := e.Value.(*tsdl.TypeExpr); ok {
			sc.PacketContext = b.buildFieldClass(te, fieldpath.ScopePacketContext, scopes)
			scopes[fieldpath.ScopePacketContext] = sc.PacketContext
		}
	}
	if e, ok := findEntry(block.Entries, "event.header"); ok {
		if te, ok := e.Value.(*tsdl.TypeExpr); ok {
			sc.EventHeader = b.buildFieldClass(te, fieldpath.ScopeEventHeader, scopes)
			scopes[fieldpath.ScopeEventHeader] = sc.EventHeader
		}
	}
	if e, ok := findEntry(block.Entries, "event.context"); ok {
		if te, ok := e.Value.(*tsdl.TypeExpr); ok {
			sc.EventContext = b.buildFieldClass(te, fieldpath.ScopeEventStreamContext, scopes)
			scopes[fieldpath.ScopeEventStreamContext] = sc.EventContext
		}
	}
	return sc, scopes
}

func (b *builder) attachEventClass(block *tsdl.Block, streamsByID map[uint64]*trace.StreamClass, scopesByID map[uint64]fieldpath.Scopes) {
	streamID := uintProp(block.Entries, "stream_id", 0)
	stream, ok := streamsByID[streamID]
	if !ok {
		b.fail(block.Span, "event class references unknown stream class")
		return
	}
	scopes := cloneScopes(scopesByID[streamID])

	ev := &trace.EventClass{
		ID:   uintProp(block.Entries, "id", 0),
		Name: stringProp(block.Entries, "name", ""),
	}
	if e, ok := findEntry(block.Entries, "context"); ok {
		if te, ok := e.Value.(*tsdl.TypeExpr); ok {
			ev.Context = b.buildFieldClass(te, fieldpath.ScopeEventContext, scopes)
			scopes[fieldpath.ScopeEventContext] = ev.Context
		}
	}
	if e, ok := findEntry(block.Entries, "fields"); ok {
		if te, ok := e.Value.(*tsdl.TypeExpr); ok {
			ev.Payload = b.buildFieldClass(te, fieldpath.ScopeEventPayload, scopes)
		}
	}

	if _, dup := stream.EventByID(ev.ID); dup {
		b.fail(block.Span, "duplicate event class id within stream class")
		return
	}
	stream.Events = append(stream.Events, ev)
}

func cloneScopes(s fieldpath.Scopes) fieldpath.Scopes {
	cp := make(fieldpath.Scopes, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}
