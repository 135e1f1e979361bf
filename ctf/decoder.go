package ctf

import (
	"encoding/binary"
	"strings"

	"github.com/google/uuid"

	"github.com/simon-lentz/tracegraph/ctf/ir"
	"github.com/simon-lentz/tracegraph/ctf/packet"
	"github.com/simon-lentz/tracegraph/ctf/trace"
	"github.com/simon-lentz/tracegraph/ctf/tsdl"
	"github.com/simon-lentz/tracegraph/diag"
	"github.com/simon-lentz/tracegraph/location"
)

// Status reports whether Decode consumed a complete stream.
type Status int

const (
	// Complete means data held a full metadata stream; the returned Result
	// carries whatever errors were found along the way.
	Complete Status = iota
	// Incomplete means data ended before a full stream could be read. The
	// caller should append more bytes and call Decode again from the start.
	Incomplete
)

// Decode reconstructs a trace class from a CTF metadata stream. data may be
// packetized (magic-prefixed, per [packet.Header]) or plain TSDL text; the
// two are distinguished by the first four bytes.
func Decode(source location.SourceID, data []byte) (*trace.Class, Status, diag.Result) {
	if len(data) < 4 {
		return nil, Incomplete, diag.OK()
	}

	if order, ok := packet.DetectByteOrder(data[:4]); ok {
		text, status, result := assembleText(source, data, order)
		if status == Incomplete || !result.OK() {
			return nil, status, result
		}
		return parse(source, text, result)
	}

	return parse(source, string(data), diag.OK())
}

// assembleText walks every packet in a packetized stream, validating each
// header and concatenating the TSDL text found between its header and
// content_size boundary. Bytes between content_size and packet_size are
// padding and are discarded.
func assembleText(source location.SourceID, data []byte, order binary.ByteOrder) (string, Status, diag.Result) {
	var c diag.Collector
	var text strings.Builder
	var firstUUID uuid.UUID
	haveUUID := false

	offset := 0
	for offset < len(data) {
		remaining := data[offset:]
		if len(remaining) < int(packet.HeaderSize) {
			return "", Incomplete, diag.OK()
		}
		if order.Uint32(remaining[:4]) != packet.Magic {
			c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_BAD_SIZE,
				"packet does not begin with the stream's magic value").
				WithSourceName(source.String()).
				Build())
			return "", Complete, c.Result()
		}

		h := packet.ParseHeader(remaining, order)
		c.Merge(h.Validate(source.String(), firstUUID, haveUUID))
		if c.HasFailures() {
			return "", Complete, c.Result()
		}

		packetSize := h.PacketSizeBytes()
		if uint64(len(remaining)) < uint64(packetSize) {
			return "", Incomplete, diag.OK()
		}

		contentSize := h.ContentSizeBytes()
		text.Write(remaining[packet.HeaderSize:contentSize])

		if !haveUUID {
			firstUUID = h.UUID
			haveUUID = true
		}
		offset += int(packetSize)
	}

	return text.String(), Complete, c.Result()
}

// parse runs the TSDL parser and IR builder over assembled source text,
// merging prior (e.g. packet-level) diagnostics into the result.
func parse(source location.SourceID, text string, prior diag.Result) (*trace.Class, Status, diag.Result) {
	p := tsdl.NewParser(source, text)
	doc := p.Parse()
	parseResult := p.Errors()

	if isIncomplete(parseResult) {
		return nil, Incomplete, diag.OK()
	}

	var c diag.Collector
	c.Merge(prior)
	c.Merge(parseResult)
	if c.HasFailures() {
		return nil, Complete, c.Result()
	}

	cls, buildResult := ir.Build(source, doc)
	c.Merge(buildResult)
	return cls, Complete, c.Result()
}

func isIncomplete(result diag.Result) bool {
	for issue := range result.Issues() {
		if issue.Code() == diag.E_DECODER_INCOMPLETE {
			return true
		}
	}
	return false
}
