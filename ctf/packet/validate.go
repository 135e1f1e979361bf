package packet

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/simon-lentz/tracegraph/diag"
)

// Validate checks one packet's header against the decoder's invariants.
// expectedUUID is the zero UUID for the first packet in a stream (any UUID
// is accepted and becomes authoritative) and the first packet's UUID for
// every subsequent packet (which must match bit-for-bit).
func (h Header) Validate(source string, expectedUUID uuid.UUID, haveExpected bool) diag.Result {
	var c diag.Collector

	if h.Major != SupportedMajor || h.Minor != SupportedMinor {
		c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_INVAL_VERSION,
			"unsupported TSDL version").
			WithSourceName(source).
			WithDetails(diag.ExpectedGot("1.8", formatVersion(h.Major, h.Minor))...).
			Build())
		return c.Result()
	}

	if h.Compression != 0 || h.Encryption != 0 || h.ChecksumScheme != 0 {
		c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_UNSUPPORTED_FEATURE,
			"packet requests compression, encryption or a checksum scheme, none of which this decoder supports").
			WithSourceName(source).
			Build())
		return c.Result()
	}

	if h.ContentSizeBits < HeaderSize*8 || h.ContentSizeBits > h.PacketSizeBits {
		c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_BAD_SIZE,
			"content_size must be at least the header size and at most packet_size").
			WithSourceName(source).
			Build())
		return c.Result()
	}

	if haveExpected && h.UUID != expectedUUID {
		c.Collect(diag.NewIssue(diag.Error, diag.E_DECODER_UUID_MISMATCH,
			"packet UUID does not match the stream's first packet").
			WithSourceName(source).
			WithDetails(diag.ExpectedGot(expectedUUID.String(), h.UUID.String())...).
			Build())
	}

	return c.Result()
}

func formatVersion(major, minor uint8) string {
	return strconv.Itoa(int(major)) + "." + strconv.Itoa(int(minor))
}
