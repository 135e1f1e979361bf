package packet

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Magic is the 32-bit value that identifies a packetized metadata stream
// when read in its native byte order.
const Magic uint32 = 0x75d11d57

// HeaderSize is the encoded size, in bytes, of the fixed packet header:
// magic(4) + uuid(16) + checksum(4) + content_size(4) + packet_size(4) +
// compression(1) + encryption(1) + checksum_scheme(1) + major(1) + minor(1).
const HeaderSize = 4 + 16 + 4 + 4 + 4 + 1 + 1 + 1 + 1 + 1

// SupportedMajor and SupportedMinor are the only TSDL version this decoder
// accepts ("Supported version is exactly 1.8").
const (
	SupportedMajor = 1
	SupportedMinor = 8
)

// Header is the fixed portion of one metadata packet.
type Header struct {
	UUID            uuid.UUID
	Checksum        uint32
	ContentSizeBits uint32
	PacketSizeBits  uint32
	Compression     uint8
	Encryption      uint8
	ChecksumScheme  uint8
	Major           uint8
	Minor           uint8
}

// ByteOrder is the endianness detected from the magic value at the start of
// a stream, preserved for every subsequent packet.
type ByteOrder = binary.ByteOrder

// DetectByteOrder peeks the first four bytes of a stream and returns the
// byte order that makes them read as [Magic], plus whether the stream is
// packetized at all (false means the caller should fall back to plain-text
// TSDL detection).
func DetectByteOrder(first4 []byte) (ByteOrder, bool) {
	if len(first4) < 4 {
		return nil, false
	}
	if binary.BigEndian.Uint32(first4) == Magic {
		return binary.BigEndian, true
	}
	if binary.LittleEndian.Uint32(first4) == Magic {
		return binary.LittleEndian, true
	}
	return nil, false
}

// ParseHeader decodes a Header from exactly HeaderSize bytes using order.
// It does not validate field values; use [Header.Validate] for that.
func ParseHeader(buf []byte, order ByteOrder) Header {
	var h Header
	off := 4 // magic already consumed by the caller
	copy(h.UUID[:], buf[off:off+16])
	off += 16
	h.Checksum = order.Uint32(buf[off:])
	off += 4
	h.ContentSizeBits = order.Uint32(buf[off:])
	off += 4
	h.PacketSizeBits = order.Uint32(buf[off:])
	off += 4
	h.Compression = buf[off]
	off++
	h.Encryption = buf[off]
	off++
	h.ChecksumScheme = buf[off]
	off++
	h.Major = buf[off]
	off++
	h.Minor = buf[off]
	return h
}

// ContentSizeBytes returns the content size in bytes, truncating any
// trailing partial byte (content_size is a bit count).
func (h Header) ContentSizeBytes() uint32 { return h.ContentSizeBits / 8 }

// PacketSizeBytes returns the packet size in bytes.
func (h Header) PacketSizeBytes() uint32 { return h.PacketSizeBits / 8 }
