// Package packet decodes and validates the 37-byte packetized metadata
// header: magic, UUID, checksum, content/packet sizes,
// compression/encryption/checksum-scheme flags, and the TSDL major/minor
// version. Endianness is detected once from the magic value and carried
// for the remainder of the stream.
package packet
