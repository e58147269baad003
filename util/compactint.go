package util

import (
	"encoding/binary"
	"fmt"
	"io"
)

var littleEndian = binary.LittleEndian

// WriteVarInt and ReadVarInt implement the CompactSize encoding used for
// array and byte-string lengths on the wire: values below 0xfd are encoded
// as a single byte, and the three prefix bytes 0xfd/0xfe/0xff introduce a
// following 2/4/8-byte little-endian value. This is distinct from the
// base-128 VARINT in varlenint.go, which is used for the coin height code.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return BinarySerializer.PutUint8(w, uint8(val))
	}
	if val <= 0xffff {
		if err := BinarySerializer.PutUint8(w, 0xfd); err != nil {
			return err
		}
		return BinarySerializer.PutUint16(w, littleEndian, uint16(val))
	}
	if val <= 0xffffffff {
		if err := BinarySerializer.PutUint8(w, 0xfe); err != nil {
			return err
		}
		return BinarySerializer.PutUint32(w, littleEndian, uint32(val))
	}
	if err := BinarySerializer.PutUint8(w, 0xff); err != nil {
		return err
	}
	return BinarySerializer.PutUint64(w, littleEndian, val)
}

func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := BinarySerializer.Uint8(r)
	if err != nil {
		return 0, err
	}

	switch discriminant {
	case 0xff:
		v, err := BinarySerializer.Uint64(r, littleEndian)
		if err != nil {
			return 0, err
		}
		if v < 0x100000000 {
			return 0, fmt.Errorf("ReadVarInt: 0xff prefix encodes non-canonical value %d", v)
		}
		return v, nil
	case 0xfe:
		v, err := BinarySerializer.Uint32(r, littleEndian)
		if err != nil {
			return 0, err
		}
		if uint64(v) < 0x10000 {
			return 0, fmt.Errorf("ReadVarInt: 0xfe prefix encodes non-canonical value %d", v)
		}
		return uint64(v), nil
	case 0xfd:
		v, err := BinarySerializer.Uint16(r, littleEndian)
		if err != nil {
			return 0, err
		}
		if uint64(v) < 0xfd {
			return 0, fmt.Errorf("ReadVarInt: 0xfd prefix encodes non-canonical value %d", v)
		}
		return uint64(v), nil
	default:
		return uint64(discriminant), nil
	}
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would emit
// for val.
func VarIntSerializeSize(val uint64) uint32 {
	if val < 0xfd {
		return 1
	}
	if val <= 0xffff {
		return 3
	}
	if val <= 0xffffffff {
		return 5
	}
	return 9
}
