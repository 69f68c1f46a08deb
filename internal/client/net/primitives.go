package net

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Angle is a rotation in steps of 1/256 of a full turn.
type Angle uint8

// Degrees converts the wire angle into degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 360.0 / 256.0
}

// EncodePosition packs block coordinates into a single long:
// X in the high 26 bits, Z in the middle 26, Y in the low 12.
func EncodePosition(x, y, z int) int64 {
	return int64((int64(x)&0x3FFFFFF)<<38) | int64((int64(z)&0x3FFFFFF)<<12) | int64(int64(y)&0xFFF)
}

// DecodePosition unpacks a position long, sign-extending each field.
func DecodePosition(val int64) (x, y, z int) {
	x = int(val >> 38)
	y = int(val << 52 >> 52)
	z = int(val << 26 >> 38)
	return
}

func ReadPosition(r io.Reader) (x, y, z int, err error) {
	val, err := ReadI64(r)
	if err != nil {
		return 0, 0, 0, err
	}
	x, y, z = DecodePosition(val)
	return x, y, z, nil
}

func WritePosition(w io.Writer, x, y, z int) error {
	return binary.Write(w, binary.BigEndian, EncodePosition(x, y, z))
}

// maxStringBytes bounds a string payload at the protocol limit of 32767
// UTF-16 units, each up to 4 bytes on the wire.
const maxStringBytes = 32767 * 4

func ReadString(r io.Reader) (string, error) {
	length, _, err := ReadVarInt(r)
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length < 0 || length > maxStringBytes {
		return "", fmt.Errorf("string length out of range: %d: %w", length, ErrMalformed)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read string data: %w", eof(err))
	}
	return string(buf), nil
}

func WriteString(w io.Writer, s string) (int, error) {
	n1, err := WriteVarInt(w, int32(len(s)))
	if err != nil {
		return n1, err
	}
	n2, err := io.WriteString(w, s)
	return n1 + n2, err
}

func ReadByteArray(r io.Reader) ([]byte, error) {
	length, _, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("read byte array length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative byte array length: %d: %w", length, ErrMalformed)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read byte array data: %w", eof(err))
	}
	return buf, nil
}

func WriteByteArray(w io.Writer, data []byte) (int, error) {
	n1, err := WriteVarInt(w, int32(len(data)))
	if err != nil {
		return n1, err
	}
	n2, err := w.Write(data)
	return n1 + n2, err
}

func ReadStringArray(r io.Reader) ([]string, error) {
	count, _, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("read string array length: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative string array length: %d: %w", count, ErrMalformed)
	}
	out := make([]string, count)
	for i := range out {
		if out[i], err = ReadString(r); err != nil {
			return nil, fmt.Errorf("read string array element %d: %w", i, err)
		}
	}
	return out, nil
}

func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return id, fmt.Errorf("read uuid: %w", eof(err))
	}
	return id, nil
}

func WriteUUID(w io.Writer, id uuid.UUID) (int, error) {
	return w.Write(id[:])
}

func ReadI8(r io.Reader) (int8, error) {
	b, err := ReadU8(r)
	return int8(b), err
}

func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, eof(err)
	}
	return buf[0], nil
}

func ReadAngle(r io.Reader) (Angle, error) {
	b, err := ReadU8(r)
	return Angle(b), err
}

func ReadI16(r io.Reader) (int16, error) {
	var val int16
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadU16(r io.Reader) (uint16, error) {
	var val uint16
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadI32(r io.Reader) (int32, error) {
	var val int32
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadI64(r io.Reader) (int64, error) {
	var val int64
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadU64(r io.Reader) (uint64, error) {
	var val uint64
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadF32(r io.Reader) (float32, error) {
	var val float32
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadF64(r io.Reader) (float64, error) {
	var val float64
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, eof(err)
	}
	return val, nil
}

func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadU8(r)
	return b != 0, err
}
