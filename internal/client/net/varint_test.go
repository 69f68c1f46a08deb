package net

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		size  int
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"127", 127, 1},
		{"128", 128, 2},
		{"255", 255, 2},
		{"300", 300, 2},
		{"25565", 25565, 3},
		{"max_varint", 2147483647, 5},
		{"negative_one", -1, 5},
		{"min_varint", -2147483648, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := WriteVarInt(&buf, tt.value)
			if err != nil {
				t.Fatalf("WriteVarInt(%d): %v", tt.value, err)
			}
			if n != tt.size {
				t.Errorf("WriteVarInt(%d) wrote %d bytes, want %d", tt.value, n, tt.size)
			}
			if VarIntSize(tt.value) != tt.size {
				t.Errorf("VarIntSize(%d) = %d, want %d", tt.value, VarIntSize(tt.value), tt.size)
			}

			got, bytesRead, err := ReadVarInt(&buf)
			if err != nil {
				t.Fatalf("ReadVarInt: %v", err)
			}
			if bytesRead != tt.size {
				t.Errorf("ReadVarInt read %d bytes, want %d", bytesRead, tt.size)
			}
			if got != tt.value {
				t.Errorf("ReadVarInt = %d, want %d", got, tt.value)
			}
		})
	}
}

func TestVarIntWireVectors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteVarInt(&buf, 300); err != nil {
		t.Fatalf("WriteVarInt(300): %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xAC, 0x02}) {
		t.Errorf("WriteVarInt(300) = % X, want AC 02", buf.Bytes())
	}

	got, _, err := ReadVarInt(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}))
	if err != nil {
		t.Fatalf("ReadVarInt(max): %v", err)
	}
	if got != 2147483647 {
		t.Errorf("ReadVarInt(max) = %d, want 2147483647", got)
	}
}

func TestVarIntOverflow(t *testing.T) {
	_, _, err := ReadVarInt(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}))
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("ReadVarInt(6 bytes) err = %v, want ErrOverflow", err)
	}
}

func TestVarIntTruncated(t *testing.T) {
	_, _, err := ReadVarInt(bytes.NewReader([]byte{0x80}))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadVarInt(dangling continuation) err = %v, want ErrTruncated", err)
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		size  int
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"large", 1 << 40, 6},
		{"max_varlong", 9223372036854775807, 9},
		{"negative_one", -1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := WriteVarLong(&buf, tt.value); err != nil {
				t.Fatalf("WriteVarLong(%d): %v", tt.value, err)
			}
			if buf.Len() != tt.size {
				t.Errorf("WriteVarLong(%d) wrote %d bytes, want %d", tt.value, buf.Len(), tt.size)
			}
			got, _, err := ReadVarLong(&buf)
			if err != nil {
				t.Fatalf("ReadVarLong: %v", err)
			}
			if got != tt.value {
				t.Errorf("ReadVarLong = %d, want %d", got, tt.value)
			}
		})
	}
}

func TestVarLongOverflow(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := ReadVarLong(bytes.NewReader(data))
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("ReadVarLong(11 bytes) err = %v, want ErrOverflow", err)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
	}{
		{"origin", 0, 0, 0},
		{"positive", 100, 64, 200},
		{"negative", -100, -32, -200},
		{"extremes", 1<<25 - 1, 1<<11 - 1, -(1 << 25)},
		{"floor", -(1 << 25), -(1 << 11), 1<<25 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := DecodePosition(EncodePosition(tt.x, tt.y, tt.z))
			if x != tt.x || y != tt.y || z != tt.z {
				t.Errorf("round-trip = (%d,%d,%d), want (%d,%d,%d)", x, y, z, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestPositionWireVector(t *testing.T) {
	// x<<38 = 0x4607630000000000, (z&0x3FFFFFF)<<12 = 0x2C15B48000,
	// y&0xFFF = 0x33F; the canonical vector for this coordinate triple.
	const packed = int64(0x4607632C15B4833F)
	x, y, z := 18357644, 831, -20882616

	if got := EncodePosition(x, y, z); got != packed {
		t.Errorf("EncodePosition = %#016x, want %#016x", uint64(got), uint64(packed))
	}
	gx, gy, gz := DecodePosition(packed)
	if gx != x || gy != y || gz != z {
		t.Errorf("DecodePosition = (%d,%d,%d), want (%d,%d,%d)", gx, gy, gz, x, y, z)
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []string{"", "hello", "minecraft:overworld", "żółć"}
	for _, want := range tests {
		var buf bytes.Buffer
		if _, err := WriteString(&buf, want); err != nil {
			t.Fatalf("WriteString(%q): %v", want, err)
		}
		got, err := ReadString(&buf)
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != want {
			t.Errorf("ReadString = %q, want %q", got, want)
		}
	}
}

func TestStringTruncated(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteVarInt(&buf, 10); err != nil {
		t.Fatal(err)
	}
	buf.WriteString("abc")
	if _, err := ReadString(&buf); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadString err = %v, want ErrTruncated", err)
	}
}

func TestByteArrayRoundTrip(t *testing.T) {
	want := []byte{0x01, 0x02, 0xFF, 0x00}
	var buf bytes.Buffer
	if _, err := WriteByteArray(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadByteArray(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadByteArray = % X, want % X", got, want)
	}
}

func TestBitSet(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteVarInt(&buf, 2); err != nil {
		t.Fatal(err)
	}
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0b101})
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 1})

	set, err := ReadBitSet(&buf)
	if err != nil {
		t.Fatalf("ReadBitSet: %v", err)
	}
	for i, want := range map[int]bool{0: true, 1: false, 2: true, 64: true, 65: false, 200: false} {
		if set.Test(i) != want {
			t.Errorf("Test(%d) = %v, want %v", i, set.Test(i), want)
		}
	}
}
