package net

import (
	"fmt"
	"io"
)

// BitSet is a varint-prefixed array of 64-bit words, least significant bit
// first within each word.
type BitSet []uint64

func ReadBitSet(r io.Reader) (BitSet, error) {
	length, _, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("read bit set length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative bit set length: %d: %w", length, ErrMalformed)
	}
	set := make(BitSet, length)
	for i := range set {
		if set[i], err = ReadU64(r); err != nil {
			return nil, fmt.Errorf("read bit set word %d: %w", i, err)
		}
	}
	return set, nil
}

// Test reports whether bit i is set.
func (b BitSet) Test(i int) bool {
	word := i / 64
	if word >= len(b) {
		return false
	}
	return b[word]&(1<<(i%64)) != 0
}
