package net

import (
	"fmt"
	"io"
	"math/bits"
)

// Paletted-container parameters for protocol 763. Blocks and biomes use the
// same wire shape with different clamp and direct-encoding thresholds.
const (
	BlockBitsLowest    = 4
	BlockBitsThreshold = 9
	BlockEntries       = 4096

	BiomeBitsLowest    = 1
	BiomeBitsThreshold = 6
	BiomeEntries       = 64
)

// PalettedContainer is a bit-packed array with an optional local palette.
// With a single-element palette the container is uniform and States is nil.
// With a nil palette the states are global ids directly.
type PalettedContainer struct {
	Palette []int32
	States  []int32
}

// Uniform reports whether every entry holds the same (single-palette) value.
func (p *PalettedContainer) Uniform() bool {
	return p.States == nil && len(p.Palette) == 1
}

// Global resolves entry i to a global palette id.
func (p *PalettedContainer) Global(i int) int32 {
	if p.Uniform() {
		return p.Palette[0]
	}
	if i < 0 || i >= len(p.States) {
		return 0
	}
	state := p.States[i]
	if p.Palette == nil {
		return state
	}
	return p.Palette[state]
}

// ReadPalettedContainer decodes one container. bitsLowest and bitsThreshold
// select the block or biome flavour; globalSize is the size of the global
// palette the entries index into; capacity caps the entry count (4096 for
// blocks, 64 for biomes).
func ReadPalettedContainer(r io.Reader, bitsLowest, bitsThreshold int, globalSize, capacity int) (*PalettedContainer, error) {
	bitsPerEntry, err := ReadU8(r)
	if err != nil {
		return nil, fmt.Errorf("read bits per entry: %w", err)
	}

	result := &PalettedContainer{}

	if bitsPerEntry == 0 {
		// Single-value container: one global id, then an unused data array
		// length that still occupies wire space.
		value, _, err := ReadVarInt(r)
		if err != nil {
			return nil, fmt.Errorf("read single value: %w", err)
		}
		if _, _, err := ReadVarInt(r); err != nil {
			return nil, fmt.Errorf("read unused data length: %w", err)
		}
		result.Palette = []int32{value}
		return result, nil
	}

	bpe := int(bitsPerEntry)
	if bpe >= bitsThreshold {
		// Direct encoding: indices are global ids, width derived from the
		// global palette size.
		bpe = bits.Len(uint(globalSize - 1))
		result.Palette = nil
	} else {
		if bpe < bitsLowest {
			bpe = bitsLowest
		}
		paletteLen, _, err := ReadVarInt(r)
		if err != nil {
			return nil, fmt.Errorf("read palette length: %w", err)
		}
		if paletteLen < 0 {
			return nil, fmt.Errorf("negative palette length: %d: %w", paletteLen, ErrMalformed)
		}
		result.Palette = make([]int32, paletteLen)
		for i := range result.Palette {
			entry, _, err := ReadVarInt(r)
			if err != nil {
				return nil, fmt.Errorf("read palette entry %d: %w", i, err)
			}
			if int(entry) >= globalSize {
				return nil, fmt.Errorf("palette entry %d outside global palette of %d: %w", entry, globalSize, ErrOverflow)
			}
			result.Palette[i] = entry
		}
	}

	numLongs, _, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("read data array length: %w", err)
	}
	if numLongs < 0 {
		return nil, fmt.Errorf("negative data array length: %d: %w", numLongs, ErrMalformed)
	}

	perLong := 64 / bpe
	limit := globalSize
	if result.Palette != nil {
		limit = len(result.Palette)
	}

	total := perLong * int(numLongs)
	if total > capacity {
		total = capacity
	}
	result.States = make([]int32, 0, total)

	mask := uint64(1)<<bpe - 1
	for l := int32(0); l < numLongs; l++ {
		word, err := ReadU64(r)
		if err != nil {
			return nil, fmt.Errorf("read data long %d: %w", l, err)
		}
		// Entries pack left to right within each long and never cross a
		// long boundary.
		for b := 0; b < perLong && len(result.States) < total; b++ {
			state := int32(word >> (b * bpe) & mask)
			if int(state) >= limit {
				return nil, fmt.Errorf("state %d outside palette of %d: %w", state, limit, ErrOverflow)
			}
			result.States = append(result.States, state)
		}
	}

	return result, nil
}
