package net

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-client/internal/client/nbt"
)

// Slot is an inventory stack: item id, count and an optional NBT tail.
type Slot struct {
	Present bool
	ItemID  int32
	Count   uint8
	NBT     *nbt.Tag
}

// ReadNBT consumes one NBT tag from the unread tail of r and returns its
// parsed tree. A lone end marker yields a nil tag.
func ReadNBT(r *Reader) (*nbt.Tag, error) {
	rem := r.Remaining()
	if len(rem) > 0 && rem[0] == nbt.TagEnd {
		return nil, r.Skip(1)
	}
	size := nbt.Size(rem)
	if size == 0 {
		return nil, fmt.Errorf("size nbt tag: %w", ErrMalformed)
	}
	tag, _, err := nbt.Parse(rem[:size])
	if err != nil {
		return nil, fmt.Errorf("parse nbt tag: %w", err)
	}
	if err := r.Skip(size); err != nil {
		return nil, err
	}
	return &tag, nil
}

// SkipNBT consumes one NBT tag from r without materialising it.
func SkipNBT(r *Reader) error {
	rem := r.Remaining()
	if len(rem) > 0 && rem[0] == nbt.TagEnd {
		return r.Skip(1)
	}
	size := nbt.Size(rem)
	if size == 0 {
		return fmt.Errorf("size nbt tag: %w", ErrMalformed)
	}
	return r.Skip(size)
}

func ReadSlot(r *Reader) (Slot, error) {
	var s Slot
	var err error
	if s.Present, err = ReadBool(r); err != nil {
		return s, fmt.Errorf("read slot present: %w", err)
	}
	if !s.Present {
		return s, nil
	}
	if s.ItemID, _, err = ReadVarInt(r); err != nil {
		return s, fmt.Errorf("read slot item id: %w", err)
	}
	if s.Count, err = ReadU8(r); err != nil {
		return s, fmt.Errorf("read slot count: %w", err)
	}
	if s.NBT, err = ReadNBT(r); err != nil {
		return s, fmt.Errorf("read slot nbt: %w", err)
	}
	return s, nil
}
