package format

import "fmt"

// Block is a decoded block header.
type Block struct {
	Offset uint32 // Arena offset of the header
	Size   uint32 // Payload size, header excluded
	Next   uint32 // NilOff when this is the tail
	Prev   uint32 // NilOff when this is the head
	Free   bool
}

// End returns the arena offset immediately after the block's payload, which
// is where the next block in address order must begin.
func (b Block) End() uint64 {
	return uint64(b.Offset) + HeaderSize + uint64(b.Size)
}

// Data returns the arena offset of the block's payload.
func (b Block) Data() uint32 {
	return b.Offset + HeaderSize
}

// ReadBlock decodes the header at off.
func ReadBlock(b []byte, off uint32) (Block, error) {
	if uint64(off)+HeaderSize > uint64(len(b)) {
		return Block{}, fmt.Errorf("block at 0x%X: %w", off, ErrTruncated)
	}
	o := int(off)
	flags := ReadU32(b, o+FlagsOffset)
	if flags>>MagicShift != Magic {
		return Block{}, fmt.Errorf("block at 0x%X: %w", off, ErrBadMagic)
	}
	size := ReadU32(b, o+SizeOffset)
	if !IsAligned(size) {
		return Block{}, fmt.Errorf("block at 0x%X size %d: %w", off, size, ErrMisaligned)
	}
	return Block{
		Offset: off,
		Size:   size,
		Next:   ReadU32(b, o+NextOffset),
		Prev:   ReadU32(b, o+PrevOffset),
		Free:   flags&FlagFree != 0,
	}, nil
}

// PutBlock encodes blk's header at blk.Offset.
func PutBlock(b []byte, blk Block) {
	o := int(blk.Offset)
	PutU32(b, o+SizeOffset, blk.Size)
	PutU32(b, o+NextOffset, blk.Next)
	PutU32(b, o+PrevOffset, blk.Prev)
	PutU32(b, o+FlagsOffset, Flags(blk.Free))
}

// Flags returns the encoded flags word.
func Flags(free bool) uint32 {
	f := uint32(Magic) << MagicShift
	if free {
		f |= FlagFree
	}
	return f
}
