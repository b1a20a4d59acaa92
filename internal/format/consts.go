// Package format describes the on-arena layout of heap blocks. Every block
// managed by the allocator starts with a fixed-size header followed by its
// payload; this package owns the encoding of that header so the allocator,
// the verifier and offline inspection tools agree on a single layout.
package format

const (
	// HeaderSize is the size of a block header in bytes.
	//
	// Header layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    4     Payload size in bytes (multiple of Alignment, header excluded)
	//	0x04    4     Arena offset of the next block, NilOff for the tail
	//	0x08    4     Arena offset of the previous block, NilOff for the head
	//	0x0C    4     Flags: bit 0 set => free, bits 16-31 hold Magic
	HeaderSize = 16

	// Field offsets within the header.
	SizeOffset  = 0x00
	NextOffset  = 0x04
	PrevOffset  = 0x08
	FlagsOffset = 0x0C

	// Alignment is the granularity of every payload size.
	Alignment = 4

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1

	// MinPayload is the smallest payload a split remainder may carry.
	MinPayload = Alignment

	// NilOff marks an absent chain link.
	NilOff = 0xFFFFFFFF

	// FlagFree is set in the flags word of an unallocated block.
	FlagFree = 0x1

	// Magic identifies a block header. It occupies the upper half of the flags word.
	Magic = 0x4B48

	// MagicShift is the bit position of Magic within the flags word.
	MagicShift = 16

	// MaxArena is the largest arena addressable with 32-bit offsets. NilOff
	// itself must never be a valid block offset.
	MaxArena = NilOff
)
