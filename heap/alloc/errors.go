package alloc

import "errors"

var (
	// ErrZeroSize indicates a zero-byte request; it yields Null without consuming a block.
	ErrZeroSize = errors.New("alloc: zero-size request")

	// ErrTooLarge indicates a request that cannot be represented in the arena.
	ErrTooLarge = errors.New("alloc: request exceeds addressable range")

	// ErrGrowFail indicates that the source denied a heap extension.
	ErrGrowFail = errors.New("alloc: grow failed")

	// ErrBadPtr indicates a pointer that does not address a block payload.
	ErrBadPtr = errors.New("alloc: bad pointer")

	// ErrDoubleFree indicates release of a block that is already free.
	ErrDoubleFree = errors.New("alloc: block already free")

	// ErrNonContiguous indicates the source returned space that does not
	// start at the previous break.
	ErrNonContiguous = errors.New("alloc: non-contiguous heap extension")

	// ErrSourceNotEmpty indicates a source whose break has already moved.
	ErrSourceNotEmpty = errors.New("alloc: source already in use")
)
