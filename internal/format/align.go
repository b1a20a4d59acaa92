package format

// Align4 returns n aligned up to the next 4-byte boundary.
//
// Example:
//
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// Align4U32 aligns a caller-supplied request size. The second result is false
// when rounding up would wrap around the 32-bit range.
func Align4U32(n uint32) (uint32, bool) {
	if n > NilOff-AlignmentMask {
		return 0, false
	}
	return (n + AlignmentMask) &^ AlignmentMask, true
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n uint32) bool {
	return n&AlignmentMask == 0
}
